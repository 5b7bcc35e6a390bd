package linking

import (
	"sort"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

// Clustering constants.
const (
	maxRelatedPages    = 8
	minRelatedPages    = 2
	relevanceFactor    = 20.0
	densityWordFloor   = 1000
	densityScaleFactor = 100.0
)

// relatedPage pairs a candidate page with its shared-keyword count.
type relatedPage struct {
	page   types.SitemapPage
	shared int
}

// Clusters groups corpus pages into topic clusters by title keyword overlap.
//
// Pages are visited in input order; each not-yet-assigned page becomes the
// pillar of a cluster when at least two other unassigned pages share a title
// keyword with it. Related pages are ranked by shared-keyword count and
// truncated to the top eight; pillar and members are then claimed so each
// page belongs to at most one cluster. Clusters come back sorted by topic
// relevance, so recomputation is stable for a stable corpus.
func (e *Engine) Clusters(pages []types.SitemapPage) []types.TopicCluster {
	keywords := make([][]string, len(pages))
	for i, page := range pages {
		keywords[i] = e.titleKeywords(page.Title)
	}

	assigned := make(map[string]bool, len(pages))
	var clusters []types.TopicCluster

	for i, pillar := range pages {
		if assigned[pillar.ID] {
			continue
		}

		var related []relatedPage
		for j, other := range pages {
			if i == j || assigned[other.ID] {
				continue
			}
			shared := sharedKeywordCount(keywords[i], keywords[j])
			if shared > 0 {
				related = append(related, relatedPage{page: other, shared: shared})
			}
		}

		sort.SliceStable(related, func(a, b int) bool {
			return related[a].shared > related[b].shared
		})
		if len(related) > maxRelatedPages {
			related = related[:maxRelatedPages]
		}
		if len(related) < minRelatedPages {
			continue
		}

		totalShared := 0
		members := make([]types.SitemapPage, 0, len(related))
		for _, rel := range related {
			totalShared += rel.shared
			members = append(members, rel.page)
		}

		clusterSize := len(members) + 1
		pillarWords := max(pillar.WordCount, densityWordFloor)

		clusters = append(clusters, types.TopicCluster{
			PillarPage:     pillar,
			RelatedPages:   members,
			TopicRelevance: relevanceFactor * float64(totalShared) / float64(clusterSize),
			LinkDensity:    float64(clusterSize) / float64(pillarWords) * densityScaleFactor,
		})

		assigned[pillar.ID] = true
		for _, member := range members {
			assigned[member.ID] = true
		}
	}

	sort.SliceStable(clusters, func(a, b int) bool {
		return clusters[a].TopicRelevance > clusters[b].TopicRelevance
	})

	return clusters
}

// sharedKeywordCount counts keywords present in both sets.
func sharedKeywordCount(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, keyword := range a {
		set[keyword] = true
	}

	count := 0
	for _, keyword := range b {
		if set[keyword] {
			count++
		}
	}
	return count
}
