package linking

import (
	"fmt"
	"sort"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

// Suggested-link priorities and the overall strategy size cap.
const (
	pillarToMemberPriority = 95
	memberToPillarPriority = 90
	memberToMemberPriority = 60
	maxSuggestedLinks      = 50
)

// BuildStrategy turns an ordered cluster list into one hub recommendation
// per cluster and a prioritized list of suggested links: pillar to each
// member at 95, member back to pillar at 90, and members to each other at
// 60, sorted by priority and truncated to fifty entries.
func (e *Engine) BuildStrategy(clusters []types.TopicCluster) types.LinkStrategy {
	strategy := types.LinkStrategy{
		Recommendations: make([]string, 0, len(clusters)),
	}

	for _, cluster := range clusters {
		strategy.Recommendations = append(strategy.Recommendations, fmt.Sprintf(
			"Make %q the hub for its topic cluster and link all %d related pages through it",
			cluster.PillarPage.Title, len(cluster.RelatedPages)))

		pillarID := cluster.PillarPage.ID
		for _, member := range cluster.RelatedPages {
			strategy.SuggestedLinks = append(strategy.SuggestedLinks, types.SuggestedLink{
				FromPageID: pillarID,
				ToPageID:   member.ID,
				Priority:   pillarToMemberPriority,
				Reason:     "pillar to cluster member",
			})
			strategy.SuggestedLinks = append(strategy.SuggestedLinks, types.SuggestedLink{
				FromPageID: member.ID,
				ToPageID:   pillarID,
				Priority:   memberToPillarPriority,
				Reason:     "cluster member back to pillar",
			})
		}

		for _, from := range cluster.RelatedPages {
			for _, to := range cluster.RelatedPages {
				if from.ID == to.ID {
					continue
				}
				strategy.SuggestedLinks = append(strategy.SuggestedLinks, types.SuggestedLink{
					FromPageID: from.ID,
					ToPageID:   to.ID,
					Priority:   memberToMemberPriority,
					Reason:     "cross-link within cluster",
				})
			}
		}
	}

	sort.SliceStable(strategy.SuggestedLinks, func(i, j int) bool {
		return strategy.SuggestedLinks[i].Priority > strategy.SuggestedLinks[j].Priority
	})
	if len(strategy.SuggestedLinks) > maxSuggestedLinks {
		strategy.SuggestedLinks = strategy.SuggestedLinks[:maxSuggestedLinks]
	}

	return strategy
}
