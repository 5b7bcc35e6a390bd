package types

// LinkOpportunity is a candidate internal link discovered in a piece of
// content. Opportunities are computed per invocation and never persisted;
// the Position is only valid against the text as it existed at discovery
// time, so injection re-resolves the anchor within a tolerance window.
type LinkOpportunity struct {
	SourceMarker   string `json:"source_marker"`
	TargetPageID   string `json:"target_page_id"`
	TargetSlug     string `json:"target_slug"`
	AnchorText     string `json:"anchor_text"`
	RelevanceScore int    `json:"relevance_score"`
	Context        string `json:"context"`
	Position       int    `json:"position"`
	Reason         string `json:"reason"`
}

// TopicCluster groups a pillar page with the pages it shares title keywords
// with. Clusters have no persistent identity; recomputation is stable for a
// stable corpus.
type TopicCluster struct {
	PillarPage     SitemapPage   `json:"pillar_page"`
	RelatedPages   []SitemapPage `json:"related_pages"`
	LinkDensity    float64       `json:"link_density"`
	TopicRelevance float64       `json:"topic_relevance"`
}

// SuggestedLink is a single prioritized link recommendation derived from a
// topic cluster.
type SuggestedLink struct {
	FromPageID string `json:"from_page_id"`
	ToPageID   string `json:"to_page_id"`
	Priority   int    `json:"priority"`
	Reason     string `json:"reason"`
}

// LinkStrategy is the output of strategy generation over an ordered cluster
// list: one textual recommendation per cluster plus a prioritized link list.
type LinkStrategy struct {
	Recommendations []string        `json:"recommendations"`
	SuggestedLinks  []SuggestedLink `json:"suggested_links"`
}
