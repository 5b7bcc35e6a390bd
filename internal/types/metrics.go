package types

import "time"

// PerformanceMetrics is one sample of pipeline output quality, recorded per
// processed item.
type PerformanceMetrics struct {
	OptimizationSpeedMs int64     `json:"optimization_speed_ms"`
	ContentQualityScore float64   `json:"content_quality_score"`
	InternalLinkDensity float64   `json:"internal_link_density"`
	SemanticRichness    float64   `json:"semantic_richness"`
	AEOScore            float64   `json:"aeo_score"`
	Timestamp           time.Time `json:"timestamp"`
}

// OptimizationLogEntry records one item's before/after outcome.
type OptimizationLogEntry struct {
	ID           string        `json:"id"`
	URL          string        `json:"url"`
	Timestamp    time.Time     `json:"timestamp"`
	BeforeScore  float64       `json:"before_score"`
	AfterScore   float64       `json:"after_score"`
	Improvements []string      `json:"improvements"`
	Duration     time.Duration `json:"duration"`
}
