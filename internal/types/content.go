package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ContentItem is one content-generation request submitted to the pipeline.
type ContentItem struct {
	ID             string   `json:"id" validate:"required"`
	Title          string   `json:"title" validate:"required"`
	URL            string   `json:"url,omitempty"`
	PromptKey      string   `json:"prompt_key" validate:"required"`
	PromptArgs     []string `json:"prompt_args,omitempty"`
	PrimaryKeyword string   `json:"primary_keyword,omitempty"`
	Priority       string   `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	FAQs           []FAQ    `json:"faqs,omitempty"`
}

// Validate validates the ContentItem using the validator.
func (c *ContentItem) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// EnrichedItem is the per-item pipeline output: the generated content after
// link injection and answer-engine optimization, with computed scores.
type EnrichedItem struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Success        bool              `json:"success"`
	Error          string            `json:"error,omitempty"`
	Content        string            `json:"content,omitempty"`
	InjectedLinks  []LinkOpportunity `json:"injected_links,omitempty"`
	AEO            *AEOResult        `json:"aeo,omitempty"`
	QualityScore   float64           `json:"quality_score"`
	LinkDensity    float64           `json:"link_density"`
	SemanticScore  float64           `json:"semantic_score"`
	GenerationTime time.Duration     `json:"generation_time"`
	ProcessingTime time.Duration     `json:"processing_time"`
}
