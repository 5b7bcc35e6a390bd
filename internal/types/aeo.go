package types

// SnippetKind identifies the structural shape of an answer-engine snippet.
type SnippetKind string

// Snippet kinds recognized by the optimizer.
const (
	SnippetParagraph SnippetKind = "paragraph"
	SnippetList      SnippetKind = "list"
	SnippetTable     SnippetKind = "table"
	SnippetFAQ       SnippetKind = "faq"
)

// FAQ is a single question/answer pair supplied to the optimizer.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AEOSnippet is a structured excerpt scored for answer-engine suitability.
type AEOSnippet struct {
	Kind    SnippetKind `json:"kind"`
	Content string      `json:"content"`
	Score   int         `json:"score"`
	Note    string      `json:"note,omitempty"`
}

// AEOResult is the outcome of answer-engine optimization for one piece of
// content: the snippets found, an overall score, textual recommendations,
// and the content with snippet markup injected.
type AEOResult struct {
	Snippets         []AEOSnippet `json:"snippets"`
	OverallScore     int          `json:"overall_score"`
	Recommendations  []string     `json:"recommendations"`
	OptimizedContent string       `json:"optimized_content"`
}
