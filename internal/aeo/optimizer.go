package aeo

import (
	"fmt"
	"strings"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

// Kind bonuses added to the overall score per distinct snippet kind present.
const (
	paragraphKindBonus = 10
	listKindBonus      = 10
	tableKindBonus     = 10
	faqKindBonus       = 15
	lowScoreThreshold  = 70
)

// Optimizer restructures content for answer-engine consumption. Construct
// one instance at process start; it is stateless and safe to share.
type Optimizer struct{}

// NewOptimizer creates an Optimizer.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize extracts answer-engine snippets from content and returns the
// snippets, an overall score, recommendations for missing snippet kinds,
// and the content with a direct-answer box and FAQ markup injected. The
// mutation is strictly additive; surrounding markup is never reflowed.
func (o *Optimizer) Optimize(content, primaryKeyword string, faqs []types.FAQ) types.AEOResult {
	result := types.AEOResult{OptimizedContent: content}
	if strings.TrimSpace(content) == "" {
		result.Recommendations = recommendations(nil, 0)
		return result
	}

	answer := extractDirectAnswer(content, primaryKeyword)
	if answer != nil {
		result.Snippets = append(result.Snippets, *answer)
	}
	list := extractList(content)
	if list != nil {
		result.Snippets = append(result.Snippets, *list)
	}
	table := extractTable(content)
	if table != nil {
		result.Snippets = append(result.Snippets, *table)
	}
	faq := buildFAQSnippet(faqs)
	if faq != nil {
		result.Snippets = append(result.Snippets, *faq)
	}

	if answer != nil {
		result.OptimizedContent = prependAnswerBox(result.OptimizedContent, answer.Content)
	}
	if faq != nil {
		result.OptimizedContent += "\n" + faq.Content
	}

	result.OverallScore = overallScore(result.Snippets)
	result.Recommendations = recommendations(result.Snippets, result.OverallScore)

	return result
}

// prependAnswerBox inserts a direct-answer box immediately before the first
// paragraph tag in the document. Content without a paragraph tag gets the
// box at the very top.
func prependAnswerBox(content, answer string) string {
	box := fmt.Sprintf("<div class=\"direct-answer\" data-aeo=\"answer\"><p>%s</p></div>\n", answer)

	idx := strings.Index(content, "<p")
	if idx < 0 {
		return box + content
	}
	return content[:idx] + box + content[idx:]
}

// overallScore is the mean snippet score plus a fixed bonus per distinct
// snippet kind present, clamped to 100. No snippets yields zero.
func overallScore(snippets []types.AEOSnippet) int {
	if len(snippets) == 0 {
		return 0
	}

	sum := 0
	kinds := make(map[types.SnippetKind]bool, len(snippets))
	for _, snippet := range snippets {
		sum += snippet.Score
		kinds[snippet.Kind] = true
	}

	score := sum / len(snippets)
	if kinds[types.SnippetParagraph] {
		score += paragraphKindBonus
	}
	if kinds[types.SnippetList] {
		score += listKindBonus
	}
	if kinds[types.SnippetTable] {
		score += tableKindBonus
	}
	if kinds[types.SnippetFAQ] {
		score += faqKindBonus
	}

	if score > 100 {
		score = 100
	}
	return score
}

// recommendations emits one fixed suggestion per missing snippet kind plus a
// generic structural hint when the overall score is low.
func recommendations(snippets []types.AEOSnippet, overall int) []string {
	kinds := make(map[types.SnippetKind]bool, len(snippets))
	for _, snippet := range snippets {
		kinds[snippet.Kind] = true
	}

	var recs []string
	if !kinds[types.SnippetParagraph] {
		recs = append(recs, "Add a concise 40-160 character paragraph that directly answers the primary question")
	}
	if !kinds[types.SnippetList] {
		recs = append(recs, "Add a bulleted or numbered list with 3-10 items summarizing key points")
	}
	if !kinds[types.SnippetTable] {
		recs = append(recs, "Add a comparison table with 3-8 rows of structured data")
	}
	if !kinds[types.SnippetFAQ] {
		recs = append(recs, "Add an FAQ section with schema.org FAQPage markup")
	}
	if overall < lowScoreThreshold {
		recs = append(recs, "Restructure content with clear headings and self-contained sections so answer engines can extract them")
	}
	return recs
}
