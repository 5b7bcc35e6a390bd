package aeo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

func TestOptimize_EmptyContent(t *testing.T) {
	optimizer := NewOptimizer()

	result := optimizer.Optimize("", "carbon wheels", nil)

	assert.Empty(t, result.Snippets)
	assert.Zero(t, result.OverallScore)
	assert.Empty(t, result.OptimizedContent)
	// Every snippet kind is missing, plus the low-score structural hint.
	assert.Len(t, result.Recommendations, 5)
}

func TestOptimize_FullyStructuredContent(t *testing.T) {
	optimizer := NewOptimizer()
	content := "<p>Carbon wheels are lightweight rims built from woven carbon fiber, typically saving 300 grams per pair.</p>" +
		"<ul><li>a</li><li>b</li><li>c</li></ul>" +
		"<table><tr><td>1</td></tr><tr><td>2</td></tr><tr><td>3</td></tr></table>"
	faqs := []types.FAQ{{Question: "Are they worth it?", Answer: "Usually."}}

	result := optimizer.Optimize(content, "carbon wheels", faqs)

	require.Len(t, result.Snippets, 4)

	// mean of (100 + 75 + 80 + 85) = 85, plus 10+10+10+15 kind bonuses, clamped.
	assert.Equal(t, 100, result.OverallScore)
	assert.Empty(t, result.Recommendations)

	// The direct answer box lands before the first paragraph and the FAQ
	// section is appended at the end.
	assert.True(t, strings.HasPrefix(result.OptimizedContent, `<div class="direct-answer" data-aeo="answer">`))
	assert.True(t, strings.HasSuffix(result.OptimizedContent, "</section>"))
	assert.Contains(t, result.OptimizedContent, "faq-section")
}

func TestOptimize_UnstructuredContentGetsRecommendations(t *testing.T) {
	optimizer := NewOptimizer()
	content := "<p>Some rambling text about bicycles that never quite answers anything directly here.</p>"

	result := optimizer.Optimize(content, "carbon wheels", nil)

	assert.Empty(t, result.Snippets)
	assert.Zero(t, result.OverallScore)
	assert.Equal(t, content, result.OptimizedContent)
	assert.Len(t, result.Recommendations, 5)
}

func TestOptimize_FAQAlwaysIncludedWhenProvided(t *testing.T) {
	optimizer := NewOptimizer()
	content := "<p>Nothing here mentions the keyword at all, and there is no list or table.</p>"
	faqs := []types.FAQ{{Question: "Q1", Answer: "A1"}}

	result := optimizer.Optimize(content, "carbon wheels", faqs)

	require.Len(t, result.Snippets, 1)
	assert.Equal(t, types.SnippetFAQ, result.Snippets[0].Kind)

	// mean 85 + FAQ kind bonus 15.
	assert.Equal(t, 100, result.OverallScore)
}

func TestPrependAnswerBox_NoParagraphTag(t *testing.T) {
	result := prependAnswerBox("plain text body", "the answer")

	assert.True(t, strings.HasPrefix(result, `<div class="direct-answer"`))
	assert.True(t, strings.HasSuffix(result, "plain text body"))
}

func TestOverallScore_NoSnippets(t *testing.T) {
	assert.Zero(t, overallScore(nil))
}

func TestOverallScore_SingleKind(t *testing.T) {
	snippets := []types.AEOSnippet{{Kind: types.SnippetList, Score: 75}}

	// 75 mean + 10 list kind bonus.
	assert.Equal(t, 85, overallScore(snippets))
}

func TestRecommendations_LowScoreAddsStructuralHint(t *testing.T) {
	snippets := []types.AEOSnippet{{Kind: types.SnippetList, Score: 75}}

	recs := recommendations(snippets, 50)

	// Three missing kinds plus the structural hint.
	require.Len(t, recs, 4)
	assert.Contains(t, recs[len(recs)-1], "Restructure")
}
