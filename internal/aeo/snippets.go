// Package aeo restructures generated content for answer-engine consumption:
// direct-answer boxes, lists, tables, and FAQ schema markup.
package aeo

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

// Direct-answer paragraph thresholds.
const (
	minAnswerLength   = 40
	idealAnswerLength = 160
	maxAnswerLength   = 300
	answerAcceptScore = 70
	listMinItems      = 3
	listMaxItems      = 10
	tableMinRows      = 3
	tableMaxRows      = 8
	maxFAQEntries     = 5
	listSnippetScore  = 75
	tableSnippetScore = 80
	faqSnippetScore   = 85
)

// definitionalPattern matches paragraphs that open with a defining clause.
var definitionalPattern = regexp.MustCompile(`(?i)^[^,.!?]{0,80}\b(is|are|means|refers to|can be defined as)\b`)

var digitPattern = regexp.MustCompile(`\d`)

// paragraphsOf splits content into markup-stripped paragraphs. HTML <p>
// blocks take precedence; plain text falls back to blank-line separation.
func paragraphsOf(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil {
		sel := doc.Find("p")
		if sel.Length() > 0 {
			paragraphs := make([]string, 0, sel.Length())
			sel.Each(func(_ int, s *goquery.Selection) {
				if text := strings.TrimSpace(s.Text()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			})
			return paragraphs
		}
	}

	var paragraphs []string
	for _, block := range strings.Split(content, "\n\n") {
		if text := strings.TrimSpace(block); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs
}

// extractDirectAnswer finds the first paragraph suitable as a direct answer:
// stripped length in [40,300], contains the primary keyword, and scores at
// least answerAcceptScore. Returns nil when no paragraph qualifies.
func extractDirectAnswer(content, primaryKeyword string) *types.AEOSnippet {
	if primaryKeyword == "" {
		return nil
	}
	lowerKeyword := strings.ToLower(primaryKeyword)

	for _, paragraph := range paragraphsOf(content) {
		if len(paragraph) < minAnswerLength || len(paragraph) > maxAnswerLength {
			continue
		}
		if !strings.Contains(strings.ToLower(paragraph), lowerKeyword) {
			continue
		}

		score := scoreAnswerParagraph(paragraph, lowerKeyword)
		if score >= answerAcceptScore {
			return &types.AEOSnippet{
				Kind:    types.SnippetParagraph,
				Content: paragraph,
				Score:   score,
				Note:    "selected as direct answer",
			}
		}
	}
	return nil
}

// scoreAnswerParagraph scores a candidate direct-answer paragraph. The
// keyword must be lowercase.
func scoreAnswerParagraph(paragraph, lowerKeyword string) int {
	score := 50
	lower := strings.ToLower(paragraph)

	switch {
	case len(paragraph) >= minAnswerLength && len(paragraph) <= idealAnswerLength:
		score += 20
	case len(paragraph) > idealAnswerLength && len(paragraph) <= maxAnswerLength:
		score += 10
	}

	if strings.Contains(lower, lowerKeyword) {
		score += 15
	}
	if strings.HasPrefix(lower, lowerKeyword) {
		score += 10
	}
	if definitionalPattern.MatchString(paragraph) {
		score += 15
	}
	if digitPattern.MatchString(paragraph) {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// extractList returns the first list block with an acceptable item count,
// verbatim, or nil.
func extractList(content string) *types.AEOSnippet {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var snippet *types.AEOSnippet
	doc.Find("ul, ol").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		items := s.ChildrenFiltered("li").Length()
		if items < listMinItems || items > listMaxItems {
			return true
		}
		html, err := goquery.OuterHtml(s)
		if err != nil {
			return true
		}
		snippet = &types.AEOSnippet{
			Kind:    types.SnippetList,
			Content: html,
			Score:   listSnippetScore,
			Note:    fmt.Sprintf("list with %d items", items),
		}
		return false
	})
	return snippet
}

// extractTable returns the first table block with an acceptable row count,
// verbatim, or nil.
func extractTable(content string) *types.AEOSnippet {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var snippet *types.AEOSnippet
	doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rows := s.Find("tr").Length()
		if rows < tableMinRows || rows > tableMaxRows {
			return true
		}
		html, err := goquery.OuterHtml(s)
		if err != nil {
			return true
		}
		snippet = &types.AEOSnippet{
			Kind:    types.SnippetTable,
			Content: html,
			Score:   tableSnippetScore,
			Note:    fmt.Sprintf("table with %d rows", rows),
		}
		return false
	})
	return snippet
}

// buildFAQSnippet renders up to five FAQ entries as an answer-engine
// friendly block with FAQPage structured data.
func buildFAQSnippet(faqs []types.FAQ) *types.AEOSnippet {
	if len(faqs) == 0 {
		return nil
	}
	if len(faqs) > maxFAQEntries {
		faqs = faqs[:maxFAQEntries]
	}

	var sb strings.Builder
	sb.WriteString("<section class=\"faq-section\">\n<h2>Frequently Asked Questions</h2>\n")
	for _, faq := range faqs {
		sb.WriteString(fmt.Sprintf("<h3>%s</h3>\n<p>%s</p>\n", faq.Question, faq.Answer))
	}
	sb.WriteString(faqStructuredData(faqs))
	sb.WriteString("</section>")

	return &types.AEOSnippet{
		Kind:    types.SnippetFAQ,
		Content: sb.String(),
		Score:   faqSnippetScore,
		Note:    fmt.Sprintf("FAQ schema with %d entries", len(faqs)),
	}
}

// faqStructuredData renders the schema.org FAQPage JSON-LD script block.
func faqStructuredData(faqs []types.FAQ) string {
	entities := make([]map[string]any, 0, len(faqs))
	for _, faq := range faqs {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  faq.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  faq.Answer,
			},
		})
	}

	schema := map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("<script type=\"application/ld+json\">%s</script>\n", data)
}
