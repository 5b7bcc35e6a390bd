package pipeline

import (
	"regexp"
	"strings"
)

// Content scoring weights. Scores are heuristic and lexical; they exist to
// make before/after comparison and trend tracking possible, not to judge
// prose quality.
const (
	qualityBase          = 40
	longContentBonus     = 20
	mediumContentBonus   = 10
	headingBonus         = 15
	listBonus            = 10
	tableBonus           = 5
	linkBonus            = 10
	longContentWords     = 800
	mediumContentWords   = 300
	densityPerThousandWd = 1000.0
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	anchorPattern = regexp.MustCompile(`<a\s`)
)

// contentQualityScore rates a piece of content on structural completeness:
// length, headings, lists, tables, and internal links. Returns 0-100.
func contentQualityScore(content string) float64 {
	if strings.TrimSpace(content) == "" {
		return 0
	}

	score := qualityBase

	words := wordCount(content)
	switch {
	case words >= longContentWords:
		score += longContentBonus
	case words >= mediumContentWords:
		score += mediumContentBonus
	}

	lower := strings.ToLower(content)
	if strings.Contains(lower, "<h2") || strings.Contains(lower, "<h3") {
		score += headingBonus
	}
	if strings.Contains(lower, "<ul") || strings.Contains(lower, "<ol") {
		score += listBonus
	}
	if strings.Contains(lower, "<table") {
		score += tableBonus
	}
	if anchorPattern.MatchString(lower) {
		score += linkBonus
	}

	if score > 100 {
		score = 100
	}
	return float64(score)
}

// linkDensity is the number of anchor tags per thousand words.
func linkDensity(content string) float64 {
	words := wordCount(content)
	if words == 0 {
		return 0
	}
	anchors := len(anchorPattern.FindAllString(strings.ToLower(content), -1))
	return float64(anchors) / float64(words) * densityPerThousandWd
}

// semanticRichness is the lexical diversity of the stripped text: the ratio
// of unique words to total words, scaled to 0-100.
func semanticRichness(content string) float64 {
	words := strings.Fields(strings.ToLower(stripTags(content)))
	if len(words) == 0 {
		return 0
	}

	unique := make(map[string]bool, len(words))
	for _, word := range words {
		unique[word] = true
	}
	return float64(len(unique)) / float64(len(words)) * 100
}

func wordCount(content string) int {
	return len(strings.Fields(stripTags(content)))
}

func stripTags(content string) string {
	return tagPattern.ReplaceAllString(content, " ")
}
