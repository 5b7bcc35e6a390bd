// Package linking discovers, scores, and injects internal link
// opportunities between a page corpus and generated content, and clusters
// the corpus into topics by title keyword overlap.
package linking

import (
	"regexp"
	"strings"
)

// minKeywordLength filters out short words that carry no topical signal.
const minKeywordLength = 4

// defaultStopWords is the fixed stop-word set applied to page titles.
// Kept as configuration data so it can be extended without touching the
// extraction logic.
var defaultStopWords = []string{
	"the", "and", "for", "with", "your", "from", "this", "that",
	"what", "when", "where", "which", "how", "why", "are", "was",
	"were", "been", "being", "have", "has", "had", "will", "would",
	"should", "could", "about", "into", "over", "under", "them",
	"they", "their", "there", "here", "than", "then", "these", "those",
}

// instructionalVerbs boost sentences that invite the reader to follow a link.
var instructionalVerbs = []string{"learn", "read", "guide"}

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// sentencePattern matches sentence-terminator runs.
var sentencePattern = regexp.MustCompile(`[.!?]+`)

// titleKeywords extracts the keyword set from a page title: lowercase words
// with stop words and words shorter than four characters removed.
func (e *Engine) titleKeywords(title string) []string {
	words := wordPattern.FindAllString(strings.ToLower(title), -1)

	keywords := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, word := range words {
		if len(word) < minKeywordLength {
			continue
		}
		if e.stopWords[word] {
			continue
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}

// sentenceAt returns the sentence enclosing the given position, where
// sentences are delimited by runs of '.', '!' or '?'.
func sentenceAt(text string, pos int) string {
	if pos < 0 || pos >= len(text) {
		return ""
	}

	start := 0
	end := len(text)
	for _, bounds := range sentencePattern.FindAllStringIndex(text, -1) {
		if bounds[1] <= pos {
			start = bounds[1]
			continue
		}
		end = bounds[1]
		break
	}

	return strings.TrimSpace(text[start:end])
}

// containsInstructionalVerb reports whether the sentence contains any of the
// configured instructional verbs, case-insensitively.
func containsInstructionalVerb(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, verb := range instructionalVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}
