package linking

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

// Scoring constants for link opportunity candidates.
const (
	baseScore            = 50
	occurrenceBonus      = 10
	occurrenceBonusCap   = 30
	shortSentenceBonus   = 10
	shortSentenceLimit   = 150
	instructionalBonus   = 10
	maxScore             = 100
	anchorProximityRange = 100
	relocateWindow       = 200
)

// Opportunities scans text for occurrences of corpus page title keywords and
// returns the best-scoring, evenly spaced link candidates, at most maxLinks.
//
// Candidates are scored in their enclosing sentence, sorted by relevance,
// truncated to maxLinks, and then passed through a spacing filter that keeps
// a candidate only if it sits at least len(text)/(maxLinks+1) characters past
// the previously kept one. On short texts with many candidates the filter can
// retain far fewer than maxLinks.
func (e *Engine) Opportunities(text string, corpus []types.SitemapPage, maxLinks int) []types.LinkOpportunity {
	if text == "" || len(corpus) == 0 || maxLinks <= 0 {
		return nil
	}

	var candidates []types.LinkOpportunity

	for _, page := range corpus {
		for _, keyword := range e.titleKeywords(page.Title) {
			for _, pos := range findOccurrences(text, keyword) {
				if hasNearbyAnchor(text, pos, len(keyword)) {
					continue
				}

				sentence := sentenceAt(text, pos)
				score := scoreCandidate(sentence, keyword)

				candidates = append(candidates, types.LinkOpportunity{
					SourceMarker:   keyword,
					TargetPageID:   page.ID,
					TargetSlug:     page.Slug,
					AnchorText:     text[pos : pos+len(keyword)],
					RelevanceScore: score,
					Context:        sentence,
					Position:       pos,
					Reason:         fmt.Sprintf("mentions %q, covered in depth by %q", keyword, page.Title),
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})
	if len(candidates) > maxLinks {
		candidates = candidates[:maxLinks]
	}

	return spaceEvenly(candidates, len(text), maxLinks)
}

// scoreCandidate scores one keyword occurrence inside its sentence.
func scoreCandidate(sentence, keyword string) int {
	score := baseScore

	occurrences := strings.Count(strings.ToLower(sentence), keyword)
	bonus := occurrences * occurrenceBonus
	if bonus > occurrenceBonusCap {
		bonus = occurrenceBonusCap
	}
	score += bonus

	if len(sentence) < shortSentenceLimit {
		score += shortSentenceBonus
	}
	if containsInstructionalVerb(sentence) {
		score += instructionalBonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// findOccurrences returns the byte offsets of every non-overlapping
// case-insensitive occurrence of keyword in text. Keyword must already be
// lowercase. Folding is done one keyword-length window at a time, so case
// pairs whose byte length changes under ToLower can never skew the offsets
// against the original text.
func findOccurrences(text, keyword string) []int {
	var offsets []int
	for pos := 0; pos+len(keyword) <= len(text); {
		if strings.EqualFold(text[pos:pos+len(keyword)], keyword) {
			offsets = append(offsets, pos)
			pos += len(keyword)
			continue
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return offsets
}

// hasNearbyAnchor reports whether an anchor tag already exists within
// anchorProximityRange characters before or after the occurrence, which
// would make a new link at this position a double-link.
func hasNearbyAnchor(text string, pos, length int) bool {
	start := max(pos-anchorProximityRange, 0)
	end := min(pos+length+anchorProximityRange, len(text))
	segment := strings.ToLower(text[start:end])
	return strings.Contains(segment, "<a ") || strings.Contains(segment, "</a>")
}

// spaceEvenly walks candidates in score order and keeps one only when its
// offset is at least textLen/(maxLinks+1) characters past the last kept
// candidate's offset. This trades perfect score ranking for even visual
// distribution across the document.
func spaceEvenly(candidates []types.LinkOpportunity, textLen, maxLinks int) []types.LinkOpportunity {
	if len(candidates) == 0 {
		return nil
	}

	minGap := textLen / (maxLinks + 1)
	kept := make([]types.LinkOpportunity, 0, len(candidates))
	for _, candidate := range candidates {
		if len(kept) == 0 {
			kept = append(kept, candidate)
			continue
		}
		last := kept[len(kept)-1]
		if candidate.Position >= last.Position+minGap {
			kept = append(kept, candidate)
		}
	}
	return kept
}
