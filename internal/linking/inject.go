package linking

import (
	"fmt"
	"strings"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

// Inject substitutes anchor tags for the given opportunities, in the order
// given. Earlier insertions shift downstream offsets, so each anchor text is
// re-located within the first relocateWindow characters starting at the
// opportunity's recorded offset; when no match is found inside that window
// the opportunity is skipped silently (offset drift exceeded tolerance).
//
// A recorded offset is marked used after injection so a stale duplicate
// opportunity cannot re-inject at the same position, and a match that
// already sits inside an anchor tag is skipped, which makes re-running
// Inject on already-injected content a no-op for those positions.
func (e *Engine) Inject(text string, opportunities []types.LinkOpportunity) string {
	used := make(map[int]bool, len(opportunities))

	for _, opp := range opportunities {
		if used[opp.Position] {
			continue
		}
		if opp.Position < 0 || opp.Position > len(text) || opp.AnchorText == "" {
			continue
		}

		windowEnd := min(opp.Position+relocateWindow, len(text))
		window := text[opp.Position:windowEnd]

		idx := strings.Index(strings.ToLower(window), strings.ToLower(opp.AnchorText))
		if idx < 0 {
			continue
		}

		matchStart := opp.Position + idx
		matchEnd := matchStart + len(opp.AnchorText)
		if insideAnchor(text, matchStart) {
			continue
		}

		anchor := fmt.Sprintf(`<a href="%s">%s</a>`, opp.TargetSlug, text[matchStart:matchEnd])
		text = text[:matchStart] + anchor + text[matchEnd:]
		used[opp.Position] = true
	}

	return text
}

// insideAnchor reports whether pos falls inside an unclosed <a> tag.
func insideAnchor(text string, pos int) bool {
	before := text[:pos]
	lastOpen := strings.LastIndex(before, "<a ")
	lastClose := strings.LastIndex(before, "</a>")
	return lastOpen > lastClose
}
