package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentQualityScore_Empty(t *testing.T) {
	assert.Zero(t, contentQualityScore(""))
	assert.Zero(t, contentQualityScore("   \n  "))
}

func TestContentQualityScore_ShortPlainText(t *testing.T) {
	// Under 300 words, no structural markup: base score only.
	assert.Equal(t, 40.0, contentQualityScore("just a few plain words"))
}

func TestContentQualityScore_MediumContent(t *testing.T) {
	content := strings.Repeat("word ", 400)

	assert.Equal(t, 50.0, contentQualityScore(content))
}

func TestContentQualityScore_FullyStructuredLongContent(t *testing.T) {
	content := "<h2>Title</h2><ul><li>a</li></ul><table><tr><td>x</td></tr></table>" +
		`<a href="y">link</a>` + strings.Repeat("word ", 900)

	// 40 base + 20 long + 15 heading + 10 list + 5 table + 10 link = 100.
	assert.Equal(t, 100.0, contentQualityScore(content))
}

func TestLinkDensity(t *testing.T) {
	content := `<a href="x">one</a> <a href="y">two</a> ` + strings.Repeat("word ", 98)

	// 2 anchors over 100 words.
	assert.InDelta(t, 20.0, linkDensity(content), 0.001)
}

func TestLinkDensity_NoWords(t *testing.T) {
	assert.Zero(t, linkDensity(""))
}

func TestSemanticRichness(t *testing.T) {
	// 2 unique words out of 4.
	assert.InDelta(t, 50.0, semanticRichness("alpha alpha beta beta"), 0.001)
	assert.Zero(t, semanticRichness(""))
	assert.InDelta(t, 100.0, semanticRichness("alpha beta gamma"), 0.001)
}

func TestWordCount_StripsMarkup(t *testing.T) {
	assert.Equal(t, 2, wordCount("<p>two words</p>"))
}
