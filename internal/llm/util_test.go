package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_StripsJSONFence(t *testing.T) {
	input := "```json\n{\"key\": \"value\"}\n```"

	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_StripsBareFenceWithLanguage(t *testing.T) {
	input := "```javascript\n[1, 2, 3]\n```"

	assert.Equal(t, "[1, 2, 3]", CleanJSONBlock(input))
}

func TestCleanJSONBlock_FenceOpeningStraightIntoPayload(t *testing.T) {
	// No language identifier: the first line is the payload itself.
	input := "```\n{\"a\": 1}\n```"

	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_PassthroughWithoutFences(t *testing.T) {
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(`  {"key": "value"}  `))
}

func TestCleanJSONBlock_PayloadContainingBackticks(t *testing.T) {
	// Only the outer fence is removed.
	input := "```json\n{\"code\": \"use ``` for blocks\"}\n```"

	assert.Equal(t, "{\"code\": \"use ``` for blocks\"}", CleanJSONBlock(input))
}
