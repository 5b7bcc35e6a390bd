package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel_KnownTier(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
}

func TestGetModel_UnknownTierFallsBackToStandard(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(ModelTier("turbo")))
}

func TestGetModel_FallsBackToLiteWhenNoStandard(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "small-model"}}

	assert.Equal(t, "small-model", config.GetModel(TierAdvanced))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{}

	assert.Empty(t, config.GetModel(TierStandard))
}
