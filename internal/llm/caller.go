package llm

import (
	"context"
	"fmt"

	"github.com/Papalexios/sota-god-mode/internal/prompts"
)

// PromptCaller resolves prompt keys against the embedded template library
// and forwards the rendered prompt to a Client. It is the generative call
// collaborator handed to the scheduler.
type PromptCaller struct {
	client     Client
	promptFile string
}

// NewPromptCaller creates a PromptCaller reading templates from the given
// embedded prompt file (e.g. "content.json").
func NewPromptCaller(client Client, promptFile string) *PromptCaller {
	return &PromptCaller{client: client, promptFile: promptFile}
}

// Call renders the template for promptKey with positional arguments bound
// as {{.Arg1}}..{{.ArgN}} and generates content at the requested tier.
func (p *PromptCaller) Call(ctx context.Context, promptKey string, args []string, tier ModelTier) (string, error) {
	template, err := prompts.Get(p.promptFile, promptKey)
	if err != nil {
		return "", fmt.Errorf("unknown prompt key %q: %w", promptKey, err)
	}

	data := make(map[string]string, len(args))
	for i, arg := range args {
		data[fmt.Sprintf("Arg%d", i+1)] = arg
	}

	return p.client.GenerateContent(ctx, prompts.Format(template, data), tier)
}
