// Package corpus loads and validates the sitemap page corpus supplied to
// the linking engine.
package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

//go:embed corpus.schema.json
var corpusSchema []byte

// Load reads a corpus JSON file, validates it against the embedded schema,
// and returns the page descriptors in file order.
func Load(path string) ([]types.SitemapPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes corpus JSON.
func Parse(data []byte) ([]types.SitemapPage, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(corpusSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate corpus: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid corpus: %s", formatSchemaErrors(result))
	}

	var pages []types.SitemapPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse corpus JSON: %w", err)
	}
	return pages, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	msg := ""
	for i, desc := range result.Errors() {
		if i > 0 {
			msg += "; "
		}
		msg += desc.String()
	}
	return msg
}
