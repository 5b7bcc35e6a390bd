package corpus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

const fetchTimeout = 30 * time.Second

// BuildPage fetches a live URL and derives a SitemapPage descriptor from it:
// the document title (falling back to the first h1), the path slug, and the
// visible body word count.
func BuildPage(ctx context.Context, client *http.Client, pageURL string) (*types.SitemapPage, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid page URL %q", pageURL)
	}

	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s returned status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	slug := slugFromPath(parsed.Path)

	return &types.SitemapPage{
		ID:        slug,
		Title:     title,
		Slug:      slug,
		WordCount: len(strings.Fields(doc.Find("body").Text())),
		URL:       pageURL,
	}, nil
}

// slugFromPath returns the last non-empty path segment, or "home" for the
// site root.
func slugFromPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "home"
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}
