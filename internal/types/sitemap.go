// Package types provides type definitions for structured data used throughout the content enhancement system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SitemapPage describes one page of the site corpus. The corpus is supplied
// externally and is read-only to the engines.
type SitemapPage struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	WordCount int    `json:"word_count"`
	URL       string `json:"url,omitempty"`
}
