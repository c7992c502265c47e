package config

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips every tag. Site strings are rendered as text nodes, so
// markup in a config file or environment variable is dropped, not escaped.
var textPolicy = bluemonday.StrictPolicy()

// plainText returns s without markup. Entities escaped by the policy are
// decoded again since the renderer escapes text itself.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// sanitize strips markup from the free-text site fields.
func (s *SiteConfig) sanitize() {
	s.Title = plainText(s.Title)
	s.Description = plainText(s.Description)
	s.Author = plainText(s.Author)
	s.Copyright = plainText(s.Copyright)
}
