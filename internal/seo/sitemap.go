package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	Priority string `xml:"priority,omitempty"`
}

// PageURL returns the URL of a site path under the path prefix: absolute
// when a base URL is configured, root-relative otherwise.
func (in *Injector) PageURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(in.site.BaseURL, "/") + in.site.PathPrefix + path
}

// Sitemap returns a sitemap listing paths in the given order.
func (in *Injector) Sitemap(paths ...string) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS}
	for i, p := range paths {
		u := sitemapURL{Loc: in.PageURL(p)}
		if i == 0 {
			u.Priority = "1.0"
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Robots returns a robots.txt allowing every crawler and pointing at the
// sitemap.
func (in *Injector) Robots() []byte {
	var sb strings.Builder
	sb.WriteString("User-agent: *\nAllow: /\n")
	if in.site.BaseURL != "" {
		sb.WriteString("\nSitemap: " + in.PageURL("/sitemap.xml") + "\n")
	}
	return []byte(sb.String())
}
