// Package seo builds document head metadata: title, description, Open Graph,
// Twitter card, canonical link and JSON-LD.
package seo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anotherclibrary/acsite/pkg/node"
)

// DefaultStylesheet is the path of the embedded site stylesheet.
const DefaultStylesheet = "/assets/index.css"

// Site holds the site-wide metadata.
type Site struct {
	// Title is the site title. Page titles render as "<page> | <Title>".
	Title string
	// Description is the meta description for SEO
	Description string
	// Author is used as the Twitter creator and JSON-LD author
	Author string
	// BaseURL is the absolute site URL. Empty disables the canonical link.
	BaseURL string
	// PathPrefix is the path the site is mounted under, e.g. "/acl". It is
	// prepended to page URLs and the default stylesheet.
	PathPrefix string
	// Language is the page language (default: "en")
	Language string
	// Stylesheet is linked from every page (default: DefaultStylesheet)
	Stylesheet string
}

// Injector emits head metadata for pages of one site.
type Injector struct {
	site Site
}

// New creates an injector for site.
func New(site Site) *Injector {
	if site.Language == "" {
		site.Language = "en"
	}
	site.PathPrefix = strings.TrimSuffix(site.PathPrefix, "/")
	if site.PathPrefix != "" && !strings.HasPrefix(site.PathPrefix, "/") {
		site.PathPrefix = "/" + site.PathPrefix
	}
	if site.Stylesheet == "" {
		site.Stylesheet = site.PathPrefix + DefaultStylesheet
	}
	return &Injector{site: site}
}

// Language returns the site language.
func (in *Injector) Language() string {
	return in.site.Language
}

// Title applies the site title template to a page title.
func (in *Injector) Title(page string) string {
	switch {
	case in.site.Title == "":
		return page
	case page == "" || page == in.site.Title:
		return in.site.Title
	default:
		return fmt.Sprintf("%s | %s", page, in.site.Title)
	}
}

// CanonicalURL returns the canonical URL of the site root, path prefix
// included, or "" when no base URL is configured.
func (in *Injector) CanonicalURL() string {
	if in.site.BaseURL == "" {
		return ""
	}
	return in.PageURL("/")
}

// Head returns the metadata of a page titled title.
func (in *Injector) Head(title string) node.Head {
	s := in.site
	full := in.Title(title)

	h := node.Head{Title: full}
	if s.Description != "" {
		h.Meta = append(h.Meta, node.Meta{Name: "description", Content: s.Description})
	}
	if s.Author != "" {
		h.Meta = append(h.Meta, node.Meta{Name: "author", Content: s.Author})
	}

	h.Meta = append(h.Meta, node.Meta{Property: "og:title", Content: full})
	if s.Description != "" {
		h.Meta = append(h.Meta, node.Meta{Property: "og:description", Content: s.Description})
	}
	h.Meta = append(h.Meta,
		node.Meta{Property: "og:type", Content: "website"},
		node.Meta{Property: "og:locale", Content: s.Language},
	)
	canonical := in.CanonicalURL()
	if canonical != "" {
		h.Meta = append(h.Meta, node.Meta{Property: "og:url", Content: canonical})
	}

	h.Meta = append(h.Meta, node.Meta{Name: "twitter:card", Content: "summary"})
	if s.Author != "" {
		h.Meta = append(h.Meta, node.Meta{Name: "twitter:creator", Content: s.Author})
	}
	h.Meta = append(h.Meta, node.Meta{Name: "twitter:title", Content: full})
	if s.Description != "" {
		h.Meta = append(h.Meta, node.Meta{Name: "twitter:description", Content: s.Description})
	}

	if canonical != "" {
		h.Links = append(h.Links, node.HeadLink{Rel: "canonical", Href: canonical})
	}
	h.Links = append(h.Links, node.HeadLink{Rel: "stylesheet", Href: s.Stylesheet})

	h.JSONLD = in.jsonLD(canonical)
	return h
}

type webSite struct {
	Context     string  `json:"@context"`
	Type        string  `json:"@type"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	InLanguage  string  `json:"inLanguage,omitempty"`
	Author      *person `json:"author,omitempty"`
}

type person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

func (in *Injector) jsonLD(canonical string) string {
	ws := webSite{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        in.site.Title,
		Description: in.site.Description,
		URL:         canonical,
		InLanguage:  in.site.Language,
	}
	if in.site.Author != "" {
		ws.Author = &person{Type: "Person", Name: in.site.Author}
	}

	// Marshalling a struct of strings cannot fail.
	b, _ := json.Marshal(ws)
	return string(b)
}
