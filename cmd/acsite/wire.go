package main

import (
	"github.com/anotherclibrary/acsite/internal/config"
	"github.com/anotherclibrary/acsite/internal/icons"
	"github.com/anotherclibrary/acsite/internal/layout"
	"github.com/anotherclibrary/acsite/internal/nav"
	"github.com/anotherclibrary/acsite/internal/seo"
	"github.com/anotherclibrary/acsite/internal/site"
	"github.com/anotherclibrary/acsite/pkg/node"
)

func injector(cfg config.SiteConfig) *seo.Injector {
	return seo.New(seo.Site{
		Title:       cfg.Title,
		Description: cfg.Description,
		Author:      cfg.Author,
		BaseURL:     cfg.BaseURL,
		PathPrefix:  cfg.PathPrefix,
		Language:    cfg.Language,
	})
}

// page renders the landing page with collaborators built from cfg.
func page(cfg config.SiteConfig) node.Document {
	linker := nav.Resolver{PathPrefix: cfg.PathPrefix}
	return site.NewIndexPage(site.Collaborators{
		Linker: linker,
		Icons:  icons.FontAwesome{},
		Shell: layout.New(layout.Options{
			SiteTitle: cfg.Title,
			Copyright: cfg.Copyright,
		}, linker),
		Metadata: injector(cfg),
		Lang:     cfg.Language,
	}).Render()
}
