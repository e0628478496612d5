// Package parser locates catalog listings and product descriptions in raw
// HTML. It is the only part of the pipeline that knows about a site's
// markup; everything it needs is handed in as CSS selectors.
package parser

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/prisindex/skrapa/pkg/models"
)

// Selectors identifies the catalog and detail-page elements for one site.
type Selectors struct {
	Container   string // wraps the whole listing grid
	Item        string // one listing inside the container
	Title       string // listing title element
	Link        string // anchor carrying the detail-page href
	Price       string // listing price element
	Description string // description element on the detail page
}

// Parser extracts typed fields from raw HTML.
type Parser interface {
	// Listings returns one Listing per catalog entry, with links resolved
	// to absolute URLs. A page without the container yields zero listings.
	Listings(htmlText string) ([]models.Listing, error)

	// Description returns the detail page's description text, or false
	// when the page has no description element.
	Description(htmlText string) (string, bool)
}

// HTMLParser implements Parser over goquery.
type HTMLParser struct {
	sel       Selectors
	baseURL   string
	converter *md.Converter // non-nil when descriptions keep their formatting
}

// New creates an HTMLParser. Relative listing links resolve against baseURL.
// With richText set, descriptions are converted to GitHub-flavored markdown
// instead of being flattened to plain text.
func New(sel Selectors, baseURL string, richText bool) *HTMLParser {
	p := &HTMLParser{sel: sel, baseURL: baseURL}
	if richText {
		p.converter = md.NewConverter("", true, nil)
		p.converter.Use(plugin.GitHubFlavored())
	}
	return p
}

func (p *HTMLParser) Listings(htmlText string) ([]models.Listing, error) {
	doc, err := parseDocument(htmlText)
	if err != nil {
		return nil, fmt.Errorf("parse catalog page: %w", err)
	}

	container := doc.Find(p.sel.Container)
	if container.Length() == 0 {
		log.Warn().Str("selector", p.sel.Container).Msg("Catalog container not found in page")
		return nil, nil
	}

	var listings []models.Listing
	container.Find(p.sel.Item).Each(func(i int, item *goquery.Selection) {
		href, ok := item.Find(p.sel.Link).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			log.Debug().Int("index", i).Msg("Listing without a link, skipping")
			return
		}

		listings = append(listings, models.Listing{
			Title:    item.Find(p.sel.Title).First().Text(),
			RawPrice: item.Find(p.sel.Price).First().Text(),
			Link:     resolveURL(p.baseURL, href),
		})
	})

	return listings, nil
}

func (p *HTMLParser) Description(htmlText string) (string, bool) {
	doc, err := parseDocument(htmlText)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse detail page")
		return "", false
	}

	sel := doc.Find(p.sel.Description).First()
	if sel.Length() == 0 {
		return "", false
	}

	if p.converter != nil {
		inner, err := sel.Html()
		if err == nil {
			text, cerr := p.converter.ConvertString(inner)
			if cerr == nil {
				return text, true
			}
			err = cerr
		}
		log.Warn().Err(err).Msg("Markdown conversion failed, falling back to plain text")
	}

	return sel.Text(), true
}

// parseDocument parses once with x/net/html and wraps the node tree, so a
// malformed page surfaces a real error instead of an empty selection.
func parseDocument(htmlText string) (*goquery.Document, error) {
	node, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(node), nil
}

// resolveURL resolves href against base. Already-absolute links pass
// through untouched; unparseable input falls back to raw concatenation.
func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	b, err := url.Parse(base)
	if err != nil {
		return base + href
	}
	rel, err := url.Parse(href)
	if err != nil {
		return base + href
	}
	return b.ResolveReference(rel).String()
}
