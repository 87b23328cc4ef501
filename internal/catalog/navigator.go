package catalog

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kancparser/internal/fetch"
)

// Markup contract of the storefront. The selectors and the pagination
// query key are fixed by the site's rendering, like the CSS classes the
// theme emits; they are constants, not configuration.
const (
	// paginationKey is the query parameter Bitrix uses for listing pages.
	paginationKey = "PAGEN_1"

	// catalogRoot is the path prefix every product detail URL lives under.
	catalogRoot = "/catalog/"

	// minPathSlashes is the minimum number of "/" in a qualifying product
	// href. Category and root links sit higher in the hierarchy and have
	// fewer segments.
	minPathSlashes = 3

	// itemBlockSelector marks one product summary on a listing page.
	itemBlockSelector = "div.item_block"

	// titleLinkSelector marks title anchors inside item blocks and
	// category anchors on the start page.
	titleLinkSelector = "a.dark_link"

	// categoryItemSelector marks one category entry on the start page.
	categoryItemSelector = "li.name"
)

// pagenPattern matches pagination-parameter occurrences anywhere in raw
// listing markup. The page index appears in query strings of pager links,
// so this is a text scan, not a DOM lookup.
var pagenPattern = regexp.MustCompile(paginationKey + `=(\d+)`)

// Navigator walks the catalog structure: categories on the start page,
// listing pages within a category, and product links on a listing page.
// It fetches through the injected Fetcher and resolves every href it
// returns to an absolute URL.
type Navigator struct {
	// fetcher retrieves raw listing markup.
	fetcher fetch.Fetcher

	// base is the site root used to resolve relative hrefs.
	base *url.URL
}

// NewNavigator creates a Navigator for the site rooted at baseURL.
func NewNavigator(fetcher fetch.Fetcher, baseURL string) (*Navigator, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &Navigator{fetcher: fetcher, base: base}, nil
}

// Categories returns the absolute URLs of all category pages linked from
// the start page. A fetch failure propagates; the caller decides whether
// to abort the crawl.
func (n *Navigator) Categories(ctx context.Context, startURL string) ([]string, error) {
	html, err := n.fetcher.Fetch(ctx, startURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse start page: %w", err)
	}

	categories := make([]string, 0)
	doc.Find(categoryItemSelector).Each(func(_ int, item *goquery.Selection) {
		link := item.Find(titleLinkSelector).First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		if resolved := n.resolve(href); resolved != "" {
			categories = append(categories, resolved)
		}
	})

	return categories, nil
}

// PageCount returns the number of listing pages in a category. It fetches
// the category's first page and takes the maximum pagination index found
// in the raw markup; a category with no pagination markers has exactly
// one page. A fetch failure propagates, never a silent default.
func (n *Navigator) PageCount(ctx context.Context, categoryURL string) (int, error) {
	html, err := n.fetcher.Fetch(ctx, categoryURL)
	if err != nil {
		return 0, err
	}

	maxPage := 1
	for _, m := range pagenPattern.FindAllStringSubmatch(html, -1) {
		page, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if page > maxPage {
			maxPage = page
		}
	}

	return maxPage, nil
}

// PageLinks returns the per-page listing URLs of a category, in order
// from page 1 to PageCount.
func (n *Navigator) PageLinks(ctx context.Context, categoryURL string) ([]string, error) {
	count, err := n.PageCount(ctx, categoryURL)
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, count)
	for page := 1; page <= count; page++ {
		pages = append(pages, fmt.Sprintf("%s?%s=%d", categoryURL, paginationKey, page))
	}
	return pages, nil
}

// ProductLinks returns the unique product-detail URLs on one listing
// page: absolute, deduplicated, and lexicographically sorted so that
// downstream processing order is deterministic.
func (n *Navigator) ProductLinks(ctx context.Context, pageURL string) ([]string, error) {
	html, err := n.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	seen := make(map[string]bool)
	doc.Find(itemBlockSelector).Each(func(_ int, block *goquery.Selection) {
		block.Find(titleLinkSelector).Each(func(_ int, link *goquery.Selection) {
			href, ok := link.Attr("href")
			if !ok || !qualifiesAsProduct(href) {
				return
			}
			if resolved := n.resolve(href); resolved != "" {
				seen[resolved] = true
			}
		})
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)

	return links, nil
}

// qualifiesAsProduct reports whether an href points at a product detail
// page. Listing blocks also carry links back to the category and brand
// pages; the catalog-root prefix plus the segment-depth floor filters
// those out.
func qualifiesAsProduct(href string) bool {
	return strings.HasPrefix(href, catalogRoot) && strings.Count(href, "/") >= minPathSlashes
}

// resolve turns a relative href into an absolute URL against the site base.
func (n *Navigator) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return n.base.ResolveReference(ref).String()
}
