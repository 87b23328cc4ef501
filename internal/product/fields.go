package product

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"kancparser/internal/model"
)

// Detail-page markup contract. As with the listing selectors, these are
// fixed by the storefront theme.
const (
	propsTableSelector = "table.props_list"
	charNameSelector   = "td.char_name"
	charValueSelector  = "td.char_value"
	descriptionTab     = "#description .detail_text"
	legacyDescription  = ".detail_text"
	pricePanelSelector = "div.price"
	priceValueSelector = "span.price_value"
	stockSelector      = "div.item-stock"
	deliverySelector   = "div.my_delivery"
	priceDataAttr      = "data-value"
)

// Localized row labels of the characteristics table.
const (
	labelArticle  = "Артикул"
	labelBarcode  = "ШтрихКод"
	labelBrand    = "Бренд"
	labelCountry  = "Производитель"
	labelCategory = "Категория товара"
	labelPackage  = "Кол-во в упаковке"
	labelWarranty = "Гарантия"
)

// excludedAttributes are props-table rows captured as dedicated Product
// fields; they must not reappear in the attribute list. Keys are folded
// with foldName.
var excludedAttributes = map[string]bool{
	"бренд":            true,
	"артикул":          true,
	"штрихкод":         true,
	"производитель":    true,
	"категория товара": true,
	"код":              true,
	"название":         true,
	"описание":         true,
	"цена":             true,
	"стоимость":        true,
}

// firstNonEmpty evaluates candidates in priority order and returns the
// first non-empty result. Every field chain is expressed this way instead
// of nested conditionals.
func firstNonEmpty(candidates ...func() string) string {
	for _, candidate := range candidates {
		if v := candidate(); v != "" {
			return v
		}
	}
	return ""
}

// extractTitle: structured metadata, then the page heading, then the
// document title.
func extractTitle(doc *goquery.Document) string {
	return firstNonEmpty(
		func() string { return metaItemprop(doc, "name") },
		func() string { return cleanText(doc.Find("h1").First().Text()) },
		func() string { return cleanText(doc.Find("title").First().Text()) },
	)
}

// extractDescription: the description tab pane (rendered in the DOM even
// when the tab is inactive), then the legacy description block, then the
// metadata description. The metadata value is accepted only when it
// differs from the title, because the site mirrors the title there on
// pages without a real description.
func extractDescription(doc *goquery.Document) string {
	return firstNonEmpty(
		func() string { return cleanText(doc.Find(descriptionTab).First().Text()) },
		func() string { return cleanText(doc.Find(legacyDescription).First().Text()) },
		func() string {
			desc := metaItemprop(doc, "description")
			if desc == metaItemprop(doc, "name") {
				return ""
			}
			return desc
		},
	)
}

// extractArticle: the props-table row wins over metadata because the table
// is hand-maintained; the barcode row is the last resort.
func extractArticle(doc *goquery.Document) string {
	return firstNonEmpty(
		func() string { return propsRow(doc, labelArticle) },
		func() string { return metaItemprop(doc, "sku") },
		func() string { return propsRow(doc, labelBarcode) },
	)
}

func extractBrand(doc *goquery.Document) string {
	return propsRow(doc, labelBrand)
}

func extractCountry(doc *goquery.Document) string {
	return propsRow(doc, labelCountry)
}

func extractWarranty(doc *goquery.Document) string {
	return propsRow(doc, labelWarranty)
}

// extractCategory resolves the leaf of the category chain: from the
// metadata breadcrumb first, else from the props-table row.
func extractCategory(doc *goquery.Document) string {
	return firstNonEmpty(
		func() string { return categoryLeaf(metaItemprop(doc, "category")) },
		func() string { return categoryLeaf(propsRow(doc, labelCategory)) },
	)
}

// categoryLeaf returns the last "/"-delimited segment of a breadcrumb
// string, trimmed. Empty input yields empty so the chain continues.
func categoryLeaf(chain string) string {
	if chain == "" {
		return ""
	}
	parts := strings.Split(chain, "/")
	return strings.TrimSpace(parts[len(parts)-1])
}

// priceHead matches the leading decimal number of a price string, e.g.
// "129.50 руб." or "1 299,00 ₽" after whitespace collapsing.
var priceHead = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)

// extractPrice: the price panel's numeric data attribute is pre-parsed by
// the site and most reliable; the rendered text and the metadata price
// are progressively noisier. When nothing parses, the price is 0.
func extractPrice(doc *goquery.Document) float64 {
	panel := doc.Find(pricePanelSelector).First()

	if raw, ok := panel.Attr(priceDataAttr); ok {
		if v, err := parsePrice(raw); err == nil {
			return v
		}
	}

	if text := cleanText(panel.Find(priceValueSelector).First().Text()); text != "" {
		if m := priceHead.FindString(text); m != "" {
			if v, err := parsePrice(m); err == nil {
				return v
			}
		}
	}

	if raw := metaItemprop(doc, "price"); raw != "" {
		if v, err := parsePrice(raw); err == nil {
			return v
		}
	}

	return 0
}

// parsePrice parses a decimal that may use a comma separator.
func parsePrice(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
}

func extractStock(doc *goquery.Document) string {
	return cleanText(doc.Find(stockSelector).First().Text())
}

func extractDelivery(doc *goquery.Document) string {
	return cleanText(doc.Find(deliverySelector).First().Text())
}

// extractPackageInfo reformats the raw per-package quantity row into a
// human-readable phrase.
func extractPackageInfo(doc *goquery.Document) string {
	count := propsRow(doc, labelPackage)
	if count == "" {
		return ""
	}
	return count + " шт в упаковке"
}

// extractAttributes walks every characteristics table on the page. The
// theme renders the same logical table in the summary block and the
// details tab; scanning both in document order and keeping the first
// occurrence of each folded name merges them.
func extractAttributes(doc *goquery.Document) []model.Attribute {
	attributes := make([]model.Attribute, 0)
	seen := make(map[string]bool)

	doc.Find(propsTableSelector).Find("tr").Each(func(_ int, row *goquery.Selection) {
		nameCell := row.Find(charNameSelector).First()
		valueCell := row.Find(charValueSelector).First()
		if nameCell.Length() == 0 || valueCell.Length() == 0 {
			return
		}

		name := cellName(nameCell)
		value := cellValue(valueCell)
		if name == "" || value == "" {
			return
		}

		folded := foldName(name)
		if excludedAttributes[folded] || seen[folded] {
			return
		}

		attributes = append(attributes, model.Attribute{Name: name, Value: value})
		seen[folded] = true
	})

	return attributes
}

// propsRow returns the value of the first props-table row whose name
// matches label exactly, scanning all tables on the page.
func propsRow(doc *goquery.Document, label string) string {
	var value string
	doc.Find(propsTableSelector).Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		nameCell := row.Find(charNameSelector).First()
		valueCell := row.Find(charValueSelector).First()
		if nameCell.Length() == 0 || valueCell.Length() == 0 {
			return true
		}
		if cellName(nameCell) != label {
			return true
		}
		value = cellValue(valueCell)
		return false
	})
	return value
}

// cellName prefers the structured name span over the raw cell text.
func cellName(cell *goquery.Selection) string {
	if span := cell.Find("span").First(); span.Length() > 0 {
		if name := cleanText(nodeText(span)); name != "" {
			return name
		}
	}
	return cleanText(nodeText(cell))
}

// cellValue prefers link text over surrounding text: links carry the
// canonical name while the rest of the cell may hold icons or counters.
// A structured value span is the next best source.
func cellValue(cell *goquery.Selection) string {
	if link := cell.Find("a").First(); link.Length() > 0 {
		if v := cleanText(nodeText(link)); v != "" {
			return v
		}
	}
	if span := cell.Find("span").First(); span.Length() > 0 {
		if v := cleanText(nodeText(span)); v != "" {
			return v
		}
	}
	return cleanText(nodeText(cell))
}

// metaItemprop returns the content attribute of a meta tag carrying the
// given itemprop.
func metaItemprop(doc *goquery.Document, prop string) string {
	content, _ := doc.Find(`meta[itemprop="` + prop + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// nodeText collects the text nodes under a selection without goquery's
// per-node allocation overhead.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// innerWhitespace collapses runs of whitespace left behind by markup
// indentation.
var innerWhitespace = regexp.MustCompile(`\s+`)

// cleanText normalizes markup-derived text: trims, collapses whitespace.
func cleanText(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

// foldName lowercases a props-table row name for dedup and exclusion
// checks. Row names are Russian, so folding goes through x/text with the
// Russian collation rather than ASCII-only strings.ToLower.
func foldName(name string) string {
	return cases.Lower(language.Russian).String(strings.TrimSpace(name))
}
