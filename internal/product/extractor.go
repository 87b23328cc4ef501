package product

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"kancparser/internal/model"
)

// Extractor builds normalized Product records from detail-page markup.
// Extraction never fails: every field degrades to its sentinel when the
// expected markup is absent, so one badly rendered page cannot abort a
// crawl.
type Extractor struct {
	// now supplies the extraction timestamp. Injected so tests can pin it.
	now func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses detail-page markup and returns a fully populated
// Product. pageURL becomes the offer's purchase URL. Each field is
// resolved through its own fallback chain; the first structurally valid
// candidate wins and missing markup yields the field's sentinel.
func (e *Extractor) Extract(html, pageURL string) *model.Product {
	p := model.NewProduct(e.now())

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unreadable markup leaves a pure-sentinel record; the page URL
		// is still recorded on the offer so the item can be traced.
		p.Suppliers = []model.Supplier{model.NewSupplier(model.SupplierOffer{
			Price:        []model.PriceInfo{{Qnt: 1, Discount: 0, Price: 0}},
			Stock:        model.NoData,
			DeliveryTime: model.NoData,
			PackageInfo:  model.NoData,
			PurchaseURL:  pageURL,
		})}
		return p
	}

	setNonEmpty(&p.Title, extractTitle(doc))
	setNonEmpty(&p.Description, extractDescription(doc))
	setNonEmpty(&p.Article, extractArticle(doc))
	setNonEmpty(&p.Brand, extractBrand(doc))
	setNonEmpty(&p.CountryOfOrigin, extractCountry(doc))
	setNonEmpty(&p.WarrantyMonths, extractWarranty(doc))
	setNonEmpty(&p.Category, extractCategory(doc))
	p.Attributes = extractAttributes(doc)
	p.Suppliers = []model.Supplier{model.NewSupplier(buildOffer(doc, pageURL))}

	return p
}

// buildOffer assembles the single offer of the fixed seller from the
// price, stock, delivery and package fields of the page.
func buildOffer(doc *goquery.Document, pageURL string) model.SupplierOffer {
	offer := model.SupplierOffer{
		Price:        []model.PriceInfo{{Qnt: 1, Discount: 0, Price: extractPrice(doc)}},
		Stock:        model.NoData,
		DeliveryTime: model.NoData,
		PackageInfo:  model.NoData,
		PurchaseURL:  pageURL,
	}

	setNonEmpty(&offer.Stock, extractStock(doc))
	setNonEmpty(&offer.DeliveryTime, extractDelivery(doc))
	setNonEmpty(&offer.PackageInfo, extractPackageInfo(doc))

	return offer
}

// setNonEmpty overwrites dst only when the extracted value is non-empty,
// leaving the sentinel in place otherwise.
func setNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
