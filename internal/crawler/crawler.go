package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"kancparser/internal/catalog"
	"kancparser/internal/fetch"
	"kancparser/internal/model"
	"kancparser/internal/product"
	"kancparser/internal/report"
)

// Store is the persistence collaborator. The connection is scoped to one
// crawl invocation: the crawler connects before the traversal and closes
// on every exit path. Upsert semantics belong to the implementation.
type Store interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	SaveProduct(ctx context.Context, p *model.Product) error
}

// Crawler drives the traversal: categories from the start page, listing
// pages per category, product links per page, one extracted record per
// product link, each handed to the store immediately.
//
// Control flow is strictly sequential. The pacing limiter enforces the
// inter-request delay in real time; there is no concurrency to manage.
type Crawler struct {
	// fetcher retrieves detail pages. Listing pages are fetched by the
	// navigator itself.
	fetcher fetch.Fetcher

	// navigator walks categories, pages and product links.
	navigator *catalog.Navigator

	// extractor builds a Product from detail-page markup.
	extractor *product.Extractor

	// store receives each extracted record.
	store Store

	// limiter paces product fetches at a fixed rate.
	limiter *rate.Limiter

	// categoryDelay is the longer pause after each completed category,
	// skipped after the last one.
	categoryDelay time.Duration

	// logger receives structured progress and failure records.
	logger *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithRequestDelay sets the fixed pause enforced after each product fetch.
// Zero disables pacing.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Crawler) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithCategoryDelay sets the pause after each completed category.
func WithCategoryDelay(d time.Duration) Option {
	return func(c *Crawler) {
		c.categoryDelay = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// New creates a Crawler over the given collaborators.
func New(fetcher fetch.Fetcher, navigator *catalog.Navigator, extractor *product.Extractor, store Store, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:       fetcher,
		navigator:     navigator,
		extractor:     extractor,
		store:         store,
		limiter:       rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		categoryDelay: 2 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Run crawls the whole site starting from startURL: discovers categories
// and processes each in turn. A failing category is logged and skipped;
// it never aborts its siblings. The store connection wraps the entire
// traversal and is released on every exit path.
func (c *Crawler) Run(ctx context.Context, startURL string) (*report.Summary, error) {
	summary := report.NewSummary(startURL, time.Now())
	defer func() { summary.Elapsed = time.Since(summary.StartedAt) }()

	if err := c.store.Connect(ctx); err != nil {
		return summary, err
	}
	defer c.closeStore(ctx)

	c.logger.Info("crawl started", "startURL", startURL)

	categories, err := c.navigator.Categories(ctx, startURL)
	if err != nil {
		return summary, fmt.Errorf("discover categories: %w", err)
	}
	summary.Categories = len(categories)
	c.logger.Info("categories discovered", "count", len(categories))

	for i, categoryURL := range categories {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		c.logger.Info("processing category",
			"category", categoryURL,
			"position", fmt.Sprintf("%d/%d", i+1, len(categories)),
		)

		if err := c.processCategory(ctx, categoryURL, summary); err != nil {
			c.logger.Error("category failed", "category", categoryURL, "error", err)
			summary.AddFailure("category "+categoryURL, err)
		}

		// Pause between categories, not after the last one.
		if i < len(categories)-1 {
			if err := c.pause(ctx, c.categoryDelay); err != nil {
				return summary, err
			}
		}
	}

	c.logger.Info("crawl finished",
		"saved", summary.ProductsSaved,
		"skipped", summary.ProductsSkipped,
	)
	return summary, nil
}

// RunCategory crawls a single category. Used for manual reprocessing;
// each call acquires and releases its own store connection.
func (c *Crawler) RunCategory(ctx context.Context, categoryURL string) (*report.Summary, error) {
	summary := report.NewSummary(categoryURL, time.Now())
	defer func() { summary.Elapsed = time.Since(summary.StartedAt) }()

	if err := c.store.Connect(ctx); err != nil {
		return summary, err
	}
	defer c.closeStore(ctx)

	summary.Categories = 1
	c.logger.Info("category crawl started", "category", categoryURL)

	if err := c.processCategory(ctx, categoryURL, summary); err != nil {
		c.logger.Error("category failed", "category", categoryURL, "error", err)
		summary.AddFailure("category "+categoryURL, err)
	}

	c.logger.Info("category crawl finished",
		"saved", summary.ProductsSaved,
		"skipped", summary.ProductsSkipped,
	)
	return summary, nil
}

// processCategory walks every listing page of one category. A failing
// page is logged and skipped without aborting the category.
func (c *Crawler) processCategory(ctx context.Context, categoryURL string, summary *report.Summary) error {
	pages, err := c.navigator.PageLinks(ctx, categoryURL)
	if err != nil {
		return fmt.Errorf("enumerate pages: %w", err)
	}
	c.logger.Info("pages found", "category", categoryURL, "count", len(pages))

	for i, pageURL := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		summary.Pages++
		c.logger.Debug("processing page",
			"page", pageURL,
			"position", fmt.Sprintf("%d/%d", i+1, len(pages)),
		)

		if err := c.processPage(ctx, pageURL, summary); err != nil {
			c.logger.Error("page failed", "page", pageURL, "error", err)
			summary.AddFailure("page "+pageURL, err)
		}
	}

	return nil
}

// processPage extracts and stores every product linked from one listing
// page. A failing product is logged and skipped without aborting the page.
func (c *Crawler) processPage(ctx context.Context, pageURL string, summary *report.Summary) error {
	links, err := c.navigator.ProductLinks(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("extract product links: %w", err)
	}
	summary.ProductsFound += len(links)
	c.logger.Debug("products found", "page", pageURL, "count", len(links))

	for _, productURL := range links {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.processProduct(ctx, productURL); err != nil {
			c.logger.Warn("product skipped", "product", productURL, "error", err)
			summary.ProductsSkipped++
			summary.AddFailure("product "+productURL, err)
		} else {
			summary.ProductsSaved++
		}

		// Politeness pacing after every product fetch.
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

// processProduct fetches one detail page, extracts its record, and hands
// it to the store. A page that cannot be fetched yields no record; that
// is the only hard failure on the product path, since extraction itself
// degrades to sentinels instead of failing.
func (c *Crawler) processProduct(ctx context.Context, productURL string) error {
	html, err := c.fetcher.Fetch(ctx, productURL)
	if err != nil {
		return err
	}

	p := c.extractor.Extract(html, productURL)
	if err := c.store.SaveProduct(ctx, p); err != nil {
		return err
	}

	c.logger.Info("product saved", "article", p.Article, "title", p.Title)
	return nil
}

// pause sleeps for d while honoring cancellation.
func (c *Crawler) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// closeStore releases the store connection. Failures are logged only.
func (c *Crawler) closeStore(ctx context.Context) {
	if err := c.store.Close(ctx); err != nil {
		c.logger.Error("store close failed", "error", err)
	}
}
