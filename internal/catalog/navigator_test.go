package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// fakeFetcher serves canned HTML per URL and records fetch calls.
type fakeFetcher struct {
	pages map[string]string
	calls []string
}

var errPageUnavailable = errors.New("page unavailable")

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (string, error) {
	f.calls = append(f.calls, pageURL)
	html, ok := f.pages[pageURL]
	if !ok {
		return "", errPageUnavailable
	}
	return html, nil
}

const baseURL = "https://kanc-mir.ru"

// TestNavigatorCategories tests category discovery on the start page.
func TestNavigatorCategories(t *testing.T) {
	t.Parallel()

	t.Run("collects category links from name items", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{pages: map[string]string{
			baseURL + "/catalog/": `
				<ul>
					<li class="name"><a class="dark_link" href="/catalog/bumaga/">Бумага</a></li>
					<li class="name"><a class="dark_link" href="/catalog/ruchki/">Ручки</a></li>
					<li class="name"><span>no link</span></li>
					<li class="other"><a class="dark_link" href="/catalog/skipped/">x</a></li>
				</ul>`,
		}}

		nav, err := NewNavigator(fetcher, baseURL)
		if err != nil {
			t.Fatal(err)
		}

		categories, err := nav.Categories(context.Background(), baseURL+"/catalog/")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}

		want := []string{
			baseURL + "/catalog/bumaga/",
			baseURL + "/catalog/ruchki/",
		}
		if len(categories) != len(want) {
			t.Fatalf("got %d categories, expected %d: %v", len(categories), len(want), categories)
		}
		for i := range want {
			if categories[i] != want[i] {
				t.Errorf("got %q, expected %q", categories[i], want[i])
			}
		}
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		t.Parallel()

		nav, err := NewNavigator(&fakeFetcher{pages: map[string]string{}}, baseURL)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := nav.Categories(context.Background(), baseURL+"/catalog/"); !errors.Is(err, errPageUnavailable) {
			t.Errorf("got %v, expected fetch error to propagate", err)
		}
	})
}

// TestNavigatorPageCount tests pagination inference from raw markup.
func TestNavigatorPageCount(t *testing.T) {
	t.Parallel()

	t.Run("takes the maximum pagination index", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{pages: map[string]string{
			baseURL + "/catalog/bumaga/": `
				<a href="?PAGEN_1=2">2</a>
				<a href="?PAGEN_1=3">3</a>
				<a href="?PAGEN_1=7">последняя</a>`,
		}}

		nav, _ := NewNavigator(fetcher, baseURL)
		count, err := nav.PageCount(context.Background(), baseURL+"/catalog/bumaga/")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if count != 7 {
			t.Errorf("got %d, expected 7", count)
		}
	})

	t.Run("no markers means one page", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{pages: map[string]string{
			baseURL + "/catalog/malenkaya/": `<div class="item_block">единственная страница</div>`,
		}}

		nav, _ := NewNavigator(fetcher, baseURL)
		count, err := nav.PageCount(context.Background(), baseURL+"/catalog/malenkaya/")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if count != 1 {
			t.Errorf("got %d, expected 1", count)
		}
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		t.Parallel()

		nav, _ := NewNavigator(&fakeFetcher{pages: map[string]string{}}, baseURL)
		if _, err := nav.PageCount(context.Background(), baseURL+"/catalog/x/"); !errors.Is(err, errPageUnavailable) {
			t.Errorf("got %v, expected fetch error to propagate", err)
		}
	})
}

// TestNavigatorPageLinks tests listing URL enumeration.
func TestNavigatorPageLinks(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		baseURL + "/catalog/bumaga/": `<a href="?PAGEN_1=3">3</a>`,
	}}

	nav, _ := NewNavigator(fetcher, baseURL)
	pages, err := nav.PageLinks(context.Background(), baseURL+"/catalog/bumaga/")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := []string{
		baseURL + "/catalog/bumaga/?PAGEN_1=1",
		baseURL + "/catalog/bumaga/?PAGEN_1=2",
		baseURL + "/catalog/bumaga/?PAGEN_1=3",
	}
	if len(pages) != len(want) {
		t.Fatalf("got %d pages, expected %d", len(pages), len(want))
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("got %q, expected %q", pages[i], want[i])
		}
	}
}

// TestNavigatorProductLinks tests product link extraction and filtering.
func TestNavigatorProductLinks(t *testing.T) {
	t.Parallel()

	listing := `
		<div class="item_block">
			<a class="dark_link" href="/catalog/bumaga/tetrad-48l/">Тетрадь</a>
		</div>
		<div class="item_block">
			<a class="dark_link" href="/catalog/bumaga/bloknot-a5/">Блокнот</a>
			<a class="dark_link" href="/catalog/bumaga/tetrad-48l/">Тетрадь (повтор)</a>
		</div>
		<div class="item_block">
			<!-- too shallow: catalog root, not a product -->
			<a class="dark_link" href="/catalog/">Каталог</a>
			<!-- outside the catalog root -->
			<a class="dark_link" href="/news/sale/2025/">Акция</a>
		</div>
		<a class="dark_link" href="/catalog/bumaga/vne-bloka/">вне item_block</a>`

	pageURL := baseURL + "/catalog/bumaga/?PAGEN_1=1"
	fetcher := &fakeFetcher{pages: map[string]string{pageURL: listing}}

	nav, _ := NewNavigator(fetcher, baseURL)
	links, err := nav.ProductLinks(context.Background(), pageURL)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := []string{
		baseURL + "/catalog/bumaga/bloknot-a5/",
		baseURL + "/catalog/bumaga/tetrad-48l/",
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links, expected %d: %v", len(links), len(want), links)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("got %q, expected %q", links[i], want[i])
		}
	}

	if !sort.StringsAreSorted(links) {
		t.Errorf("expected sorted links, got %v", links)
	}
}

// TestQualifiesAsProduct tests the href qualification rules.
func TestQualifiesAsProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want bool
	}{
		{"/catalog/bumaga/tetrad-48l/", true},
		{"/catalog/bumaga/sub/item", true},
		{"/catalog/bumaga/", true},
		{"/catalog/", false},
		{"/news/catalog/item/", false},
		{"https://other.site/catalog/x/y/", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := qualifiesAsProduct(tt.href); got != tt.want {
			t.Errorf("qualifiesAsProduct(%q) = %v, expected %v", tt.href, got, tt.want)
		}
	}
}
