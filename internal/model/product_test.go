package model

import (
	"testing"
	"time"
)

// TestNewProduct tests sentinel defaults and timestamp formatting.
func TestNewProduct(t *testing.T) {
	t.Parallel()

	t.Run("every field starts at its sentinel", func(t *testing.T) {
		t.Parallel()

		p := NewProduct(time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC))

		if p.Title != NoTitle {
			t.Errorf("got %q, expected %q", p.Title, NoTitle)
		}
		if p.Description != NoDescription {
			t.Errorf("got %q, expected %q", p.Description, NoDescription)
		}
		if p.Article != NoArticle {
			t.Errorf("got %q, expected %q", p.Article, NoArticle)
		}
		if p.Brand != NoBrand {
			t.Errorf("got %q, expected %q", p.Brand, NoBrand)
		}
		if p.CountryOfOrigin != NoData {
			t.Errorf("got %q, expected %q", p.CountryOfOrigin, NoData)
		}
		if p.WarrantyMonths != NoData {
			t.Errorf("got %q, expected %q", p.WarrantyMonths, NoData)
		}
		if p.Category != NoData {
			t.Errorf("got %q, expected %q", p.Category, NoData)
		}
	})

	t.Run("created_at uses the day-first layout", func(t *testing.T) {
		t.Parallel()

		p := NewProduct(time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC))
		if p.CreatedAt != "14.03.2025 09:26" {
			t.Errorf("got %q, expected %q", p.CreatedAt, "14.03.2025 09:26")
		}
	})

	t.Run("slices are non-nil", func(t *testing.T) {
		t.Parallel()

		p := NewProduct(time.Now())
		if p.Attributes == nil || p.Suppliers == nil {
			t.Error("expected non-nil attribute and supplier slices")
		}
	})
}

// TestNewSupplier tests the fixed seller identity.
func TestNewSupplier(t *testing.T) {
	t.Parallel()

	offer := SupplierOffer{
		Price:        []PriceInfo{{Qnt: 1, Discount: 0, Price: 129.5}},
		Stock:        "В наличии",
		DeliveryTime: NoData,
		PackageInfo:  NoData,
		PurchaseURL:  "https://kanc-mir.ru/catalog/bumaga/item/",
	}

	s := NewSupplier(offer)

	if s.Name != SupplierName {
		t.Errorf("got %q, expected %q", s.Name, SupplierName)
	}
	if s.DealerID != NoData {
		t.Errorf("got %q, expected %q", s.DealerID, NoData)
	}
	if len(s.Offers) != 1 {
		t.Fatalf("got %d offers, expected 1", len(s.Offers))
	}
	if s.Offers[0].PurchaseURL != offer.PurchaseURL {
		t.Errorf("got %q, expected %q", s.Offers[0].PurchaseURL, offer.PurchaseURL)
	}
}
