package model

import "time"

// Sentinel values stored when a page does not expose a field.
// Downstream consumers of the store rely on these exact strings, so they
// must match what the site's catalog has always emitted.
const (
	// NoData marks any optional field whose markup was absent.
	NoData = "Нет данных"

	// NoTitle marks a product whose name could not be located.
	NoTitle = "Название не найдено"

	// NoDescription marks a product without a description block.
	NoDescription = "Описание отсутствует"

	// NoArticle marks a product without an article or barcode.
	NoArticle = "Артикул не найден"

	// NoBrand marks a product without a brand row.
	NoBrand = "Бренд не указан"
)

// Fixed identity of the single seller behind the catalog.
// The site sells on its own behalf, so every product carries exactly
// one supplier with these values.
const (
	SupplierName        = "КанцМир"
	SupplierTel         = "+7 (499) 199-59-60"
	SupplierAddress     = "123154, г. Москва, ул. Генерала Глаголева, 6 корпус 1"
	SupplierDescription = "Интернет-магазин канцелярских товаров"
)

// CreatedAtLayout is the timestamp format written into Product.CreatedAt.
const CreatedAtLayout = "02.01.2006 15:04"

// Product is the unit of extraction output: one normalized record per
// detail-page visit. A Product is fully populated before it is handed to
// the store and is never mutated afterwards.
//
// String fields are never empty. Absence of data is represented by the
// sentinel constants above so that consumers can rely on field presence.
type Product struct {
	Title           string      `bson:"title" json:"title"`
	Description     string      `bson:"description" json:"description"`
	Article         string      `bson:"article" json:"article"`
	Brand           string      `bson:"brand" json:"brand"`
	CountryOfOrigin string      `bson:"country_of_origin" json:"country_of_origin"`
	WarrantyMonths  string      `bson:"warranty_months" json:"warranty_months"`
	Category        string      `bson:"category" json:"category"`
	CreatedAt       string      `bson:"created_at" json:"created_at"`
	Attributes      []Attribute `bson:"attributes" json:"attributes"`
	Suppliers       []Supplier  `bson:"suppliers" json:"suppliers"`
}

// Attribute is a single name/value row from the characteristics table.
// Within one Product no two attributes share a case-insensitive name.
type Attribute struct {
	Name  string `bson:"attr_name" json:"attr_name"`
	Value string `bson:"attr_value" json:"attr_value"`
}

// Supplier is the static identity of the selling entity plus its offers.
type Supplier struct {
	DealerID    string          `bson:"dealer_id" json:"dealer_id"`
	Name        string          `bson:"supplier_name" json:"supplier_name"`
	Tel         string          `bson:"supplier_tel" json:"supplier_tel"`
	Address     string          `bson:"supplier_address" json:"supplier_address"`
	Description string          `bson:"supplier_description" json:"supplier_description"`
	Offers      []SupplierOffer `bson:"supplier_offers" json:"supplier_offers"`
}

// SupplierOffer holds the concrete sale terms for one product.
type SupplierOffer struct {
	Price        []PriceInfo `bson:"price" json:"price"`
	Stock        string      `bson:"stock" json:"stock"`
	DeliveryTime string      `bson:"delivery_time" json:"delivery_time"`
	PackageInfo  string      `bson:"package_info" json:"package_info"`
	PurchaseURL  string      `bson:"purchase_url" json:"purchase_url"`
}

// PriceInfo is one price tier. Qnt 1 and Discount 0 represent the base
// unit price.
type PriceInfo struct {
	Qnt      int     `bson:"qnt" json:"qnt"`
	Discount float64 `bson:"discount" json:"discount"`
	Price    float64 `bson:"price" json:"price"`
}

// NewProduct returns a Product with every field set to its sentinel and
// CreatedAt stamped from now. Extraction overwrites fields as markup is
// found, so a page with no recognizable markup still yields a complete
// record.
func NewProduct(now time.Time) *Product {
	return &Product{
		Title:           NoTitle,
		Description:     NoDescription,
		Article:         NoArticle,
		Brand:           NoBrand,
		CountryOfOrigin: NoData,
		WarrantyMonths:  NoData,
		Category:        NoData,
		CreatedAt:       now.Format(CreatedAtLayout),
		Attributes:      make([]Attribute, 0),
		Suppliers:       make([]Supplier, 0),
	}
}

// NewSupplier returns the fixed seller identity wrapping the given offer.
func NewSupplier(offer SupplierOffer) Supplier {
	return Supplier{
		DealerID:    NoData,
		Name:        SupplierName,
		Tel:         SupplierTel,
		Address:     SupplierAddress,
		Description: SupplierDescription,
		Offers:      []SupplierOffer{offer},
	}
}
