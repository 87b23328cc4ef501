// Package model defines the core data structures used throughout kancparser.
//
// This package contains the following main types:
//   - Product: One normalized catalog record, the unit of extraction output
//   - Supplier: The fixed selling entity with its offers
//   - SupplierOffer: Concrete sale terms (price tiers, stock, delivery)
//   - Attribute: A single specification-table characteristic
//
// Models live in their own package because the catalog, product, store, and
// crawler packages all need them; centralizing them prevents import cycles.
//
// The models carry both bson and json tags: bson for the Mongo store, json
// for report output.
package model
