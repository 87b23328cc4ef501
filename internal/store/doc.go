// Package store persists extracted Product records.
//
// Mongo is the production implementation: one collection, upsert keyed by
// article. The crawler consumes it through its own Store interface, so
// tests run against in-memory fakes and this package stays a thin driver
// wrapper.
package store
