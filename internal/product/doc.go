// Package product extracts normalized Product records from detail-page
// markup.
//
// Every field is resolved through a layered fallback chain: candidate
// sources are tried in priority order and the first structurally valid
// match wins. Missing markup is never an error; each field quietly
// degrades to its sentinel. The only hard failure in the product path is
// a page that cannot be fetched at all, and that is the orchestrator's
// concern, not this package's.
//
// The chains encode one site's markup contract (a Bitrix storefront
// theme): structured itemprop metadata, the characteristics tables, and a
// handful of fixed containers for price, stock, and delivery.
package product
