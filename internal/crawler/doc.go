// Package crawler orchestrates the full catalog traversal. It walks the
// category, page and product levels sequentially, paces requests at a
// fixed rate, isolates per-unit failures, and persists each extracted
// record through the Store interface.
package crawler
