// Package reenrich re-runs AI annotation over notes whose enrichment
// degraded to empty defaults at ingest time.
//
// It supports batch processing with a bounded worker pool, progress
// tracking, and retry with exponential backoff.
package reenrich
