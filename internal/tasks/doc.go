// Package tasks implements the sort/filter engine over cached top-items data.
//
// [CacheManager] owns the per-span cache: exactly one dataset per span, an
// active span pointer, and the active sort indicator. All cache mutation
// funnels through the manager, which serializes access with a mutex so the
// CLI, TUI goroutines, and server handlers can share one instance.
//
// Sorting and filtering are pure, idempotent, and never issue network calls:
// Sort-by reorders the active dataset's items in place and writes them back
// to the matching span slot; Filter-by only moves the active pointer, leaving
// every dataset's order as its last sort left it. MyRank values assigned at
// ingestion are never recomputed here. Both operations are no-ops on an empty
// cache or an absent span.
package tasks
