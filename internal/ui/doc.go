// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI presents the signed-in listener's top artists and tracks as a
// single navigable list backed by the in-memory span caches:
//   - 1/2/3 switch the active time span (4 weeks, 6 months, 1 year)
//   - s cycles the sort order for the current item kind
//   - tab toggles between artists and tracks
//   - r refetches all spans from the API
//   - ? expands the contextual help
//
// Span switches and re-sorts never touch the network. The [Model] implements
// bubbletea/Elm's standard Init/Update/View pattern, and all three spans are
// fetched up front in a single command so the cache is either fully
// populated or empty.
//
// Keyboard navigation uses vim-style bindings (j/k, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
