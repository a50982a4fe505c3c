// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the video collection:
//  1. [LoadingView] : Aggregation progress while task lists are walked
//  2. [TaskListView] : Browse tasks with their resolved videos, cycling sort criteria
//  3. [VideoListView] : Inspect the videos referenced by one task
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the VideoEngine, providing non-blocking status reporting during aggregation.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, s, r, o, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
