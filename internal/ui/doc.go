// Package ui implements the interactive explorer using bubbletea's Elm architecture.
//
// One [Model] serves both variants. It is routed by path (see [browse.ParseRoute]):
//  1. home : landing screen with sign-in notices
//  2. /search : debounced search with client-side sorting
//  3. /gallery : tabbed collections with genre and year filters
//  4. /detail/:type/:id : a single item with previous/next over its siblings
//
// Fetches run as commands and report back through typed messages. Search replies carry the
// sequence number of the edit that caused them, and replies for older edits are dropped.
//
// Music screens other than home require a signed-in session; a rejected token returns to home.
package ui
