// Package browse holds the view state behind the listing, gallery and detail screens,
// independent of how they are rendered.
//
// A [Source] adapts one catalog (movies or music) to the operations the views need:
// search with an empty-query default, the gallery collections, and the detail fallback.
// [ListState] and [GalleryState] keep results in memory and derive the visible slice
// by sorting or filtering; neither mutates what was fetched.
//
// Moving from a listing to a detail screen hands over a [Handoff]: the selected item,
// the ordered siblings it was picked from, and its index. A [Navigator] walks that slice.
// Without a hand-off the detail screen asks its Source for a fallback and, when none
// exists, reports [shared.ErrMissingContext] so the caller can return to the listing.
package browse
