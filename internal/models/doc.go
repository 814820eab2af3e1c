// Package models defines the catalog entities fetched from the remote APIs.
//
// The package contains two families of plain records mirroring the remote JSON:
//
// 1. Movie catalog (TMDB)
//   - [Movie] : listing entry returned by search and collection endpoints
//   - [MovieDetails] : single-movie view with genres, runtime, budget
//   - [Genre] : genre vocabulary entry
//
// 2. Music catalog (Spotify)
//   - [Track], [Album], [Artist] : searchable item types
//   - [Image], [ExternalURLs] : shared sub-records
//   - [UserProfile] : the authenticated user
//
// Records are immutable snapshots; the only identity is the remote id.
// [Item] is the tagged variant used by list, gallery and detail state so that callers
// dispatch on [Kind] instead of probing fields.
package models
