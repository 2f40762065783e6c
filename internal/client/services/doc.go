// Package services contains the application services of the Evently client.
//
// AuthService logs users in and out and keeps the persisted token current.
// CatalogService fetches the catalog, runs the query pipeline over it and
// dispatches admin mutations behind the session's mutation gate.
// BookmarkService keeps a local list of bookmarked services.
package services
