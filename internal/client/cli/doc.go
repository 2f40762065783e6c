// Package cli provides the interactive Evently command-line client.
//
// It wires configuration, the local store, the backend client and the
// application services into a REPL. Anyone can browse the catalog; logged-in
// users can bookmark services; administrators can create, edit and delete
// them.
//
// Key features:
//   - Register / Login (with remembered email) / Logout / WhoAmI
//   - List with search, category filter and sort; retry after a failure
//   - Show service details
//   - Create / Edit through a step-by-step form with live preview
//   - Delete with confirmation
//   - Local bookmarks
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
