// Package store provides snapshot storage backends.
//
// Every backend maps a slash-separated key (for example "api/file.json")
// to the exact bytes last written for it:
//
//   - File:   one file per key below a root directory
//   - Memory: a mutex-guarded map, for tests and dry runs
//   - SQLite: a single table in a SQLite database (WAL mode)
//   - Badger: a BadgerDB key space, persistent or in-memory
//
// Read returns *NotFoundError for missing keys. Write creates or replaces
// the content for a key; File creates parent directories as needed.
//
// All backends are safe for concurrent use across distinct keys. Two
// writers racing on the same key leave whichever write landed last.
package store
