// Package store persists classification run history in SQLite.
//
// Each saved run keeps the aggregate counts, the per-detection audit rows,
// and the sync report when one was produced, so earlier results can be
// listed and re-inspected without re-running classification. A file lock
// next to the database keeps concurrent subsight invocations from writing
// over each other.
package store
