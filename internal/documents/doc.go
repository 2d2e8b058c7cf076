// Package documents persists uploaded documents and their per-stage summary
// state in SQLite.
//
// The Store manages the database connection, schema initialization, and the
// conversation text column that round-trips serialized conversation contexts.
// Documents capture the source path, display metadata, the creation-time
// sidecar image snapshot, three summary/approval pairs, and export state.
//
// Approval gating and cascade rules live in the stagegate package; this
// package stores whatever state the workflow hands it. Schema changes bump
// schemaVersion in schema.go; databases with a stale version are refused.
package documents
