// Package conversation maintains the bounded per-document message logs that
// drive iterative summarization.
//
// Each document gets one Context: an ordered list of system/user/assistant
// turns whose first entry is the anchoring system instruction. Appends apply
// a deterministic truncation policy that keeps the system turn plus the most
// recent maxRetained-1 entries, so the log never grows past the configured
// bound and the system instruction is never evicted.
//
// Contexts live in memory; the Store exposes Serialize/Deserialize so the
// persistence layer can round-trip them through an opaque text column and
// they survive process restarts.
package conversation
