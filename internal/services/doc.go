// Package services defines shared utilities consumed by the workflow manager
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp document IDs, stage numbers, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so every failure a caller
//     sees classifies to exactly one workflow error kind.
//
// Use these helpers when wiring new workflow operations so error handling and
// observability stay uniform across invocation surfaces.
package services
