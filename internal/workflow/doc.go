// Package workflow drives documents through the staged review pipeline.
//
// The Manager owns every state transition: it extracts and cleans source
// text, runs request/completion cycles against the configured language
// model, enforces the stage approval ordering, promotes approved summaries
// into the next stage's draft, and exports the final summary back next to
// the source file. All mutations for a document run under a per-document
// lock, so concurrent commands against the same document serialize while
// different documents proceed in parallel.
package workflow
