// Package stagegate holds the pure decision logic for stage transitions.
//
// Approval is monotonic along the pipeline: stage k+1 can only be approved
// while stage k is approved, and unapproving stage k force-clears every
// downstream approval. Approving stage 1 or 2 promotes its summary into the
// next stage's slot when that slot is empty (or on request). The functions
// here never perform I/O and never mutate the document; the workflow layer
// applies the returned effects so the same rules hold for every invocation
// surface.
package stagegate
