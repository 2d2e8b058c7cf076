// Package extraction reads plain text out of uploaded PDF sources and
// normalizes it for the completion service.
//
// Extraction is intentionally shallow: the workflow only needs a single text
// blob per document, cleaned of layout noise (page markers, inline reference
// tags, bibliography tails) and bounded to the configured character budget so
// the first generation prompt stays within the model's context.
package extraction
