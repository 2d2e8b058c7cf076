package testsupport

import (
	"context"
	"testing"

	"summarizer/internal/config"
	"summarizer/internal/documents"
)

// MustOpenStore opens a documents.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *documents.Store {
	t.Helper()

	store, err := documents.Open(cfg)
	if err != nil {
		t.Fatalf("documents.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewDocument inserts a document for tests using the provided store.
func NewDocument(t testing.TB, store *documents.Store, doc documents.NewDocument) *documents.Document {
	t.Helper()

	if doc.Filename == "" {
		doc.Filename = "paper.pdf"
	}
	if doc.SourcePath == "" {
		doc.SourcePath = "/tmp/" + doc.Filename
	}
	created, err := store.Create(context.Background(), doc)
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return created
}
