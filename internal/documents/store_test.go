package documents_test

import (
	"context"
	"testing"

	"summarizer/internal/documents"
	"summarizer/internal/testsupport"
)

func TestCreateAndFetch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	doc, err := store.Create(ctx, documents.NewDocument{
		SourcePath: "/papers/attention.pdf",
		Filename:   "attention.pdf",
		Title:      "Attention Is All You Need",
		Authors:    "Vaswani et al.",
		ImageLinks: []string{"/papers/fig1.png", "/papers/fig2.jpg"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if doc.ID == 0 {
		t.Fatal("expected document ID to be assigned")
	}
	if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	fetched, err := store.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.Title != "Attention Is All You Need" {
		t.Fatalf("unexpected fetched document: %#v", fetched)
	}
	if len(fetched.ImageLinks) != 2 || fetched.ImageLinks[1] != "/papers/fig2.jpg" {
		t.Fatalf("image links not round-tripped: %v", fetched.ImageLinks)
	}
}

func TestCreateRequiresSourcePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.Create(context.Background(), documents.NewDocument{Filename: "x.pdf"}); err == nil {
		t.Fatal("expected error when source path missing")
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	doc, err := store.GetByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if doc != nil {
		t.Fatalf("expected nil for missing document, got %#v", doc)
	}
}

func TestUpdatePersistsStageState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	doc := testsupport.NewDocument(t, store, documents.NewDocument{Filename: "paper.pdf"})
	before := doc.UpdatedAt

	doc.Stage1Summary = "draft summary"
	doc.Stage1Approved = true
	doc.Stage2Summary = "draft summary"
	doc.ExportNotes = "ready for review"
	if err := store.Update(ctx, doc); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !doc.UpdatedAt.After(before) {
		t.Fatal("expected UpdatedAt to advance on mutation")
	}

	fetched, err := store.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !fetched.Stage1Approved || fetched.Stage1Summary != "draft summary" {
		t.Fatalf("stage 1 state not persisted: %#v", fetched)
	}
	if fetched.Stage2Summary != "draft summary" || fetched.Stage2Approved {
		t.Fatalf("stage 2 state not persisted: %#v", fetched)
	}
	if fetched.ExportNotes != "ready for review" {
		t.Fatalf("export notes not persisted: %q", fetched.ExportNotes)
	}
}

func TestListOrdersByCreation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	first := testsupport.NewDocument(t, store, documents.NewDocument{SourcePath: "/a.pdf", Filename: "a.pdf"})
	second := testsupport.NewDocument(t, store, documents.NewDocument{SourcePath: "/b.pdf", Filename: "b.pdf"})

	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != first.ID || docs[1].ID != second.ID {
		t.Fatalf("unexpected list order: %#v", docs)
	}
}

func TestConversationColumnRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	doc := testsupport.NewDocument(t, store, documents.NewDocument{Filename: "paper.pdf"})

	blob := `[{"role":"system","content":"You are a summarization assistant."}]`
	if err := store.SaveConversation(ctx, doc.ID, blob); err != nil {
		t.Fatalf("SaveConversation failed: %v", err)
	}
	loaded, err := store.LoadConversation(ctx, doc.ID)
	if err != nil {
		t.Fatalf("LoadConversation failed: %v", err)
	}
	if loaded != blob {
		t.Fatalf("conversation blob mismatch: %q", loaded)
	}

	if err := store.SaveConversation(ctx, doc.ID, ""); err != nil {
		t.Fatalf("clear conversation failed: %v", err)
	}
	loaded, err = store.LoadConversation(ctx, doc.ID)
	if err != nil {
		t.Fatalf("LoadConversation after clear failed: %v", err)
	}
	if loaded != "" {
		t.Fatalf("expected cleared conversation, got %q", loaded)
	}
}

func TestDeleteRemovesRowAndConversation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	doc := testsupport.NewDocument(t, store, documents.NewDocument{Filename: "paper.pdf"})
	if err := store.SaveConversation(ctx, doc.ID, `[{"role":"system","content":"x"}]`); err != nil {
		t.Fatalf("SaveConversation failed: %v", err)
	}

	if err := store.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	fetched, err := store.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched != nil {
		t.Fatal("expected document to be gone")
	}
	blob, err := store.LoadConversation(ctx, doc.ID)
	if err != nil {
		t.Fatalf("LoadConversation failed: %v", err)
	}
	if blob != "" {
		t.Fatalf("expected conversation to die with the row, got %q", blob)
	}
}

func TestStageAccessors(t *testing.T) {
	doc := &documents.Document{}
	for stage := 1; stage <= documents.StageCount; stage++ {
		doc.SetStageSummary(stage, "text")
		doc.SetStageApproved(stage, true)
		if doc.StageSummary(stage) != "text" || !doc.StageApproved(stage) {
			t.Fatalf("stage %d accessors broken", stage)
		}
	}
	if documents.ValidStage(0) || documents.ValidStage(4) {
		t.Fatal("ValidStage accepted out-of-range stage")
	}
}
