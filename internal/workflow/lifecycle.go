package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"summarizer/internal/documents"
	"summarizer/internal/logging"
	"summarizer/internal/services"
)

var titleCaser = cases.Title(language.English)

// CreateDocument registers a source file for review. Title and authors are
// optional; missing values fall back to a title derived from the filename and
// "Unknown". Sidecar images next to the source file are snapshotted at
// creation and never refreshed.
func (m *Manager) CreateDocument(ctx context.Context, sourcePath, title, authors string) (*documents.Document, error) {
	resolved, err := filepath.Abs(strings.TrimSpace(sourcePath))
	if err != nil {
		return nil, fmt.Errorf("create: resolve source path: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "workflow", "create",
			fmt.Sprintf("source file %s", resolved), err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrInvalidTransition, "workflow", "create",
			fmt.Sprintf("%s is a directory, not a document", resolved), nil)
	}

	filename := filepath.Base(resolved)
	title = strings.TrimSpace(title)
	if title == "" {
		title = titleFromFilename(filename)
	}
	authors = strings.TrimSpace(authors)
	if authors == "" {
		authors = "Unknown"
	}

	doc, err := m.store.Create(ctx, documents.NewDocument{
		SourcePath: resolved,
		Filename:   filename,
		Title:      title,
		Authors:    authors,
		ImageLinks: discoverSidecarImages(filepath.Dir(resolved)),
	})
	if err != nil {
		return nil, err
	}
	m.logger.InfoContext(ctx, "document created",
		logging.DocumentID(doc.ID),
		slog.String("filename", doc.Filename),
	)
	return doc, nil
}

// DeleteDocument removes the document row, its persisted conversation, and
// any in-memory context. Deleting an unknown document is an error.
func (m *Manager) DeleteDocument(ctx context.Context, id int64) error {
	return m.withLock(id, func() error {
		if _, err := m.GetDocument(ctx, id); err != nil {
			return err
		}
		if err := m.store.Delete(ctx, id); err != nil {
			return err
		}
		m.conversations.Reset(id)
		m.logger.InfoContext(ctx, "document deleted", logging.DocumentID(id))
		return nil
	})
}

// titleFromFilename turns "deep-learning_review.pdf" into "Deep Learning Review".
func titleFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return filename
	}
	return titleCaser.String(name)
}

// discoverSidecarImages lists image files living beside the source document,
// sorted for deterministic snapshots.
func discoverSidecarImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var links []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			links = append(links, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(links)
	return links
}
