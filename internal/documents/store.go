package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"summarizer/internal/config"
)

// Store manages document persistence backed by SQLite. A file lock next to
// the database enforces a single writer process; mutations on one document
// are additionally serialized by the workflow layer.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the document database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire database lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("database %s is in use by another summarizer process", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection and releases the file lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

// Create inserts a new document and returns the stored row.
func (s *Store) Create(ctx context.Context, doc NewDocument) (*Document, error) {
	if strings.TrimSpace(doc.SourcePath) == "" {
		return nil, errors.New("source path is required")
	}
	if strings.TrimSpace(doc.Filename) == "" {
		return nil, errors.New("filename is required")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	imageLinks, err := marshalImageLinks(doc.ImageLinks)
	if err != nil {
		return nil, err
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO documents (
            source_path, filename, title, authors, image_links_json,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.SourcePath,
		doc.Filename,
		nullableString(doc.Title),
		nullableString(doc.Authors),
		imageLinks,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a document by identifier. Missing documents return (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns all documents ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Update persists all mutable fields of a document and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, doc *Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	doc.UpdatedAt = time.Now().UTC()

	imageLinks, err := marshalImageLinks(doc.ImageLinks)
	if err != nil {
		return err
	}

	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE documents
         SET source_path = ?, filename = ?, title = ?, authors = ?, image_links_json = ?,
             stage1_summary = ?, stage1_approved = ?,
             stage2_summary = ?, stage2_approved = ?,
             stage3_summary = ?, stage3_approved = ?,
             published = ?, export_notes = ?, updated_at = ?
         WHERE id = ?`,
		doc.SourcePath,
		doc.Filename,
		nullableString(doc.Title),
		nullableString(doc.Authors),
		imageLinks,
		nullableString(doc.Stage1Summary),
		boolToInt(doc.Stage1Approved),
		nullableString(doc.Stage2Summary),
		boolToInt(doc.Stage2Approved),
		nullableString(doc.Stage3Summary),
		boolToInt(doc.Stage3Approved),
		boolToInt(doc.Published),
		nullableString(doc.ExportNotes),
		doc.UpdatedAt.Format(time.RFC3339Nano),
		doc.ID,
	); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete removes a document row. The conversation column dies with the row so
// no orphaned context survives.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.execWithoutResultRetry(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// SaveConversation stores the serialized conversation blob for a document.
// An empty blob clears the column.
func (s *Store) SaveConversation(ctx context.Context, id int64, serialized string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE documents SET conversation_json = ?, updated_at = ? WHERE id = ?`,
		nullableString(serialized),
		timestamp,
		id,
	); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

// LoadConversation returns the serialized conversation blob for a document,
// or "" when none has been stored.
func (s *Store) LoadConversation(ctx context.Context, id int64) (string, error) {
	var serialized sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT conversation_json FROM documents WHERE id = ?`, id).Scan(&serialized)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load conversation: %w", err)
	}
	return serialized.String, nil
}

func marshalImageLinks(links []string) (any, error) {
	if len(links) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshal image links: %w", err)
	}
	return string(data), nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) execWithoutResultRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}
