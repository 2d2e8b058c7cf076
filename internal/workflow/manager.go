package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"summarizer/internal/config"
	"summarizer/internal/conversation"
	"summarizer/internal/documents"
	"summarizer/internal/extraction"
	"summarizer/internal/logging"
	"summarizer/internal/services"
	"summarizer/internal/services/llm"
)

// Completer produces the reply turn for a conversation context.
type Completer interface {
	Complete(ctx context.Context, messages []conversation.Message) (string, error)
}

// TextExtractor pulls plain text out of a source file.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Manager coordinates document state transitions for the review pipeline.
type Manager struct {
	cfg           *config.Config
	store         *documents.Store
	conversations *conversation.Store
	completer     Completer
	extractor     TextExtractor
	logger        *slog.Logger
	sessionID     string

	locks *documentLocks
}

// NewManager constructs a manager wired to the real completion client and
// PDF extractor.
func NewManager(cfg *config.Config, store *documents.Store, logger *slog.Logger) *Manager {
	client := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		Temperature:    cfg.Summarization.Temperature,
	})
	return NewManagerWithCollaborators(cfg, store, logger, completerAdapter{client}, extraction.PDF{})
}

// NewManagerWithCollaborators constructs a manager with explicit collaborators
// (used in tests).
func NewManagerWithCollaborators(cfg *config.Config, store *documents.Store, logger *slog.Logger, completer Completer, extractor TextExtractor) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	sessionID := uuid.NewString()
	mgr := &Manager{
		cfg:           cfg,
		store:         store,
		conversations: conversation.NewStore(cfg.Summarization.SystemPrompt, cfg.Summarization.MaxRetainedMessages),
		completer:     completer,
		extractor:     extractor,
		logger:        logging.WithComponent(logger, "workflow").With(logging.FieldSession, sessionID),
		sessionID:     sessionID,
		locks:         newDocumentLocks(),
	}
	return mgr
}

// SessionID identifies this manager instance in log output.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// GetDocument loads a document, translating a missing row into a typed error.
func (m *Manager) GetDocument(ctx context.Context, id int64) (*documents.Document, error) {
	doc, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, services.Wrap(services.ErrNotFound, "workflow", "get",
			"document not found", nil)
	}
	return doc, nil
}

// ListDocuments returns every document in creation order.
func (m *Manager) ListDocuments(ctx context.Context) ([]*documents.Document, error) {
	return m.store.List(ctx)
}

// completerAdapter bridges the llm client to the conversation message type.
type completerAdapter struct {
	client *llm.Client
}

func (a completerAdapter) Complete(ctx context.Context, messages []conversation.Message) (string, error) {
	converted := make([]llm.Message, len(messages))
	for i, msg := range messages {
		converted[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}
	return a.client.Complete(ctx, converted)
}
