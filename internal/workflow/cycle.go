package workflow

import (
	"context"
	"fmt"
	"strings"

	"summarizer/internal/conversation"
	"summarizer/internal/documents"
	"summarizer/internal/extraction"
	"summarizer/internal/logging"
	"summarizer/internal/services"
	"summarizer/internal/stagegate"
)

const summarizePromptPrefix = "Summarize the following text:\n\n"

// Generate runs a summarization cycle for the stage using the document's
// source text as the request. The produced summary replaces the stage's
// draft. Returns the new summary text.
func (m *Manager) Generate(ctx context.Context, id int64, stage int) (string, error) {
	var summary string
	err := m.withLock(id, func() error {
		doc, err := m.loadForCycle(ctx, id, stage, "generate")
		if err != nil {
			return err
		}
		prompt, err := m.buildSourcePrompt(doc)
		if err != nil {
			return err
		}
		summary, err = m.runCycle(ctx, doc, stage, prompt)
		return err
	})
	return summary, err
}

// Correct runs a summarization cycle for the stage using a reviewer
// instruction as the request. The model sees the full retained conversation,
// so the instruction applies to the previous summary. An empty instruction is
// only legal when a prior cycle left an unanswered request to retry.
func (m *Manager) Correct(ctx context.Context, id int64, stage int, instruction string) (string, error) {
	var summary string
	err := m.withLock(id, func() error {
		doc, err := m.loadForCycle(ctx, id, stage, "correct")
		if err != nil {
			return err
		}
		summary, err = m.runCycle(ctx, doc, stage, strings.TrimSpace(instruction))
		return err
	})
	return summary, err
}

func (m *Manager) loadForCycle(ctx context.Context, id int64, stage int, op string) (*documents.Document, error) {
	if !documents.ValidStage(stage) {
		return nil, services.Wrap(services.ErrInvalidTransition, "workflow", op,
			fmt.Sprintf("stage %d does not exist", stage), nil)
	}
	doc, err := m.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stagegate.CanGenerate(doc, stage) {
		return nil, services.Wrap(services.ErrInvalidTransition, "workflow", op,
			fmt.Sprintf("stage %d is not open for generation", stage), nil)
	}
	return doc, nil
}

func (m *Manager) buildSourcePrompt(doc *documents.Document) (string, error) {
	raw, err := m.extractor.ExtractText(doc.SourcePath)
	if err != nil {
		return "", err
	}
	text := extraction.Truncate(extraction.Clean(raw), m.cfg.Summarization.MaxSourceChars)
	if text == "" {
		return "", services.Wrap(services.ErrNoTextFound, "workflow", "generate",
			fmt.Sprintf("%s contains no usable text", doc.Filename), nil)
	}
	return summarizePromptPrefix + text, nil
}

// runCycle is the single request/completion primitive behind Generate and
// Correct. The caller holds the document lock.
//
// The request turn is appended and persisted before the completion call, so a
// failed call leaves it pending; retrying with the same (or an empty) request
// reuses the pending turn instead of appending a duplicate. The reply turn and
// the stage summary are only written when the model returns non-empty content.
func (m *Manager) runCycle(ctx context.Context, doc *documents.Document, stage int, request string) (string, error) {
	logger := m.logger.With(logging.DocumentID(doc.ID), logging.Stage(stage))

	if err := m.ensureConversation(ctx, doc.ID); err != nil {
		return "", err
	}

	pending := m.pendingRequest(doc.ID)
	switch {
	case request == "" && pending == "":
		return "", services.Wrap(services.ErrEmptyRequest, "workflow", "cycle",
			"no source text or correction to send", nil)
	case request == "" || request == pending:
		// Retry of an unanswered request; the turn is already in the log.
	default:
		m.conversations.AppendUser(doc.ID, request)
		if err := m.persistConversation(ctx, doc.ID); err != nil {
			return "", err
		}
	}

	reply, err := m.completer.Complete(ctx, m.conversations.Messages(doc.ID))
	if err != nil {
		logger.WarnContext(ctx, "completion call failed", logging.Error(err))
		return "", services.Wrap(services.ErrCompletionFailed, "workflow", "cycle",
			"completion service call", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", services.Wrap(services.ErrEmptyCompletion, "workflow", "cycle",
			"completion service returned no content", nil)
	}

	m.conversations.AppendAssistant(doc.ID, reply)
	if err := m.persistConversation(ctx, doc.ID); err != nil {
		return "", err
	}

	doc.SetStageSummary(stage, reply)
	if err := m.store.Update(ctx, doc); err != nil {
		return "", err
	}
	logger.InfoContext(ctx, "summary updated")
	return reply, nil
}

// ensureConversation makes the in-memory context exist, restoring the
// persisted log first so pending request turns survive restarts.
func (m *Manager) ensureConversation(ctx context.Context, id int64) error {
	if m.conversations.Exists(id) {
		return nil
	}
	serialized, err := m.store.LoadConversation(ctx, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(serialized) != "" {
		if err := m.conversations.Deserialize(id, serialized); err != nil {
			return err
		}
		return nil
	}
	m.conversations.GetOrInit(id, m.cfg.Summarization.SystemPrompt)
	return nil
}

// pendingRequest returns the content of an unanswered trailing user turn.
func (m *Manager) pendingRequest(id int64) string {
	if m.conversations.LastRole(id) != conversation.RoleUser {
		return ""
	}
	messages := m.conversations.Messages(id)
	return messages[len(messages)-1].Content
}

func (m *Manager) persistConversation(ctx context.Context, id int64) error {
	serialized, ok, err := m.conversations.Serialize(id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return m.store.SaveConversation(ctx, id, serialized)
}

// ResetConversation discards the document's conversation context in memory
// and in the database. The next cycle starts from a fresh system turn.
func (m *Manager) ResetConversation(ctx context.Context, id int64) error {
	return m.withLock(id, func() error {
		if _, err := m.GetDocument(ctx, id); err != nil {
			return err
		}
		m.conversations.Reset(id)
		if err := m.store.SaveConversation(ctx, id, ""); err != nil {
			return err
		}
		m.logger.InfoContext(ctx, "conversation reset", logging.DocumentID(id))
		return nil
	})
}

// Conversation returns the retained message log for inspection, restoring it
// from the database if needed.
func (m *Manager) Conversation(ctx context.Context, id int64) ([]conversation.Message, error) {
	var messages []conversation.Message
	err := m.withLock(id, func() error {
		if _, err := m.GetDocument(ctx, id); err != nil {
			return err
		}
		if err := m.ensureConversation(ctx, id); err != nil {
			return err
		}
		messages = m.conversations.Messages(id)
		return nil
	})
	return messages, err
}
