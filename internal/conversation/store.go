package conversation

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Store owns the in-memory conversation contexts, keyed by document id.
// Mutating operations on one document are expected to be serialized by the
// workflow layer; the store's own lock only protects map integrity so
// unrelated documents never contend on conversation state.
type Store struct {
	mu            sync.Mutex
	contexts      map[int64]*Context
	defaultPrompt string
	maxRetained   int
}

// NewStore builds a store that seeds new contexts with the given system
// prompt and applies the retention bound on every append.
func NewStore(defaultPrompt string, maxRetained int) *Store {
	return &Store{
		contexts:      make(map[int64]*Context),
		defaultPrompt: defaultPrompt,
		maxRetained:   maxRetained,
	}
}

// GetOrInit returns the context for a document, creating it from the system
// prompt when absent. An empty prompt falls back to the store default.
func (s *Store) GetOrInit(docID int64, systemPrompt string) *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrInitLocked(docID, systemPrompt)
}

func (s *Store) getOrInitLocked(docID int64, systemPrompt string) *Context {
	if ctx, ok := s.contexts[docID]; ok {
		return ctx
	}
	if systemPrompt == "" {
		systemPrompt = s.defaultPrompt
	}
	ctx := newContext(systemPrompt, s.maxRetained)
	s.contexts[docID] = ctx
	return ctx
}

// Exists reports whether a context is currently held for the document.
func (s *Store) Exists(docID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.contexts[docID]
	return ok
}

// AppendUser appends a user turn and applies the truncation policy.
func (s *Store) AppendUser(docID int64, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrInitLocked(docID, "").append(RoleUser, content)
}

// AppendAssistant appends an assistant turn and applies the truncation policy.
func (s *Store) AppendAssistant(docID int64, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrInitLocked(docID, "").append(RoleAssistant, content)
}

// Messages returns a copy of the document's current log, or nil when no
// context exists.
func (s *Store) Messages(docID int64) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.contexts[docID]
	if !ok {
		return nil
	}
	return ctx.Messages()
}

// LastRole returns the role of the most recent turn, or "" without a context.
func (s *Store) LastRole(docID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.contexts[docID]
	if !ok {
		return ""
	}
	return ctx.LastRole()
}

// Reset deletes the document's context. Resetting an absent context is a no-op
// so callers can reset unconditionally.
func (s *Store) Reset(docID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, docID)
}

// Serialize renders the document's log as an opaque text blob for the
// persistence collaborator. The second return is false when no context exists.
func (s *Store) Serialize(docID int64) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.contexts[docID]
	if !ok {
		return "", false, nil
	}
	data, err := json.Marshal(ctx.messages)
	if err != nil {
		return "", false, fmt.Errorf("serialize conversation %d: %w", docID, err)
	}
	return string(data), true, nil
}

// Deserialize rebuilds a context from its serialized form, replacing any
// in-memory state for the document. The retention bound is re-applied so a
// log persisted under a larger bound converges to the current policy.
func (s *Store) Deserialize(docID int64, serialized string) error {
	var messages []Message
	if err := json.Unmarshal([]byte(serialized), &messages); err != nil {
		return fmt.Errorf("deserialize conversation %d: %w", docID, err)
	}
	if len(messages) == 0 || messages[0].Role != RoleSystem {
		return fmt.Errorf("deserialize conversation %d: log must begin with a system turn", docID)
	}
	ctx := &Context{messages: messages, maxRetained: s.maxRetained}
	ctx.truncate()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[docID] = ctx
	return nil
}
