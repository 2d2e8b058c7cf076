package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := Config{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Model:       "gpt-4",
		Temperature: 0.3,
	}
	opts = append([]Option{WithSleeper(func(time.Duration) {})}, opts...)
	return NewClient(cfg, opts...), server
}

func TestCompleteReturnsReplyContent(t *testing.T) {
	var captured chatCompletionRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"a concise summary"}}]}`))
	})

	messages := []Message{
		{Role: "system", Content: "You are a summarization assistant."},
		{Role: "user", Content: "Summarize the following text:\n\nhello"},
	}
	content, err := client.Complete(context.Background(), messages)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "a concise summary" {
		t.Fatalf("content = %q", content)
	}
	if captured.Model != "gpt-4" {
		t.Errorf("model = %q", captured.Model)
	}
	if captured.Temperature != 0.3 {
		t.Errorf("temperature = %v", captured.Temperature)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", captured.Messages)
	}
}

func TestCompleteEmptyReplyIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	})

	content, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "" {
		t.Fatalf("content = %q, want empty", content)
	}
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"recovered"}}]}`))
	})

	content, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "recovered" {
		t.Fatalf("content = %q", content)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestCompleteHonorsRetryAfter(t *testing.T) {
	attempts := 0
	var slept []time.Duration
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}, WithSleeper(func(d time.Duration) { slept = append(slept, d) }))

	if _, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Fatalf("slept = %v, want [2s]", slept)
	}
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad request"}}`))
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
	if !strings.Contains(err.Error(), "http 400") {
		t.Fatalf("err = %v", err)
	}
}

func TestCompleteSurfacesAPIErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("err = %v", err)
	}
}

func TestCompleteAbortsWhenContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Complete(ctx, []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("expected error after cancellation")
	}
}

func TestCompleteRequiresMessages(t *testing.T) {
	client := NewClient(Config{APIKey: "k", Model: "m"})
	if _, err := client.Complete(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty message list")
	}
}

func TestHealthCheck(t *testing.T) {
	var captured chatCompletionRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"OK"}}]}`))
	})
	if err := client.HealthCheck(context.Background(), "You review legal briefs."); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if len(captured.Messages) == 0 || captured.Messages[0].Content != "You review legal briefs." {
		t.Fatalf("system turn = %+v, want the configured prompt", captured.Messages)
	}

	failing, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if err := failing.HealthCheck(context.Background(), ""); err == nil {
		t.Fatal("expected error for unauthorized endpoint")
	}
}

func TestCompleteToleratesAlternateSchemas(t *testing.T) {
	cases := map[string]string{
		"delta": `{"choices":[{"delta":{"content":"from delta"}}]}`,
		"text":  `{"choices":[{"text":"from delta"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			content, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
			if err != nil {
				t.Fatalf("Complete: %v", err)
			}
			if content != "from delta" {
				t.Fatalf("content = %q", content)
			}
		})
	}
}
