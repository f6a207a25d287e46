package agent

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leasewell_backend/platform/apperr"
)

func TestTemplateGenerator_MentionsContractorAndProperty(t *testing.T) {
	gen := NewTemplateGenerator(rand.New(rand.NewSource(1)))
	unit := "4B"
	req := testRequest()
	req.PropertyUnit = &unit

	for i := 0; i < 10; i++ {
		msg, err := gen.GenerateOutreach(context.Background(), req, testContractor())
		if err != nil {
			t.Fatalf("GenerateOutreach: %v", err)
		}
		if !strings.Contains(msg, "ABC Plumbing") {
			t.Fatalf("message %q does not mention the contractor", msg)
		}
		if !strings.Contains(msg, "12 Oak St, Unit 4B, Springfield, IL") {
			t.Fatalf("message %q does not mention the property address", msg)
		}
		if !strings.Contains(msg, "Leaking kitchen sink") {
			t.Fatalf("message %q does not mention the issue", msg)
		}
	}
}

func TestTemplateGenerator_DeterministicWithSeed(t *testing.T) {
	first, err := NewTemplateGenerator(rand.New(rand.NewSource(7))).GenerateOutreach(context.Background(), testRequest(), testContractor())
	if err != nil {
		t.Fatalf("GenerateOutreach: %v", err)
	}
	second, err := NewTemplateGenerator(rand.New(rand.NewSource(7))).GenerateOutreach(context.Background(), testRequest(), testContractor())
	if err != nil {
		t.Fatalf("GenerateOutreach: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical messages for the same seed, got %q and %q", first, second)
	}
}

func TestOutreachPrompt_RatingFallback(t *testing.T) {
	contractor := testContractor()
	contractor.Rating = nil

	prompt := outreachPrompt(testRequest(), contractor)
	if !strings.Contains(prompt, "Rating: N/A") {
		t.Fatalf("expected N/A rating in prompt:\n%s", prompt)
	}

	rating := 4.6
	contractor.Rating = &rating
	prompt = outreachPrompt(testRequest(), contractor)
	if !strings.Contains(prompt, "Rating: 4.6") {
		t.Fatalf("expected formatted rating in prompt:\n%s", prompt)
	}
}

func TestOpenAIGenerator_TrimsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Hello there.  "}}]}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator("key-123")
	gen.url = srv.URL

	msg, err := gen.GenerateOutreach(context.Background(), testRequest(), testContractor())
	if err != nil {
		t.Fatalf("GenerateOutreach: %v", err)
	}
	if msg != "Hello there." {
		t.Fatalf("expected trimmed message, got %q", msg)
	}
}

func TestOpenAIGenerator_NoChoicesIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator("key-123")
	gen.url = srv.URL

	_, err := gen.GenerateOutreach(context.Background(), testRequest(), testContractor())
	if err == nil {
		t.Fatal("expected an error for empty choices")
	}
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream kind, got %v", apperr.GetKind(err))
	}
}

func TestAnthropicGenerator_SetsVersionHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "key-456" {
			t.Errorf("unexpected api key header %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("unexpected version header %q", got)
		}
		_, _ = w.Write([]byte(`{"content":[{"text":"A fine message."}]}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator("key-456")
	gen.url = srv.URL

	msg, err := gen.GenerateOutreach(context.Background(), testRequest(), testContractor())
	if err != nil {
		t.Fatalf("GenerateOutreach: %v", err)
	}
	if msg != "A fine message." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAnthropicGenerator_NonOKStatusIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator("key-456")
	gen.url = srv.URL

	_, err := gen.GenerateOutreach(context.Background(), testRequest(), testContractor())
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream kind, got %v", apperr.GetKind(err))
	}
}
