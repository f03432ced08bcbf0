//go:build unit

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-sites-app/internal/config"
)

func TestTranslate_WithoutKeyFailsClosed(t *testing.T) {
	c := New(config.TranslatorConfig{BaseURL: "http://localhost:0", Model: "test"})

	_, err := c.Translate(context.Background(), "Olá", "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestTranslate_SendsChatRequest(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Hello"}},
			},
		})
	}))
	defer srv.Close()

	c := New(config.TranslatorConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
	got, err := c.Translate(context.Background(), "Olá", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("unexpected model %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "Olá" {
		t.Errorf("unexpected messages %+v", gotReq.Messages)
	}
}

func TestTranslate_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(config.TranslatorConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})
	if _, err := c.Translate(context.Background(), "Olá", "en"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
