package openai

import (
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/arama-cloud/arama/internal/domain"
)

func TestParseAPIError_RequestError(t *testing.T) {
	err := &openai.RequestError{
		HTTPStatusCode: 429,
		Body:           []byte(`{"detail":"rate limited"}`),
	}
	wrapped := parseAPIError(err)
	if !errors.Is(wrapped, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", wrapped)
	}
	if got := wrapped.Error(); got != "embedding API error 429: rate limited: embedding provider error" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestParseAPIError_APIError(t *testing.T) {
	err := &openai.APIError{
		HTTPStatusCode: 500,
		Message:        "internal",
	}
	wrapped := parseAPIError(err)
	if !errors.Is(wrapped, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", wrapped)
	}
}

func TestParseAPIError_Unknown(t *testing.T) {
	wrapped := parseAPIError(errors.New("dial tcp: timeout"))
	if !errors.Is(wrapped, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", wrapped)
	}
}

func TestExtractDetail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail":"quota exceeded"}`)); got != "quota exceeded" {
		t.Errorf("unexpected detail: %q", got)
	}
	if got := extractDetail([]byte(`not json`)); got != "" {
		t.Errorf("expected empty detail, got %q", got)
	}
}

func TestDimensions(t *testing.T) {
	e := NewEmbedder(&Config{Model: "text-embedding-3-small", Dimensions: 1024})
	if e.Dimensions() != 1024 {
		t.Errorf("expected 1024, got %d", e.Dimensions())
	}
}
