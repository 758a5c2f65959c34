package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

type stubEmbedding struct {
	name string
	fail bool
	vec  []float32
}

func (s *stubEmbedding) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.fail {
		return nil, errors.New(s.name + " down")
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = s.vec
	}
	return out, nil
}

func (s *stubEmbedding) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	if s.fail {
		return nil, errors.New(s.name + " down")
	}
	return s.vec, nil
}

func (s *stubEmbedding) Dimensions() int { return len(s.vec) }
func (s *stubEmbedding) Model() string   { return s.name }
func (s *stubEmbedding) Close() error    { return nil }

type stubLLM struct {
	name string
	fail bool
	resp string
}

func (s *stubLLM) Complete(_ context.Context, _ string) (string, error) {
	if s.fail {
		return "", errors.New(s.name + " down")
	}
	return s.resp, nil
}

func (s *stubLLM) Model() string { return s.name }
func (s *stubLLM) Close() error  { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChainEmbedding_FirstSuccessWins(t *testing.T) {
	primary := &stubEmbedding{name: "primary", vec: []float32{1, 0}}
	fallback := &stubEmbedding{name: "fallback", vec: []float32{0, 1}}

	chain, err := NewChainEmbedding(quietLogger(), primary, fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vec, err := chain.EmbedQuery(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vec[0] != 1 {
		t.Errorf("expected primary's vector, got %v", vec)
	}
	if chain.Model() != "primary" {
		t.Errorf("expected primary model reported, got %s", chain.Model())
	}
}

func TestChainEmbedding_FallsBack(t *testing.T) {
	primary := &stubEmbedding{name: "primary", fail: true, vec: []float32{1, 0}}
	fallback := &stubEmbedding{name: "fallback", vec: []float32{0, 1}}

	chain, err := NewChainEmbedding(quietLogger(), primary, fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vec, err := chain.EmbedQuery(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vec[1] != 1 {
		t.Errorf("expected fallback's vector, got %v", vec)
	}
}

func TestChainEmbedding_AllFail(t *testing.T) {
	chain, err := NewChainEmbedding(quietLogger(),
		&stubEmbedding{name: "a", fail: true},
		&stubEmbedding{name: "b", fail: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := chain.Embed(context.Background(), []string{"text"}); !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestChainEmbedding_Empty(t *testing.T) {
	if _, err := NewChainEmbedding(quietLogger()); !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable for empty chain, got %v", err)
	}
}

func TestChainLLM_FallsBack(t *testing.T) {
	chain, err := NewChainLLM(quietLogger(),
		&stubLLM{name: "primary", fail: true},
		&stubLLM{name: "fallback", resp: "from fallback"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := chain.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from fallback" {
		t.Errorf("expected fallback response, got %q", got)
	}
}

func TestChainLLM_AllFail(t *testing.T) {
	chain, err := NewChainLLM(quietLogger(), &stubLLM{name: "only", fail: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := chain.Complete(context.Background(), "prompt"); !errors.Is(err, domain.ErrGenerationUnavailable) {
		t.Errorf("expected ErrGenerationUnavailable, got %v", err)
	}
}

var _ driven.EmbeddingService = (*stubEmbedding)(nil)
var _ driven.LLMService = (*stubLLM)(nil)
