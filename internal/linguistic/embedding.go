package linguistic

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/assessment-engine/internal/logging"
	"go.uber.org/zap"
)

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbeddingModel() string
}

// EntityExtractor finds named entities with a remote model.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) (map[string][]string, error)
}

// EmbeddingError reports a failure to obtain a vector for a text.
type EmbeddingError struct {
	Model string
	Cause error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding with %s failed: %v", e.Model, e.Cause)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}

// Embedding is a Service whose similarity is the cosine of dense embeddings.
// Token-level operations and entities are delegated to a base Service.
type Embedding struct {
	Service
	embedder Embedder
	entities EntityExtractor
	cache    VectorCache
	logger   *zap.Logger
}

// EmbeddingOption configures an Embedding service.
type EmbeddingOption func(*Embedding)

// WithVectorCache sets the cache used for embedding vectors.
func WithVectorCache(cache VectorCache) EmbeddingOption {
	return func(e *Embedding) { e.cache = cache }
}

// WithEntityExtractor sets a remote extractor used before the base service's entities.
func WithEntityExtractor(extractor EntityExtractor) EmbeddingOption {
	return func(e *Embedding) { e.entities = extractor }
}

// WithEmbeddingLogger sets the logger.
func WithEmbeddingLogger(logger *zap.Logger) EmbeddingOption {
	return func(e *Embedding) { e.logger = logging.Component(logger, "linguistic.embedding") }
}

// NewEmbedding wraps base with embedding-backed similarity.
func NewEmbedding(base Service, embedder Embedder, opts ...EmbeddingOption) *Embedding {
	if base == nil {
		base = Unavailable{}
	}
	e := &Embedding{
		Service:  base,
		embedder: embedder,
		cache:    NewMemoryCache(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available reports whether an embedder is configured.
func (e *Embedding) Available() bool {
	return e.embedder != nil
}

// NamedEntities asks the remote extractor when one is configured and falls back to
// the base service on failure. Values are deduplicated within each label.
func (e *Embedding) NamedEntities(ctx context.Context, text string) Entities {
	if e.entities == nil || strings.TrimSpace(text) == "" {
		return e.Service.NamedEntities(ctx, text)
	}

	found, err := e.entities.ExtractEntities(ctx, text)
	if err != nil {
		e.logger.Warn("remote entity extraction failed, using base service", zap.Error(err))
		return e.Service.NamedEntities(ctx, text)
	}

	entities := Entities{}
	for label, values := range found {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				entities[label] = appendUnique(entities[label], v)
			}
		}
	}
	return entities
}

// Similarity returns the clamped cosine similarity of the embeddings of a and b.
// Any embedding failure is logged and yields 0.
func (e *Embedding) Similarity(ctx context.Context, a, b string) float64 {
	if !e.Available() || strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}

	va, err := e.vector(ctx, a)
	if err != nil {
		e.logger.Warn("similarity degraded to zero", zap.Error(err))
		return 0
	}
	vb, err := e.vector(ctx, b)
	if err != nil {
		e.logger.Warn("similarity degraded to zero", zap.Error(err))
		return 0
	}

	return Clamp01(Cosine(va, vb))
}

func (e *Embedding) vector(ctx context.Context, text string) ([]float32, error) {
	model := e.embedder.EmbeddingModel()
	key := CacheKey(model, text)

	if e.cache != nil {
		cached, ok, err := e.cache.Get(ctx, key)
		if err != nil {
			e.logger.Debug("embedding cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	vector, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, &EmbeddingError{Model: model, Cause: err}
	}
	if len(vector) == 0 {
		return nil, &EmbeddingError{Model: model, Cause: fmt.Errorf("empty vector")}
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, vector); err != nil {
			e.logger.Debug("embedding cache write failed", zap.Error(err))
		}
	}
	return vector, nil
}
