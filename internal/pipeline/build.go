package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/assessment-engine/internal/config"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/extraction"
	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/jonathan/assessment-engine/internal/linguistic"
	"github.com/jonathan/assessment-engine/internal/llm"
	"github.com/jonathan/assessment-engine/internal/logging"
	"go.uber.org/zap"
)

// Build creates an Engine from configuration. It connects the model client when an
// API key is configured, the Redis vector cache for the embedding backend when a
// Redis URL is set, and the database when a database URL is set. Extra options are
// applied after the configured ones.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, extra ...Option) (*Engine, error) {
	logger = logging.OrNop(logger)
	opts := []Option{
		WithLogger(logger),
		WithResumeWeights(cfg.Weights.Resume),
		WithInterviewWeights(cfg.Weights.Interview),
	}

	var closers []func() error
	fail := func(err error) (*Engine, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	if cfg.SkillsFile != "" {
		opts = append(opts, WithTaxonomy(extraction.LoadTaxonomyCSV(cfg.SkillsFile, logger)))
	}
	if cfg.QuestionBank != "" {
		bank, err := interview.LoadBank(cfg.QuestionBank)
		if err != nil {
			return fail(err)
		}
		opts = append(opts, WithBank(bank))
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		model := cfg.Linguistic.EmbeddingModel
		if model == "" {
			model = llm.DefaultEmbeddingModel
		}
		c, err := llm.NewClient(ctx, llm.DefaultConfig().WithEmbeddingModel(model), cfg.GeminiAPIKey)
		if err != nil {
			return fail(fmt.Errorf("failed to create model client: %w", err))
		}
		client = c
		closers = append(closers, c.Close)
		opts = append(opts, WithLLM(c))
	}

	svc, svcClosers, err := buildService(ctx, cfg, client, logger)
	closers = append(closers, svcClosers...)
	if err != nil {
		return fail(err)
	}
	opts = append(opts, WithService(svc))

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() error { store.Close(); return nil })
		if err := store.EnsureSchema(ctx); err != nil {
			return fail(err)
		}
		opts = append(opts, WithStore(store))
	}

	for _, c := range closers {
		opts = append(opts, WithCloser(c))
	}
	opts = append(opts, extra...)

	logger.Info("assessment engine ready",
		zap.String(logging.FieldBackend, cfg.Linguistic.Backend),
		zap.Bool("model", client != nil),
		zap.Bool("store", cfg.DatabaseURL != ""),
	)
	return New(opts...), nil
}

// buildService selects the linguistic backend named in cfg.
func buildService(ctx context.Context, cfg *config.Config, client llm.Client, logger *zap.Logger) (linguistic.Service, []func() error, error) {
	switch cfg.Linguistic.Backend {
	case config.BackendNone:
		logger.Warn("linguistic backend disabled, semantic scores will be zero")
		return linguistic.Unavailable{}, nil, nil
	case config.BackendEmbedding:
		if client == nil {
			return nil, nil, fmt.Errorf("linguistic backend %q requires GEMINI_API_KEY", config.BackendEmbedding)
		}
		var closers []func() error
		var cache linguistic.VectorCache = linguistic.NewMemoryCache()
		if cfg.Cache.RedisURL != "" {
			redisCache, err := linguistic.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
			if err != nil {
				return nil, nil, err
			}
			closers = append(closers, redisCache.Close)
			cache = redisCache
		}
		svc := linguistic.NewEmbedding(linguistic.NewLocal(logger), client,
			linguistic.WithVectorCache(cache),
			linguistic.WithEntityExtractor(llm.NewEntityExtractor(client)),
			linguistic.WithEmbeddingLogger(logger),
		)
		return svc, closers, nil
	default:
		return linguistic.NewLocal(logger), nil, nil
	}
}
