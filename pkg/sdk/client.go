package plagcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/plagcheck/internal/db/redis"
	"github.com/kailas-cloud/plagcheck/internal/domain"
	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	domsum "github.com/kailas-cloud/plagcheck/internal/domain/summary"
	documentrepo "github.com/kailas-cloud/plagcheck/internal/repository/document"
	checkuc "github.com/kailas-cloud/plagcheck/internal/usecase/check"
	documentuc "github.com/kailas-cloud/plagcheck/internal/usecase/document"
	embeddinguc "github.com/kailas-cloud/plagcheck/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/plagcheck/internal/usecase/health"
	similarityuc "github.com/kailas-cloud/plagcheck/internal/usecase/similarity"
	"github.com/kailas-cloud/plagcheck/internal/usecase/summarize"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type similarityUseCase interface {
	Compare(ctx context.Context, textA, textB string) (domsim.Result, error)
}

type documentUseCase interface {
	Add(ctx context.Context, filename, text string) (domdoc.Document, error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	List(ctx context.Context) ([]domdoc.Document, error)
	Remove(ctx context.Context, id string) error
}

type checkUseCase interface {
	Check(ctx context.Context, documentID string) (domcheck.Report, error)
}

type summarizeUseCase interface {
	Summarize(ctx context.Context, input string, minLength, maxLength int) (domsum.Result, error)
	DefaultBounds() (minLength, maxLength int)
}

// backend is a document repository that can report its own health.
type backend interface {
	documentuc.Repository
	healthuc.StoragePinger
}

// Client is the plagcheck SDK entry point.
type Client struct {
	closeFn   func()
	simSvc    similarityUseCase
	docSvc    documentUseCase
	checkSvc  checkUseCase
	sumSvc    summarizeUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a plagcheck Client. With WithRedis or WithValkey it connects
// to the database and uses ctx for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		threshold: domsim.DefaultThreshold,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.threshold <= 0 || cfg.threshold > 1 {
		return nil, fmt.Errorf("plagcheck: threshold must be in (0, 1], got %v", cfg.threshold)
	}
	if cfg.summaryMinLength > 0 && cfg.summaryMaxLength > 0 && cfg.summaryMinLength > cfg.summaryMaxLength {
		return nil, errors.New("plagcheck: summary min length exceeds max length")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	repo, closeFn, err := createBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return wireClient(repo, closeFn, cfg, obs), nil
}

func createBackend(ctx context.Context, cfg *clientConfig) (backend, func(), error) {
	switch cfg.driver {
	case "":
		return documentrepo.NewMemory(), func() {}, nil
	case "valkey", "redis":
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, nil, fmt.Errorf("plagcheck: %s address required", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("plagcheck: create %s store: %w", cfg.driver, err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("plagcheck: database not ready: %w", err)
		}
		prefix := cfg.keyPrefix
		if prefix == "" {
			prefix = documentrepo.DefaultKeyPrefix
		}
		return &storeBackend{Repo: documentrepo.New(s, prefix), pinger: s}, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("plagcheck: unknown driver %q", cfg.driver)
	}
}

func wireClient(repo backend, closeFn func(), cfg *clientConfig, obs *observer) *Client {
	var emb domain.Embedder
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
	} else {
		emb = embeddinguc.NewHashingEmbedder(cfg.vectorDimensions)
	}

	docSvc := documentuc.New(repo, emb)

	return &Client{
		closeFn:  closeFn,
		simSvc:   similarityuc.New(emb, cfg.threshold),
		docSvc:   docSvc,
		checkSvc: checkuc.New(docSvc, cfg.threshold),
		sumSvc: summarize.New(summarize.Config{
			DefaultMinLength: cfg.summaryMinLength,
			DefaultMaxLength: cfg.summaryMaxLength,
		}),
		healthSvc: healthuc.New(repo, nil, repo),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Compare scores the similarity of two texts without storing them.
func (c *Client) Compare(ctx context.Context, textA, textB string) (sim Similarity, err error) {
	op := c.obs.begin("compare")
	defer func() { op.end(err) }()

	r, err := c.simSvc.Compare(ctx, textA, textB)
	if err != nil {
		return Similarity{}, fmt.Errorf("compare: %w", err)
	}
	op.verdict(r.IsPlagiarized)
	return fromSimilarity(r), nil
}

// Check compares a stored document with every other stored document.
func (c *Client) Check(ctx context.Context, documentID string) (report CheckReport, err error) {
	op := c.obs.begin("check", "document_id", documentID)
	defer func() { op.end(err) }()

	r, err := c.checkSvc.Check(ctx, documentID)
	if err != nil {
		return CheckReport{}, fmt.Errorf("check: %w", err)
	}
	for _, m := range r.Matches {
		op.verdict(m.Result.IsPlagiarized)
	}
	return fromReport(r), nil
}

// Summarize builds an extractive summary. Zero bounds use the client defaults.
func (c *Client) Summarize(ctx context.Context, text string, minLength, maxLength int) (s Summary, err error) {
	op := c.obs.begin("summarize")
	defer func() { op.end(err) }()

	defMin, defMax := c.sumSvc.DefaultBounds()
	if minLength == 0 {
		minLength = defMin
	}
	if maxLength == 0 {
		maxLength = defMax
	}

	r, err := c.sumSvc.Summarize(ctx, text, minLength, maxLength)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}
	return fromSummary(r), nil
}

// Documents returns the document corpus service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{svc: c.docSvc, obs: c.obs}
}

// storeBackend adds the store ping to the Redis/Valkey repository.
type storeBackend struct {
	*documentrepo.Repo
	pinger healthuc.StoragePinger
}

func (b *storeBackend) Ping(ctx context.Context) error { return b.pinger.Ping(ctx) }

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		// Ошибки внешнего провайдера приводим к доменной.
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w: %w", domain.ErrEmbeddingProviderError, err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
