package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/bendichter/aind-data-schema/internal/reference"
)

// ErrBlockingIssues — новый каталог не прошёл проверку и не был установлен.
var ErrBlockingIssues = errors.New("catalog has blocking issues")

// Loader собирает каталог целиком с нуля.
type Loader func(ctx context.Context) (*reference.Catalog, error)

type Options struct {
	Loader    Loader
	Logger    *slog.Logger
	RateLimit rate.Limit // 0 — без ограничения
	RateBurst int
	CacheTTL  time.Duration // 0 — без кэша GET
	Registry  *prometheus.Registry
}

// Server — браузер каталога. Текущий каталог лежит в атомарном указателе;
// перезагрузка строит новый каталог и подменяет его целиком.
type Server struct {
	catalog  atomic.Pointer[reference.Catalog]
	load     Loader
	log      *slog.Logger
	cache    *cache.Cache
	cacheTTL time.Duration
	limit    rate.Limit
	burst    int
	registry *prometheus.Registry
	metrics  *metrics
	reloadMu sync.Mutex
}

// NewServer загружает начальный каталог; каталог с замечаниями линтера не принимается.
func NewServer(ctx context.Context, opts Options) (*Server, error) {
	if opts.Loader == nil {
		return nil, errors.New("api: no catalog loader")
	}
	s := &Server{
		load:     opts.Loader,
		log:      opts.Logger,
		cacheTTL: opts.CacheTTL,
		limit:    opts.RateLimit,
		burst:    opts.RateBurst,
		registry: opts.Registry,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	if s.cacheTTL > 0 {
		s.cache = cache.New(s.cacheTTL, 2*s.cacheTTL)
	}
	m, err := newMetrics(s.registry)
	if err != nil {
		return nil, err
	}
	s.metrics = m
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalog — текущий каталог.
func (s *Server) Catalog() *reference.Catalog { return s.catalog.Load() }

// Reload строит новый каталог, проверяет его линтером и подменяет текущий.
// При замечаниях возвращает их вместе с ErrBlockingIssues; текущий каталог остаётся прежним.
func (s *Server) Reload(ctx context.Context) ([]reference.Issue, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	next, err := s.load(ctx)
	if err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		s.log.Error("catalog load failed", "error", err)
		return nil, err
	}
	if issues := next.Lint(); len(issues) > 0 {
		reference.SortIssues(issues)
		s.metrics.reloads.WithLabelValues("rejected").Inc()
		s.log.Warn("catalog rejected", "issues", len(issues), "first", issues[0].Message)
		return issues, ErrBlockingIssues
	}

	s.catalog.Store(next)
	if s.cache != nil {
		s.cache.Flush()
	}
	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.metrics.entities.Set(float64(len(next.FQNs())))
	s.metrics.enums.Set(float64(len(next.Enums())))
	s.log.Info("catalog loaded", "entities", len(next.FQNs()), "enums", len(next.Enums()))
	return nil, nil
}
