package lookup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/merchly/order-lookup/internal/domain"
	"github.com/merchly/order-lookup/internal/observability"
	"github.com/merchly/order-lookup/internal/pkg/pool"
	"github.com/merchly/order-lookup/internal/shop"
)

//go:generate mockgen -source internal/lookup/service.go -destination=internal/lookup/service_mock_test.go -package=lookup

// Upstream is the order-management API accessed via two mechanisms: the
// paginated flat listing and the typed graph endpoint.
type Upstream interface {
	FetchOrdersPage(ctx context.Context, query url.Values) ([]shop.RESTOrder, string, error)
	RunGraphQuery(ctx context.Context, query string, vars map[string]any, out any) error
}

type Cache interface {
	Get(key string) ([]domain.OrderSummary, bool)
	Set(key string, orders []domain.OrderSummary) bool
}

// Reporter receives one record per completed lookup (events, audit).
// Implementations must not block the lookup path.
type Reporter interface {
	Record(ctx context.Context, rec domain.LookupRecord)
}

type Source string

const (
	SourceCache    Source = "cache"
	SourceUpstream Source = "upstream"
)

type Stats struct {
	Source Source
	DurMs  float64
}

// Params bound the upstream query behavior: page size of the flat
// listing and the hard cap on pages followed per email lookup.
type Params struct {
	PageLimit int
	MaxPages  int
}

// Service is the lookup orchestrator: cache in front, then a bounded
// worker pool executing the matching strategy against the upstream.
// Identical concurrent lookups are not collapsed; each runs on its own
// and the cache absorbs the duplicates.
type Service struct {
	upstream  Upstream
	cache     Cache
	workers   *pool.Pool
	logger    *zap.Logger
	metrics   observability.Metrics
	reporters []Reporter
	pageLimit int
	maxPages  int
}

func NewService(
	upstream Upstream,
	cache Cache,
	workers *pool.Pool,
	logger *zap.Logger,
	metrics observability.Metrics,
	params Params,
	reporters ...Reporter,
) *Service {
	if params.PageLimit <= 0 {
		params.PageLimit = 250
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Service{
		upstream:  upstream,
		cache:     cache,
		workers:   workers,
		logger:    logger,
		metrics:   metrics,
		reporters: reporters,
		pageLimit: params.PageLimit,
		maxPages:  params.MaxPages,
	}
}

func (s *Service) Lookup(ctx context.Context, contactType, contactInfo string) ([]domain.OrderSummary, error) {
	orders, _, err := s.LookupWithStats(ctx, contactType, contactInfo)
	return orders, err
}

func (s *Service) LookupWithStats(ctx context.Context, contactType, contactInfo string) ([]domain.OrderSummary, Stats, error) {
	var st Stats

	ct := domain.ContactType(contactType)
	if !ct.Valid() {
		return nil, st, domain.ErrInvalidContactType
	}

	key := domain.CacheKey(ct, contactInfo)
	start := time.Now()

	if orders, ok := s.cache.Get(key); ok {
		st.Source = SourceCache
		st.DurMs = sinceMs(start)
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(SourceCache), st.DurMs)
		s.logger.Info("lookup served from cache",
			zap.String("contact_type", contactType),
			zap.Int("orders", len(orders)),
		)
		s.report(ct, contactInfo, SourceCache, len(orders), time.Since(start))
		return orders, st, nil
	}
	s.metrics.IncCacheMiss()

	type result struct {
		orders []domain.OrderSummary
		err    error
	}
	done := make(chan result, 1)

	// The task is detached from the caller's context: once submitted it
	// runs to completion or failure even if the caller disconnects. The
	// upstream client's per-call timeout remains the only bound.
	taskCtx := context.WithoutCancel(ctx)
	submitted := s.workers.Submit(func() {
		var r result
		switch ct {
		case domain.ContactEmail:
			r.orders, r.err = s.searchByEmail(taskCtx, contactInfo)
		case domain.ContactPhone:
			r.orders, r.err = s.searchByPhone(taskCtx, contactInfo)
		}
		done <- r
	})
	if !submitted {
		st.DurMs = sinceMs(start)
		s.logger.Warn("lookup rejected, worker pool is closed",
			zap.String("contact_type", contactType),
		)
		return nil, st, domain.ErrLookupFailed
	}

	// Await this caller's task only.
	r := <-done
	if r.err != nil {
		st.DurMs = sinceMs(start)
		s.metrics.ObserveLookup("error", st.DurMs)
		s.logger.Error("lookup failed",
			zap.String("contact_type", contactType),
			zap.Error(r.err),
		)
		return nil, st, domain.ErrLookupFailed
	}

	if !s.cache.Set(key, r.orders) {
		s.logger.Warn("result too large to cache",
			zap.String("contact_type", contactType),
			zap.Int("orders", len(r.orders)),
		)
	}

	st.Source = SourceUpstream
	st.DurMs = sinceMs(start)
	s.metrics.ObserveLookup(string(SourceUpstream), st.DurMs)
	s.logger.Info("lookup served from upstream",
		zap.String("contact_type", contactType),
		zap.Int("orders", len(r.orders)),
		zap.Float64("dur_ms", st.DurMs),
	)
	s.report(ct, contactInfo, SourceUpstream, len(r.orders), time.Since(start))

	return r.orders, st, nil
}

func (s *Service) report(ct domain.ContactType, contact string, src Source, orders int, dur time.Duration) {
	if len(s.reporters) == 0 {
		return
	}
	rec := domain.LookupRecord{
		ContactType: ct,
		ContactHash: hashContact(contact),
		Source:      string(src),
		Orders:      orders,
		DurationMs:  float64(dur.Microseconds()) / 1000.0,
		At:          time.Now().UTC(),
	}
	// Reporters are detached from the request context on purpose: a
	// finished request must not cancel a half-written record.
	for _, r := range s.reporters {
		r.Record(context.Background(), rec)
	}
}

func hashContact(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
