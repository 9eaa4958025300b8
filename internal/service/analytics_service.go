package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/complainthub/complainthub/internal/analytics"
	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/repository"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

const (
	overviewCacheKey = "analytics:overview"
	overviewCacheTTL = 30 * time.Second
)

// Overview is the dashboard aggregate for a scope of tickets.
type Overview struct {
	analytics.Summary
	Growth      analytics.GrowthReport `json:"growth"`
	PeriodDays  int                    `json:"period_days"`
	TotalBrands int                    `json:"total_brands,omitempty"`
}

// BrandAnalytics is the admin cross-brand report.
type BrandAnalytics struct {
	Overview
	BrandPerformance []analytics.BrandPerformance `json:"brand_performance"`
	TopPerforming    []analytics.BrandPerformance `json:"top_performing_brands"`
}

// AnalyticsService derives dashboard metrics from the ticket and brand
// collections. Brand and ticket fetches run in parallel and the whole report
// fails if either fails.
type AnalyticsService struct {
	tickets repository.TicketRepository
	brands  repository.BrandRepository
	cache   *redis.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService constructs the service. cache may be nil.
func NewAnalyticsService(tickets repository.TicketRepository, brands repository.BrandRepository, cache *redis.Client, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		tickets: tickets,
		brands:  brands,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// OverviewFor computes the scoped overview for the acting user.
func (s *AnalyticsService) OverviewFor(ctx context.Context, actor *domain.User, periodDays int, filter analytics.FilterSpec) (*Overview, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	tickets, _, err := s.fetchJoined(ctx)
	if err != nil {
		return nil, err
	}

	scoped := analytics.ScopeTickets(tickets, actor)
	filtered := analytics.Filter(scoped, filter)

	return &Overview{
		Summary:    analytics.Summarize(filtered),
		Growth:     analytics.Growth(filtered, s.now(), periodDays),
		PeriodDays: periodDays,
	}, nil
}

// BrandAnalyticsReport computes the admin cross-brand performance table. The
// assembled snapshot is cached briefly in Redis since every admin dashboard
// load requests it.
func (s *AnalyticsService) BrandAnalyticsReport(ctx context.Context, periodDays int) (*BrandAnalytics, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	if cached := s.readCache(ctx, periodDays); cached != nil {
		return cached, nil
	}

	tickets, brands, err := s.fetchJoined(ctx)
	if err != nil {
		return nil, err
	}

	performance := analytics.PerformanceByBrand(brands, tickets)
	report := &BrandAnalytics{
		Overview: Overview{
			Summary:     analytics.Summarize(tickets),
			Growth:      analytics.Growth(tickets, s.now(), periodDays),
			PeriodDays:  periodDays,
			TotalBrands: len(brands),
		},
		BrandPerformance: performance,
		TopPerforming:    analytics.TopPerforming(performance, 5),
	}
	s.writeCache(ctx, periodDays, report)
	return report, nil
}

// fetchJoined loads tickets and brands concurrently, failing fast when either
// fetch errors.
func (s *AnalyticsService) fetchJoined(ctx context.Context) ([]domain.Ticket, []domain.Brand, error) {
	type ticketResult struct {
		tickets []domain.Ticket
		err     error
	}
	type brandResult struct {
		brands []domain.Brand
		err    error
	}

	ticketCh := make(chan ticketResult, 1)
	brandCh := make(chan brandResult, 1)

	go func() {
		tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{Limit: 10000})
		ticketCh <- ticketResult{tickets: tickets, err: err}
	}()
	go func() {
		brands, err := s.brands.List(ctx)
		brandCh <- brandResult{brands: brands, err: err}
	}()

	tr := <-ticketCh
	br := <-brandCh
	if tr.err != nil {
		return nil, nil, apperrors.MapError(tr.err)
	}
	if br.err != nil {
		return nil, nil, apperrors.MapError(br.err)
	}
	return tr.tickets, br.brands, nil
}

func (s *AnalyticsService) readCache(ctx context.Context, periodDays int) *BrandAnalytics {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, cacheKey(periodDays)).Bytes()
	if err != nil {
		return nil
	}
	var report BrandAnalytics
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil
	}
	return &report
}

func (s *AnalyticsService) writeCache(ctx context.Context, periodDays int, report *BrandAnalytics) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(periodDays), payload, overviewCacheTTL).Err(); err != nil {
		s.logger.Debug("analytics cache write failed", zap.Error(err))
	}
}

func cacheKey(periodDays int) string {
	return overviewCacheKey + ":" + strconv.Itoa(periodDays)
}
