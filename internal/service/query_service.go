package service

import (
	"context"
	"time"

	"loan-scorer/internal/models"
	"loan-scorer/internal/query"
	"loan-scorer/pkg/metrics"

	"go.uber.org/zap"
)

// RequestReader lists stored requests in storage order.
type RequestReader interface {
	List(ctx context.Context, f query.Filter) ([]models.FinancingRequest, error)
}

// QueryService serves filtered listings and the statistics report.
type QueryService struct {
	reader  RequestReader
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewQueryService(reader RequestReader, m *metrics.Manager, logger *zap.Logger) *QueryService {
	return &QueryService{
		reader:  reader,
		metrics: m,
		logger:  logger,
	}
}

// ListRequests returns the requests matching every condition of f, capped by f.Limit.
func (s *QueryService) ListRequests(ctx context.Context, f query.Filter) ([]models.FinancingRequest, error) {
	defer s.observe("list", time.Now())

	records, err := s.reader.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Statistics builds the report over the requests matching the equality conditions of f.
// Range conditions and the limit do not apply to statistics.
func (s *QueryService) Statistics(ctx context.Context, f query.Filter) (*query.Report, error) {
	defer s.observe("statistics", time.Now())

	records, err := s.reader.List(ctx, f.EqualityOnly(query.StatisticsFields...))
	if err != nil {
		return nil, err
	}

	rep := query.Aggregate(records)
	s.logger.Debug("Statistics computed",
		zap.Int("requests", rep.TotalRequests),
		zap.Int("approved", rep.ApprovedCount),
	)
	return rep, nil
}

func (s *QueryService) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveQuery(op, start)
	}
}
