package service

import (
	"context"
	"fmt"
	"sync"

	"loan-scorer/internal/dto"
	"loan-scorer/internal/features"
	"loan-scorer/internal/models"
	"loan-scorer/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecordSource supplies candidate records for an import.
type RecordSource interface {
	Fetch(ctx context.Context) ([]features.Record, error)
}

// RequestStore persists scored requests keyed by request id.
type RequestStore interface {
	Exists(ctx context.Context, requestID int64) (bool, error)
	// Insert reports false when the id is already stored; it never overwrites.
	Insert(ctx context.Context, req *models.FinancingRequest) (bool, error)
}

// ImportService pulls records from the import source, scores the new ones and stores them.
type ImportService struct {
	source  RecordSource
	store   RequestStore
	scorer  *ScoringService
	workers int
	metrics *metrics.Manager
	logger  *zap.Logger

	// one import at a time per process; the store's insert-or-ignore covers other processes
	mu sync.Mutex
}

func NewImportService(
	source RecordSource,
	store RequestStore,
	scorer *ScoringService,
	workers int,
	m *metrics.Manager,
	logger *zap.Logger,
) *ImportService {
	if workers < 1 {
		workers = 1
	}
	return &ImportService{
		source:  source,
		store:   store,
		scorer:  scorer,
		workers: workers,
		metrics: m,
		logger:  logger,
	}
}

type candidate struct {
	index int
	id    int64
	rec   features.Record
	req   *models.FinancingRequest
	err   error
}

// Import runs one import. A source failure aborts before anything is written.
// Failures on single records are reported in the response and do not stop the rest.
func (s *ImportService) Import(ctx context.Context) (*dto.ImportResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	importID := uuid.New().String()
	log := s.logger.With(zap.String("import_id", importID))

	records, err := s.source.Fetch(ctx)
	if err != nil {
		s.recordRun("upstream_error")
		log.Error("Import source unavailable", zap.Error(err))
		return nil, err
	}

	resp := &dto.ImportResponse{
		ImportID: importID,
		Failed:   make([]dto.ImportFailure, 0),
	}

	pending, err := s.selectNew(ctx, records, resp)
	if err != nil {
		s.recordRun("store_error")
		return nil, err
	}

	if err := s.scoreAll(ctx, pending); err != nil {
		s.recordRun("canceled")
		return nil, err
	}

	for _, c := range pending {
		if c.err != nil {
			resp.Failed = append(resp.Failed, failure(c.index, &c.id, c.err))
			continue
		}

		inserted, err := s.store.Insert(ctx, c.req)
		if err != nil {
			log.Warn("Failed to store request", zap.Int64("request_id", c.id), zap.Error(err))
			resp.Failed = append(resp.Failed, failure(c.index, &c.id, err))
			continue
		}
		if !inserted {
			// stored concurrently by another importer after our existence check
			resp.Skipped++
			continue
		}
		resp.Imported++
	}

	if s.metrics != nil {
		s.metrics.RecordImportRecords(metrics.OutcomeInserted, resp.Imported)
		s.metrics.RecordImportRecords(metrics.OutcomeSkipped, resp.Skipped)
		s.metrics.RecordImportRecords(metrics.OutcomeFailed, len(resp.Failed))
	}
	s.recordRun("ok")

	log.Info("Import completed",
		zap.Int("candidates", len(records)),
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.Skipped),
		zap.Int("failed", len(resp.Failed)),
	)
	return resp, nil
}

// selectNew drops records that are already stored or repeated within the batch.
func (s *ImportService) selectNew(ctx context.Context, records []features.Record, resp *dto.ImportResponse) ([]*candidate, error) {
	seen := make(map[int64]struct{}, len(records))
	pending := make([]*candidate, 0, len(records))

	for i, rec := range records {
		id, err := models.RequestIDOf(rec)
		if err != nil {
			resp.Failed = append(resp.Failed, failure(i, nil, err))
			continue
		}

		if _, dup := seen[id]; dup {
			resp.Skipped++
			continue
		}
		seen[id] = struct{}{}

		exists, err := s.store.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("existence check for request %d: %w", id, err)
		}
		if exists {
			resp.Skipped++
			continue
		}

		pending = append(pending, &candidate{index: i, id: id, rec: rec})
	}
	return pending, nil
}

// scoreAll scores candidates concurrently. Per-record errors are kept on the candidate.
func (s *ImportService) scoreAll(ctx context.Context, pending []*candidate) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, c := range pending {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, err := s.scorer.ScoreRecord(c.rec)
			if err != nil {
				c.err = err
				return nil
			}
			c.req, c.err = models.NewFinancingRequest(c.rec, score.Probability)
			return nil
		})
	}
	return g.Wait()
}

func (s *ImportService) recordRun(status string) {
	if s.metrics != nil {
		s.metrics.RecordImportRun(status)
	}
}

func failure(index int, id *int64, err error) dto.ImportFailure {
	f := dto.ImportFailure{Index: index, Error: err.Error()}
	if id != nil {
		v := *id
		f.RequestID = &v
	}
	return f
}
