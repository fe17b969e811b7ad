package repository

import (
	"context"
	"errors"
	"fmt"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/models"
	"loan-scorer/internal/query"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const requestsTable = "financing_requests"

var requestColumns = []string{
	"request_id", "age", "sex", "education", "gross_income", "work_experience_years",
	"real_estate", "amount_requested", "purpose", "interest_rate", "amount_to_income",
	"credit_history_years", "credit_score", "prior_default", "approval_probability",
}

// RequestRepository stores scored financing requests keyed by request id.
// Every call borrows a pooled connection only for its own duration.
type RequestRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRequestRepository(db *pgxpool.Pool, logger *zap.Logger) *RequestRepository {
	return &RequestRepository{
		db:     db,
		logger: logger,
	}
}

// Exists reports whether a request with the given id is stored.
func (r *RequestRepository) Exists(ctx context.Context, requestID int64) (bool, error) {
	builder := squirrel.Select("1").
		From(requestsTable).
		Where(squirrel.Eq{"request_id": requestID}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check request %d: %w", requestID, err)
	}
	return true, nil
}

// Insert stores req. It reports false when a request with the same id already exists,
// in which case the stored row is left untouched.
func (r *RequestRepository) Insert(ctx context.Context, req *models.FinancingRequest) (bool, error) {
	builder := squirrel.Insert(requestsTable).
		Columns(requestColumns...).
		Values(
			req.RequestID, req.Age, req.Sex, req.Education, req.GrossIncome, req.WorkExperience,
			req.RealEstate, req.AmountRequested, req.Purpose, req.InterestRate, req.AmountToIncome,
			req.CreditHistoryYears, req.CreditScore, req.PriorDefault, req.ApprovalProbability,
		).
		Suffix("ON CONFLICT (request_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert request %d: %w: %w", req.RequestID, err, apperrors.ErrStore)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns the requests matching f in storage order, capped by f.Limit.
func (r *RequestRepository) List(ctx context.Context, f query.Filter) ([]models.FinancingRequest, error) {
	builder := squirrel.Select(requestColumns...).
		From(requestsTable).
		OrderBy("storage_seq ASC").
		PlaceholderFormat(squirrel.Dollar)

	if !f.Empty() {
		builder = builder.Where(f.Where())
	}
	if f.Limit > 0 {
		builder = builder.Limit(uint64(f.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := make([]models.FinancingRequest, 0)
	for rows.Next() {
		var req models.FinancingRequest
		if err := rows.Scan(
			&req.RequestID, &req.Age, &req.Sex, &req.Education, &req.GrossIncome, &req.WorkExperience,
			&req.RealEstate, &req.AmountRequested, &req.Purpose, &req.InterestRate, &req.AmountToIncome,
			&req.CreditHistoryYears, &req.CreditScore, &req.PriorDefault, &req.ApprovalProbability,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Listed requests",
		zap.Int("rows", len(requests)),
		zap.Int("limit", f.Limit),
	)
	return requests, nil
}

// Count returns the number of stored requests.
func (r *RequestRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := squirrel.Select("COUNT(*)").From(requestsTable).ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return n, nil
}
