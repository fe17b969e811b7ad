//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/models"
	"loan-scorer/internal/query"
	pg "loan-scorer/pkg/postgres"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *RequestRepository {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finanziamenti"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Migrate(ctx, pool, zap.NewNop()))
	// applying twice is harmless
	require.NoError(t, pg.Migrate(ctx, pool, zap.NewNop()))

	return NewRequestRepository(pool, zap.NewNop())
}

func request(id int64, age, amount, prob float64, sex, education string) *models.FinancingRequest {
	return &models.FinancingRequest{
		RequestID:           id,
		Age:                 age,
		Sex:                 sex,
		Education:           education,
		AmountRequested:     amount,
		Purpose:             "Personale",
		PriorDefault:        "NO",
		ApprovalProbability: prob,
	}
}

func TestRequestRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, 10)
	require.NoError(t, err)
	assert.False(t, exists)

	// inserted out of id order; storage order must follow insertion
	for _, req := range []*models.FinancingRequest{
		request(10, 30, 5000, 0.8, "M", "Laurea"),
		request(3, 45, 12000, 0.3, "F", "Diploma"),
		request(7, 52, 5000, 0.55, "M", "Dottorato di ricerca"),
	} {
		ok, err := repo.Insert(ctx, req)
		require.NoError(t, err)
		require.True(t, ok)
	}

	t.Run("conflict keeps first row", func(t *testing.T) {
		ok, err := repo.Insert(ctx, request(10, 99, 1, 0.01, "F", "Laurea"))
		require.NoError(t, err)
		assert.False(t, ok)

		exists, err := repo.Exists(ctx, 10)
		require.NoError(t, err)
		assert.True(t, exists)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("constraint violation keeps driver error", func(t *testing.T) {
		ok, err := repo.Insert(ctx, request(99, 30, 1000, 1.5, "M", "Laurea"))
		assert.False(t, ok)
		assert.ErrorIs(t, err, apperrors.ErrStore)

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23514", pgErr.Code)
	})

	t.Run("list in storage order", func(t *testing.T) {
		rows, err := repo.List(ctx, query.Filter{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []int64{10, 3, 7}, []int64{rows[0].RequestID, rows[1].RequestID, rows[2].RequestID})
		assert.Equal(t, *request(10, 30, 5000, 0.8, "M", "Laurea"), rows[0])
	})

	t.Run("filters and limit", func(t *testing.T) {
		params := map[string]string{"Eta_min": "30", "Eta_max": "52", "Sesso": "M", "limit": "1"}
		rows, err := repo.List(ctx, query.ParseFilter(func(k string) string { return params[k] }))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(10), rows[0].RequestID)

		params = map[string]string{"ProbabilitaFinanziamentoApprovato_min": "0.5"}
		rows, err = repo.List(ctx, query.ParseFilter(func(k string) string { return params[k] }))
		require.NoError(t, err)
		assert.Len(t, rows, 2)

		params = map[string]string{"TitoloStudio": "Dottorato di ricerca"}
		rows, err = repo.List(ctx, query.ParseFilter(func(k string) string { return params[k] }))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(7), rows[0].RequestID)
	})

	t.Run("report ties follow storage order", func(t *testing.T) {
		rows, err := repo.List(ctx, query.Filter{})
		require.NoError(t, err)

		rep := query.Aggregate(rows)
		require.Len(t, rep.TopAmounts, 3)
		assert.Equal(t, []int64{3, 10, 7}, []int64{rep.TopAmounts[0].RequestID, rep.TopAmounts[1].RequestID, rep.TopAmounts[2].RequestID})
	})
}
