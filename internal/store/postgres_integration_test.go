//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Run with: go test -tags=integration ./internal/store/...
func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hub"),
		postgres.WithUsername("hub"),
		postgres.WithPassword("hub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pg, err := Connect(ctx, dsn, PoolConfig{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, Migrate(ctx, pg.Pool))

	return pg
}

func TestPostgres_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	pg := newTestPostgres(t)

	version, err := MigrationVersion(ctx, pg.Pool)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	// migrations are idempotent
	require.NoError(t, Migrate(ctx, pg.Pool))

	t.Run("reports", func(t *testing.T) {
		rep := sampleReport()
		snap := NewReportSnapshot("tok-int", "a@example.com", "de", Consent{Marketing: true, Terms: true}, rep)

		require.NoError(t, pg.SaveReport(ctx, snap))
		assert.ErrorIs(t, pg.SaveReport(ctx, snap), ErrDuplicateToken)

		got, err := pg.GetReport(ctx, "tok-int")
		require.NoError(t, err)
		assert.Equal(t, snap.Regulations, got.Regulations)
		assert.Equal(t, snap.CostMax, got.CostMax)
		assert.True(t, got.Consent.Marketing)
		assert.Equal(t, rep.RegulationKeys(), got.Report.RegulationKeys())
		assert.Equal(t, rep.CostTotal, got.Report.CostTotal)

		_, err = pg.GetReport(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("leads", func(t *testing.T) {
		require.NoError(t, pg.SaveLead(ctx, Lead{Kind: LeadKindNewsletter, Email: "n@example.com", Locale: "de"}))
		assert.ErrorIs(t, pg.SaveLead(ctx, Lead{Kind: LeadKindNewsletter, Email: "N@Example.com", Locale: "de"}), ErrDuplicateLead)
		require.NoError(t, pg.SaveLead(ctx, Lead{Kind: LeadKindContact, Email: "n@example.com", Locale: "en"}))
	})

	assert.NoError(t, pg.Ping(ctx))
}
