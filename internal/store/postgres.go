package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE of a unique constraint violation
const uniqueViolation = "23505"

// PoolConfig tunes the connection pool
type PoolConfig struct {
	MaxConns          int32
	HealthCheckPeriod time.Duration
}

// Postgres is the pgx-backed Store
type Postgres struct {
	Pool *pgxpool.Pool
}

// Connect opens a pool and verifies it with a ping
func Connect(ctx context.Context, url string, cfg PoolConfig) (*Postgres, error) {
	if url == "" {
		return nil, ErrMissingDatabaseURL
	}

	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	if cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

// SaveReport inserts the snapshot with the full report as JSONB payload
func (p *Postgres) SaveReport(ctx context.Context, snap ReportSnapshot) error {
	payload, err := json.Marshal(snap.Report)
	if err != nil {
		return fmt.Errorf("encoding report payload: %w", err)
	}

	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	regulations := snap.Regulations
	if regulations == nil {
		regulations = []string{}
	}

	_, err = p.Pool.Exec(ctx, `
		INSERT INTO report_snapshots
			(token, email, locale, country, regulations, cost_min, cost_max, grade,
			 consent_marketing, consent_terms, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, snap.Token, snap.Email, snap.Locale, snap.Country, regulations, snap.CostMin, snap.CostMax, snap.Grade,
		snap.Consent.Marketing, snap.Consent.Terms, payload, snap.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateToken
	}

	if err != nil {
		return fmt.Errorf("inserting report snapshot: %w", err)
	}

	return nil
}

// GetReport loads a snapshot by token
func (p *Postgres) GetReport(ctx context.Context, token string) (ReportSnapshot, error) {
	var (
		snap    ReportSnapshot
		payload []byte
	)

	err := p.Pool.QueryRow(ctx, `
		SELECT token, email, locale, country, regulations, cost_min, cost_max, grade,
		       consent_marketing, consent_terms, payload, created_at
		FROM report_snapshots
		WHERE token = $1
	`, token).Scan(&snap.Token, &snap.Email, &snap.Locale, &snap.Country, &snap.Regulations,
		&snap.CostMin, &snap.CostMax, &snap.Grade, &snap.Consent.Marketing, &snap.Consent.Terms,
		&payload, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReportSnapshot{}, ErrNotFound
	}

	if err != nil {
		return ReportSnapshot{}, fmt.Errorf("querying report snapshot: %w", err)
	}

	if err := json.Unmarshal(payload, &snap.Report); err != nil {
		return ReportSnapshot{}, fmt.Errorf("decoding report payload: %w", err)
	}

	return snap, nil
}

// SaveLead inserts the lead
func (p *Postgres) SaveLead(ctx context.Context, lead Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}

	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	_, err := p.Pool.Exec(ctx, `
		INSERT INTO leads
			(id, kind, email, name, company, company_domain, registrar, domain_registered_at,
			 message, locale, consent_marketing, consent_terms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, lead.ID, string(lead.Kind), normalizeEmail(lead.Email), lead.Name, lead.Company, lead.CompanyDomain,
		lead.Registrar, lead.DomainRegisteredAt, lead.Message, lead.Locale, lead.Consent.Marketing,
		lead.Consent.Terms, lead.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateLead
	}

	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}

	return nil
}

// Ping checks database connectivity
func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Close closes the pool
func (p *Postgres) Close() {
	p.Pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
