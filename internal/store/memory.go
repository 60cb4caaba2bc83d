package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store used in development and tests
type Memory struct {
	mu          sync.RWMutex
	reports     map[string]ReportSnapshot
	leads       []Lead
	subscribers map[string]struct{}
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		reports:     map[string]ReportSnapshot{},
		subscribers: map[string]struct{}{},
	}
}

// SaveReport stores the snapshot
func (m *Memory) SaveReport(_ context.Context, snap ReportSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.reports[snap.Token]; exists {
		return ErrDuplicateToken
	}

	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	m.reports[snap.Token] = snap

	return nil
}

// GetReport returns the stored snapshot
func (m *Memory) GetReport(_ context.Context, token string) (ReportSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.reports[token]
	if !ok {
		return ReportSnapshot{}, ErrNotFound
	}

	return snap, nil
}

// SaveLead stores the lead
func (m *Memory) SaveLead(_ context.Context, lead Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := normalizeEmail(lead.Email)

	if lead.Kind == LeadKindNewsletter {
		if _, exists := m.subscribers[email]; exists {
			return ErrDuplicateLead
		}

		m.subscribers[email] = struct{}{}
	}

	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}

	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	lead.Email = email
	m.leads = append(m.leads, lead)

	return nil
}

// Leads returns a copy of the stored leads in insertion order
func (m *Memory) Leads() []Lead {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Lead, len(m.leads))
	copy(out, m.leads)

	return out
}

// Ping always succeeds
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close is a no-op
func (m *Memory) Close() {}
