package referrals

import (
	"context"
	"sync"

	"github.com/brightpath-health/clinicstore/internal/flatfile"
	"github.com/brightpath-health/clinicstore/internal/observability/metrics"
	"github.com/brightpath-health/clinicstore/internal/records"
)

// Repository is the persistence boundary for referral records. Workflow
// sequencing (queue, side channels) lives in the Coordinator, not here.
// Writes are serialized by mu so a rewrite can never straddle a concurrent
// append even for callers that bypass the Coordinator.
type Repository struct {
	mu      sync.Mutex
	store   *flatfile.Store
	path    string
	metrics *metrics.RecordMetrics
}

// NewRepository creates a repository over the referrals file.
func NewRepository(store *flatfile.Store, path string, m *metrics.RecordMetrics) *Repository {
	if store == nil {
		panic("referrals: flatfile store required")
	}
	return &Repository{store: store, path: path, metrics: m}
}

// LoadAll reads every referral record, skipping the header and any row with
// fewer than fieldCount columns.
func (r *Repository) LoadAll(ctx context.Context) ([]Referral, error) {
	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return nil, err
	}

	out := []Referral{}
	for _, row := range skipHeader(rows) {
		if len(row) < fieldCount {
			continue
		}
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Create assigns the next id, defaults blank date/urgency/status fields,
// and appends the record. It returns the record exactly as persisted so the
// coordinator's queue copy matches the file.
func (r *Repository) Create(ctx context.Context, candidate Referral) (Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return Referral{}, err
	}

	today := records.Today()
	candidate.ID = records.NextID(idColumn(rows))
	candidate.ReferralDate = records.WithDefault(candidate.ReferralDate, today)
	candidate.UrgencyLevel = records.WithDefault(candidate.UrgencyLevel, UrgencyRoutine)
	candidate.Status = records.WithDefault(candidate.Status, StatusPending)
	candidate.CreatedDate = today
	candidate.LastUpdated = today

	if err := r.store.AppendRow(r.path, candidate.row()); err != nil {
		return Referral{}, err
	}
	r.metrics.ObserveCreate("referral")
	return candidate, nil
}

// Update overwrites the row whose id matches the candidate's, preserving
// its position and stamping last_updated. Returns false when no row
// matches.
func (r *Repository) Update(ctx context.Context, candidate Referral) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return false, err
	}

	for i := 1; i < len(rows); i++ {
		if len(rows[i]) < fieldCount || rows[i][0] != candidate.ID {
			continue
		}
		candidate.LastUpdated = records.Today()
		rows[i] = candidate.row()
		if err := r.store.WriteAll(r.path, rows); err != nil {
			return false, err
		}
		r.metrics.ObserveRewrite("referral")
		return true, nil
	}
	return false, nil
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func idColumn(rows [][]string) []string {
	var ids []string
	for _, row := range skipHeader(rows) {
		if len(row) > 0 {
			ids = append(ids, row[0])
		}
	}
	return ids
}
