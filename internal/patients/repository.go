package patients

import (
	"context"
	"sync"

	"github.com/brightpath-health/clinicstore/internal/flatfile"
	"github.com/brightpath-health/clinicstore/internal/observability/metrics"
	"github.com/brightpath-health/clinicstore/internal/records"
)

// Repository is the persistence boundary for patient records. It handles
// data access only; candidate validation belongs to callers. Writes are
// serialized by mu: id allocation and row rewrites are read-modify-write
// cycles over the file.
type Repository struct {
	mu      sync.Mutex
	store   *flatfile.Store
	path    string
	metrics *metrics.RecordMetrics
}

// NewRepository creates a repository over the patients file.
func NewRepository(store *flatfile.Store, path string, m *metrics.RecordMetrics) *Repository {
	if store == nil {
		panic("patients: flatfile store required")
	}
	return &Repository{store: store, path: path, metrics: m}
}

// LoadAll reads every patient record. The header row is skipped, as is any
// malformed row with fewer than fieldCount columns.
func (r *Repository) LoadAll(ctx context.Context) ([]Patient, error) {
	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return nil, err
	}

	out := []Patient{}
	for _, row := range skipHeader(rows) {
		if len(row) < fieldCount {
			continue
		}
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Create assigns the next id, defaults a blank registration date to today,
// and appends the record. Returns the generated id.
func (r *Repository) Create(ctx context.Context, candidate Patient) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return "", err
	}

	candidate.ID = records.NextID(idColumn(rows))
	candidate.RegistrationDate = records.WithDefault(candidate.RegistrationDate, records.Today())

	if err := r.store.AppendRow(r.path, candidate.row()); err != nil {
		return "", err
	}
	r.metrics.ObserveCreate("patient")
	return candidate.ID, nil
}

// Update overwrites the row whose id matches the candidate's, preserving its
// position. Returns false when no row matches; that is not an error.
func (r *Repository) Update(ctx context.Context, candidate Patient) (bool, error) {
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
		rows[i] = candidate.row()
		if err := r.store.WriteAll(r.path, rows); err != nil {
			return false, err
		}
		r.metrics.ObserveRewrite("patient")
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
