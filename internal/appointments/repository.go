package appointments

import (
	"context"
	"sync"

	"github.com/brightpath-health/clinicstore/internal/flatfile"
	"github.com/brightpath-health/clinicstore/internal/observability/metrics"
	"github.com/brightpath-health/clinicstore/internal/records"
)

// Repository is the persistence boundary for appointment records. It does
// not enforce booking rules; the Service routes candidates through the
// Validator before anything is persisted. Writes are serialized by mu: id
// allocation and row rewrites are read-modify-write cycles over the file.
type Repository struct {
	mu      sync.Mutex
	store   *flatfile.Store
	path    string
	metrics *metrics.RecordMetrics
}

// NewRepository creates a repository over the appointments file.
func NewRepository(store *flatfile.Store, path string, m *metrics.RecordMetrics) *Repository {
	if store == nil {
		panic("appointments: flatfile store required")
	}
	return &Repository{store: store, path: path, metrics: m}
}

// LoadAll reads every appointment record, skipping the header and any row
// with fewer than fieldCount columns.
func (r *Repository) LoadAll(ctx context.Context) ([]Appointment, error) {
	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return nil, err
	}

	out := []Appointment{}
	for _, row := range skipHeader(rows) {
		if len(row) < fieldCount {
			continue
		}
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Create assigns the next id, defaults blank status/timestamps, and appends
// the record. Returns the generated id.
func (r *Repository) Create(ctx context.Context, candidate Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return "", err
	}

	today := records.Today()
	candidate.ID = records.NextID(idColumn(rows))
	candidate.Status = records.WithDefault(candidate.Status, StatusScheduled)
	candidate.CreatedDate = records.WithDefault(candidate.CreatedDate, today)
	candidate.LastModified = records.WithDefault(candidate.LastModified, today)

	if err := r.store.AppendRow(r.path, candidate.row()); err != nil {
		return "", err
	}
	r.metrics.ObserveCreate("appointment")
	return candidate.ID, nil
}

// Update overwrites the row whose id matches the candidate's, preserving
// its position. Returns false when no row matches.
func (r *Repository) Update(ctx context.Context, candidate Appointment) (bool, error) {
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
		r.metrics.ObserveRewrite("appointment")
		return true, nil
	}
	return false, nil
}

// Cancel flips the matching record's status to Cancelled and stamps
// last_modified with today. Cancellation is a status transition; the row is
// never removed. Returns false when the id is unknown.
func (r *Repository) Cancel(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return false, err
	}

	for i := 1; i < len(rows); i++ {
		if len(rows[i]) < fieldCount || rows[i][0] != id {
			continue
		}
		rows[i][8] = StatusCancelled
		rows[i][12] = records.Today()
		if err := r.store.WriteAll(r.path, rows); err != nil {
			return false, err
		}
		r.metrics.ObserveRewrite("appointment")
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
