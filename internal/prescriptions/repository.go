package prescriptions

import (
	"context"
	"sync"

	"github.com/brightpath-health/clinicstore/internal/flatfile"
	"github.com/brightpath-health/clinicstore/internal/observability/metrics"
	"github.com/brightpath-health/clinicstore/internal/records"
)

// Repository is the persistence boundary for prescription records. Writes
// are serialized by mu: id allocation and row rewrites are
// read-modify-write cycles over the file.
type Repository struct {
	mu      sync.Mutex
	store   *flatfile.Store
	path    string
	metrics *metrics.RecordMetrics
}

// NewRepository creates a repository over the prescriptions file.
func NewRepository(store *flatfile.Store, path string, m *metrics.RecordMetrics) *Repository {
	if store == nil {
		panic("prescriptions: flatfile store required")
	}
	return &Repository{store: store, path: path, metrics: m}
}

// LoadAll reads every prescription record, skipping the header and any row
// with fewer than fieldCount columns.
func (r *Repository) LoadAll(ctx context.Context) ([]Prescription, error) {
	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return nil, err
	}

	out := []Prescription{}
	for _, row := range skipHeader(rows) {
		if len(row) < fieldCount {
			continue
		}
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Create assigns the next id, defaults blank date/status fields, and
// appends the record. Returns the generated id. The appointment id and
// collection date may stay empty.
func (r *Repository) Create(ctx context.Context, candidate Prescription) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.ReadAll(r.path)
	if err != nil {
		return "", err
	}

	today := records.Today()
	candidate.ID = records.NextID(idColumn(rows))
	candidate.PrescriptionDate = records.WithDefault(candidate.PrescriptionDate, today)
	candidate.Status = records.WithDefault(candidate.Status, StatusIssued)
	candidate.IssueDate = records.WithDefault(candidate.IssueDate, today)

	if err := r.store.AppendRow(r.path, candidate.row()); err != nil {
		return "", err
	}
	r.metrics.ObserveCreate("prescription")
	return candidate.ID, nil
}

// Update overwrites the row whose id matches the candidate's, preserving
// its position. Returns false when no row matches.
func (r *Repository) Update(ctx context.Context, candidate Prescription) (bool, error) {
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
		r.metrics.ObserveRewrite("prescription")
		return true, nil
	}
	return false, nil
}

// MarkCollected flips the matching record to Collected and stamps the
// collection date with today. Returns false when the id is unknown.
func (r *Repository) MarkCollected(ctx context.Context, id string) (bool, error) {
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
		rows[i][12] = StatusCollected
		rows[i][14] = records.Today()
		if err := r.store.WriteAll(r.path, rows); err != nil {
			return false, err
		}
		r.metrics.ObserveRewrite("prescription")
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
