package appointments

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-health/clinicstore/internal/flatfile"
	"github.com/brightpath-health/clinicstore/internal/records"
)

func newTestRepo(t *testing.T, lines ...string) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.csv")
	content := strings.Join(Header, ",")
	if len(lines) > 0 {
		content += "\n" + strings.Join(lines, "\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewRepository(flatfile.NewStore(), path, nil), path
}

func row(id, clinician, date, clock, status string) string {
	return strings.Join([]string{
		id, "PAT0001", clinician, "FAC01", date, clock, "30",
		"Consultation", status, "check-up", "", "2025-01-01", "2025-01-01",
	}, ",")
}

func TestCreateRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	candidate := Appointment{
		PatientID:       "PAT0004",
		ClinicianID:     "CL001",
		FacilityID:      "FAC01",
		Date:            "2030-05-20",
		Time:            "14:30",
		DurationMinutes: "45",
		Type:            "Follow-up",
		Reason:          "review bloods",
	}

	id, err := repo.Create(ctx, candidate)
	require.NoError(t, err)
	assert.Equal(t, "A0001", id)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "2030-05-20", got.Date)
	assert.Equal(t, "14:30", got.Time)
	// Repository defaults when blank.
	assert.Equal(t, StatusScheduled, got.Status)
	assert.Equal(t, records.Today(), got.CreatedDate)
	assert.Equal(t, records.Today(), got.LastModified)
}

// Id allocation is a read-modify-write over the file; concurrent creates
// must never hand out the same identifier.
func TestCreateConcurrentAssignsDistinctIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	const n = 8
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			candidate := Appointment{
				PatientID:       "PAT0004",
				ClinicianID:     "CL001",
				FacilityID:      "FAC01",
				Date:            "2030-05-20",
				Time:            "14:30",
				DurationMinutes: "45",
				Type:            "Follow-up",
			}
			id, err := repo.Create(ctx, candidate)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	require.Len(t, seen, n)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestCancelByIdentifier(t *testing.T) {
	repo, _ := newTestRepo(t,
		row("APT0001", "CL001", "2025-03-01", "09:00", StatusScheduled),
		row("APT0002", "CL002", "2025-03-01", "09:30", StatusScheduled),
	)
	ctx := context.Background()

	found, err := repo.Cancel(ctx, "APT0002")
	require.NoError(t, err)
	assert.True(t, found)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, all[0].Status)
	assert.Equal(t, StatusCancelled, all[1].Status)
	assert.Equal(t, records.Today(), all[1].LastModified)
	// The other record's stamp is untouched.
	assert.Equal(t, "2025-01-01", all[0].LastModified)
}

func TestCancelUnknownIDReportsNotFound(t *testing.T) {
	repo, _ := newTestRepo(t, row("APT0001", "CL001", "2025-03-01", "09:00", StatusScheduled))

	found, err := repo.Cancel(context.Background(), "APT0099")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdatePreservesOtherRowsByteForByte(t *testing.T) {
	repo, path := newTestRepo(t,
		row("APT0003", "CL003", "2025-03-03", "11:00", StatusScheduled),
		row("APT0001", "CL001", "2025-03-01", "09:00", StatusScheduled),
		row("APT0002", "CL002", "2025-03-02", "10:00", StatusScheduled),
	)
	ctx := context.Background()

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// APT0001 is the second data row; the scan must find it by id.
	updated := fromRow(strings.Split(row("APT0001", "CL001", "2025-03-01", "09:00", StatusScheduled), ","))
	updated.Notes = "bring referral letter"

	found, err := repo.Update(ctx, updated)
	require.NoError(t, err)
	assert.True(t, found)

	after, err := os.ReadFile(path)
	require.NoError(t, err)

	beforeLines := strings.Split(string(before), "\n")
	afterLines := strings.Split(string(after), "\n")
	require.Len(t, afterLines, len(beforeLines))
	assert.Equal(t, beforeLines[0], afterLines[0])
	assert.Equal(t, beforeLines[1], afterLines[1])
	assert.Equal(t, beforeLines[3], afterLines[3])
	assert.Contains(t, afterLines[2], "bring referral letter")
}

func TestLoadAllSkipsShortRows(t *testing.T) {
	repo, _ := newTestRepo(t,
		row("APT0001", "CL001", "2025-03-01", "09:00", StatusScheduled),
		"APT0002,short",
	)

	all, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "APT0001", all[0].ID)
}
