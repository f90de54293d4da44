package prescriptions

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

func newTestRepo(t *testing.T, lines ...string) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prescriptions.csv")
	content := strings.Join(Header, ",")
	if len(lines) > 0 {
		content += "\n" + strings.Join(lines, "\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewRepository(flatfile.NewStore(), path, nil)
}

func TestCreateRoundTripWithDefaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	candidate := Prescription{
		PatientID:      "PAT0002",
		ClinicianID:    "CL001",
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		Frequency:      "TDS",
		DurationDays:   "7",
		Quantity:       "21",
		PharmacyName:   "High Street Pharmacy",
	}

	id, err := repo.Create(ctx, candidate)
	require.NoError(t, err)
	assert.Equal(t, "A0001", id)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Amoxicillin", got.MedicationName)
	assert.Equal(t, StatusIssued, got.Status)
	assert.Equal(t, records.Today(), got.PrescriptionDate)
	assert.Equal(t, records.Today(), got.IssueDate)
	// Optional fields stay empty.
	assert.Empty(t, got.AppointmentID)
	assert.Empty(t, got.CollectionDate)
}

func TestCreateConcurrentAssignsDistinctIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 8
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Create(ctx, Prescription{
				PatientID:      "PAT0002",
				ClinicianID:    "CL001",
				MedicationName: "Amoxicillin",
				Dosage:         "500mg",
			})
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

func TestCreatePreservesProvidedDates(t *testing.T) {
	repo := newTestRepo(t)

	candidate := Prescription{
		PatientID:        "PAT0002",
		ClinicianID:      "CL001",
		MedicationName:   "Ramipril",
		PrescriptionDate: "2025-01-15",
		IssueDate:        "2025-01-16",
		Status:           "Pending Review",
	}

	_, err := repo.Create(context.Background(), candidate)
	require.NoError(t, err)

	all, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", all[0].PrescriptionDate)
	assert.Equal(t, "2025-01-16", all[0].IssueDate)
	assert.Equal(t, "Pending Review", all[0].Status)
}

func TestMarkCollected(t *testing.T) {
	repo := newTestRepo(t,
		"RX0001,PAT0002,CL001,,2025-01-15,Amoxicillin,500mg,TDS,7,21,,High Street Pharmacy,Issued,2025-01-15,",
		"RX0002,PAT0003,CL002,,2025-01-16,Ramipril,5mg,OD,28,28,,High Street Pharmacy,Issued,2025-01-16,",
	)
	ctx := context.Background()

	found, err := repo.MarkCollected(ctx, "RX0002")
	require.NoError(t, err)
	assert.True(t, found)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, all[0].Status)
	assert.Equal(t, StatusCollected, all[1].Status)
	assert.Equal(t, records.Today(), all[1].CollectionDate)
	assert.Empty(t, all[0].CollectionDate)
}

func TestUpdateByIdentifier(t *testing.T) {
	repo := newTestRepo(t,
		"RX0001,PAT0002,CL001,,2025-01-15,Amoxicillin,500mg,TDS,7,21,,High Street Pharmacy,Issued,2025-01-15,",
	)
	ctx := context.Background()

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	target := all[0]
	target.Dosage = "250mg"

	found, err := repo.Update(ctx, target)
	require.NoError(t, err)
	assert.True(t, found)

	after, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "250mg", after[0].Dosage)
}

func TestMarkCollectedUnknownID(t *testing.T) {
	repo := newTestRepo(t)

	found, err := repo.MarkCollected(context.Background(), "RX0404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadAllSkipsMalformedRows(t *testing.T) {
	repo := newTestRepo(t,
		"RX0001,PAT0002,CL001,,2025-01-15,Amoxicillin,500mg,TDS,7,21,,High Street Pharmacy,Issued,2025-01-15,",
		"RX0002,missing,cols",
	)

	all, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "RX0001", all[0].ID)
}

func TestValidateRequiredFields(t *testing.T) {
	err := Prescription{PatientID: "PAT0001"}.Validate()
	require.Error(t, err)
	assert.True(t, records.IsValidation(err))
}
