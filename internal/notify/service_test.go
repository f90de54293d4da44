package notify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notice = ReferralNotice{
	ReferralID:              "REF0007",
	PatientID:               "PAT0003",
	ReferringClinicianID:    "CL001",
	ReferredToClinicianID:   "CL009",
	UrgencyLevel:            "Urgent",
	Reason:                  "suspected fracture",
	ClinicalSummary:         "fall at home, wrist pain",
	RequestedInvestigations: "X-ray",
	Status:                  "Pending",
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	outDir := filepath.Join(t.TempDir(), "out")
	svc, err := NewService(outDir, nil)
	require.NoError(t, err)
	at := time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }
	return svc, outDir
}

func TestNewServiceCreatesDirAndFiles(t *testing.T) {
	_, outDir := newTestService(t)

	for _, name := range []string{emailFileName, ehrFileName, auditFileName} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		assert.Empty(t, data, "%s must start empty", name)
	}
}

func TestNewServiceKeepsExistingLogs(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	_, err := NewService(outDir, nil)
	require.NoError(t, err)

	auditPath := filepath.Join(outDir, auditFileName)
	require.NoError(t, os.WriteFile(auditPath, []byte("existing line\n"), 0o644))

	// Reconstruction must not truncate the logs.
	_, err = NewService(outDir, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Equal(t, "existing line\n", string(data))
}

func TestEmailSimulationBlock(t *testing.T) {
	svc, outDir := newTestService(t)

	require.NoError(t, svc.EmailSimulation(notice))

	data, err := os.ReadFile(filepath.Join(outDir, emailFileName))
	require.NoError(t, err)
	body := string(data)

	assert.Contains(t, body, "----- REFERRAL EMAIL (SIMULATED) -----")
	assert.Contains(t, body, "Timestamp: 2025-03-10T09:15:00Z")
	assert.Contains(t, body, "To (Specialist Clinician ID): CL009")
	assert.Contains(t, body, "From (Referring Clinician ID): CL001")
	assert.Contains(t, body, "Patient ID: PAT0003")
	assert.Contains(t, body, "Referral ID: REF0007")
	assert.True(t, strings.HasSuffix(body, "\n\n"), "blocks are separated by a blank line")
}

func TestEHRUpdateLine(t *testing.T) {
	svc, outDir := newTestService(t)

	require.NoError(t, svc.EHRUpdate(notice))

	data, err := os.ReadFile(filepath.Join(outDir, ehrFileName))
	require.NoError(t, err)
	line := strings.TrimSuffix(string(data), "\n")

	assert.Equal(t,
		"2025-03-10T09:15:00Z | EHR_UPDATE | referral_id=REF0007 | patient_id=PAT0003 | status=Pending | referred_to=CL009",
		line)
}

func TestAuditLineCarriesRequiredFields(t *testing.T) {
	svc, outDir := newTestService(t)

	require.NoError(t, svc.Audit("CREATED_AND_QUEUED", notice))
	require.NoError(t, svc.Audit("PROCESSED", notice))

	data, err := os.ReadFile(filepath.Join(outDir, auditFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "| CREATED_AND_QUEUED |")
	assert.Contains(t, lines[1], "| PROCESSED |")
	for _, line := range lines {
		assert.Contains(t, line, "2025-03-10T09:15:00Z")
		assert.Contains(t, line, "referral_id=REF0007")
		assert.Contains(t, line, "patient_id=PAT0003")
		assert.Contains(t, line, "from=CL001")
		assert.Contains(t, line, "to=CL009")
		assert.Contains(t, line, "event_id=")
	}
}
