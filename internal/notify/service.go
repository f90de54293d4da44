// Package notify writes the referral side-channel outputs: a simulated
// email file, an EHR-update log and an audit trail. All three are
// append-only text files; normal operation never truncates them.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath-health/clinicstore/pkg/logging"
)

const (
	emailFileName = "referral_emails.txt"
	ehrFileName   = "ehr_updates.log"
	auditFileName = "audit.log"
)

// ReferralNotice carries the referral fields the side-channel writers
// depend on. Audit consumers rely on timestamp, action tag, referral id,
// patient id and the clinician pair being present on every line.
type ReferralNotice struct {
	ReferralID              string
	PatientID               string
	ReferringClinicianID    string
	ReferredToClinicianID   string
	UrgencyLevel            string
	Reason                  string
	ClinicalSummary         string
	RequestedInvestigations string
	Status                  string
}

// Service owns the three side-channel files. It is not safe for concurrent
// use on its own; the referral coordinator serializes all calls.
type Service struct {
	emailPath string
	ehrPath   string
	auditPath string
	now       func() time.Time
	logger    *logging.Logger
}

// NewService creates the output directory and the three files if absent,
// then returns a service appending to them.
func NewService(outDir string, logger *logging.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("notify: create out dir %s: %w", outDir, err)
	}

	s := &Service{
		emailPath: filepath.Join(outDir, emailFileName),
		ehrPath:   filepath.Join(outDir, ehrFileName),
		auditPath: filepath.Join(outDir, auditFileName),
		now:       time.Now,
		logger:    logger,
	}
	for _, path := range []string{s.emailPath, s.ehrPath, s.auditPath} {
		if err := touch(path); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// EmailSimulation appends one delimited block describing the referral to
// the simulated-email file.
func (s *Service) EmailSimulation(n ReferralNotice) error {
	block := "----- REFERRAL EMAIL (SIMULATED) -----\n" +
		"Timestamp: " + s.now().Format(time.RFC3339) + "\n" +
		"To (Specialist Clinician ID): " + n.ReferredToClinicianID + "\n" +
		"From (Referring Clinician ID): " + n.ReferringClinicianID + "\n" +
		"Patient ID: " + n.PatientID + "\n" +
		"Urgency: " + n.UrgencyLevel + "\n" +
		"Reason: " + n.Reason + "\n" +
		"Clinical Summary: " + n.ClinicalSummary + "\n" +
		"Requested Investigations: " + n.RequestedInvestigations + "\n" +
		"Referral ID: " + n.ReferralID + "\n" +
		"-------------------------------------\n\n"

	return appendText(s.emailPath, block)
}

// EHRUpdate appends one line to the EHR-update log.
func (s *Service) EHRUpdate(n ReferralNotice) error {
	line := fmt.Sprintf("%s | EHR_UPDATE | referral_id=%s | patient_id=%s | status=%s | referred_to=%s\n",
		s.now().Format(time.RFC3339), n.ReferralID, n.PatientID, n.Status, n.ReferredToClinicianID)
	return appendText(s.ehrPath, line)
}

// Audit appends one action line to the audit trail, stamped with a unique
// event id.
func (s *Service) Audit(action string, n ReferralNotice) error {
	line := fmt.Sprintf("%s | %s | event_id=%s | referral_id=%s | patient_id=%s | from=%s | to=%s | urgency=%s\n",
		s.now().Format(time.RFC3339), action, uuid.NewString(),
		n.ReferralID, n.PatientID, n.ReferringClinicianID, n.ReferredToClinicianID, n.UrgencyLevel)
	return appendText(s.auditPath, line)
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("notify: create %s: %w", path, err)
	}
	return f.Close()
}

func appendText(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("notify: append %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("notify: append %s: %w", path, err)
	}
	return nil
}
