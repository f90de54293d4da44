// Package referrals persists referral records and coordinates the referral
// workflow: record creation, the in-process work queue, and the simulated
// email/EHR/audit side channels.
package referrals

import (
	"github.com/brightpath-health/clinicstore/internal/notify"
	"github.com/brightpath-health/clinicstore/internal/records"
)

const fieldCount = 16

const (
	// UrgencyRoutine is the default urgency stamped on creation.
	UrgencyRoutine = "Routine"
	// StatusPending is the default status stamped on creation.
	StatusPending = "Pending"
)

// Header is the referrals file header row.
var Header = []string{
	"referral_id", "patient_id", "referring_clinician_id",
	"referred_to_clinician_id", "referring_facility_id",
	"referred_to_facility_id", "referral_date", "urgency_level",
	"referral_reason", "clinical_summary", "requested_investigations",
	"status", "appointment_id", "notes", "created_date", "last_updated",
}

// Referral is one referrals-file record. AppointmentID and Notes may be
// empty.
type Referral struct {
	ID                      string `json:"id"`
	PatientID               string `json:"patient_id"`
	ReferringClinicianID    string `json:"referring_clinician_id"`
	ReferredToClinicianID   string `json:"referred_to_clinician_id"`
	ReferringFacilityID     string `json:"referring_facility_id"`
	ReferredToFacilityID    string `json:"referred_to_facility_id"`
	ReferralDate            string `json:"referral_date"`
	UrgencyLevel            string `json:"urgency_level"`
	Reason                  string `json:"reason"`
	ClinicalSummary         string `json:"clinical_summary"`
	RequestedInvestigations string `json:"requested_investigations"`
	Status                  string `json:"status"`
	AppointmentID           string `json:"appointment_id"`
	Notes                   string `json:"notes"`
	CreatedDate             string `json:"created_date"`
	LastUpdated             string `json:"last_updated"`
}

// Validate checks the candidate's required fields before persistence.
func (r Referral) Validate() error {
	if r.PatientID == "" || r.ReferringClinicianID == "" || r.ReferredToClinicianID == "" {
		return records.Validationf("referral patient id and both clinician ids are required")
	}
	if r.ReferralDate != "" {
		if _, err := records.ParseDate(r.ReferralDate); err != nil {
			return records.Validationf("referral date: %v", err)
		}
	}
	return nil
}

// notice maps the referral onto the fields the side-channel writers need.
func (r Referral) notice() notify.ReferralNotice {
	return notify.ReferralNotice{
		ReferralID:              r.ID,
		PatientID:               r.PatientID,
		ReferringClinicianID:    r.ReferringClinicianID,
		ReferredToClinicianID:   r.ReferredToClinicianID,
		UrgencyLevel:            r.UrgencyLevel,
		Reason:                  r.Reason,
		ClinicalSummary:         r.ClinicalSummary,
		RequestedInvestigations: r.RequestedInvestigations,
		Status:                  r.Status,
	}
}

func fromRow(row []string) Referral {
	return Referral{
		ID:                      row[0],
		PatientID:               row[1],
		ReferringClinicianID:    row[2],
		ReferredToClinicianID:   row[3],
		ReferringFacilityID:     row[4],
		ReferredToFacilityID:    row[5],
		ReferralDate:            row[6],
		UrgencyLevel:            row[7],
		Reason:                  row[8],
		ClinicalSummary:         row[9],
		RequestedInvestigations: row[10],
		Status:                  row[11],
		AppointmentID:           row[12],
		Notes:                   row[13],
		CreatedDate:             row[14],
		LastUpdated:             row[15],
	}
}

// row converts the referral to its CSV row in header column order.
func (r Referral) row() []string {
	return []string{
		r.ID, r.PatientID, r.ReferringClinicianID, r.ReferredToClinicianID,
		r.ReferringFacilityID, r.ReferredToFacilityID, r.ReferralDate,
		r.UrgencyLevel, r.Reason, r.ClinicalSummary,
		r.RequestedInvestigations, r.Status, r.AppointmentID, r.Notes,
		r.CreatedDate, r.LastUpdated,
	}
}
