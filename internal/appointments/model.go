// Package appointments persists appointment records and enforces the
// booking business rules (no past-dated bookings, no clinician
// double-booking) before anything reaches the file.
package appointments

import (
	"strconv"
	"time"

	"github.com/brightpath-health/clinicstore/internal/records"
)

const fieldCount = 13

// StatusScheduled and StatusCancelled are the two statuses the core acts
// on; the column itself is free text.
const (
	StatusScheduled = "Scheduled"
	StatusCancelled = "Cancelled"
)

// Header is the appointments file header row.
var Header = []string{
	"appointment_id", "patient_id", "clinician_id", "facility_id",
	"appointment_date", "appointment_time", "duration_minutes",
	"appointment_type", "status", "reason_for_visit", "notes",
	"created_date", "last_modified",
}

// Appointment is one appointments-file record. Date is YYYY-MM-DD, Time is
// HH:MM; both round-trip exactly through the file.
type Appointment struct {
	ID              string `json:"id"`
	PatientID       string `json:"patient_id"`
	ClinicianID     string `json:"clinician_id"`
	FacilityID      string `json:"facility_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes string `json:"duration_minutes"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
	CreatedDate     string `json:"created_date"`
	LastModified    string `json:"last_modified"`
}

// Validate checks candidate shape: required fields, strict date/time
// formats, positive duration. Notes may be empty.
func (a Appointment) Validate() error {
	if a.PatientID == "" || a.ClinicianID == "" || a.FacilityID == "" ||
		a.Date == "" || a.Time == "" || a.DurationMinutes == "" ||
		a.Type == "" || a.Reason == "" {
		return records.Validationf("missing required appointment fields (notes can be empty)")
	}
	if _, _, err := a.schedule(); err != nil {
		return err
	}
	duration, err := strconv.Atoi(a.DurationMinutes)
	if err != nil {
		return records.Validationf("invalid duration %q: must be a whole number of minutes", a.DurationMinutes)
	}
	if duration <= 0 {
		return records.Validationf("duration must be positive, got %d", duration)
	}
	return nil
}

// schedule parses the candidate's date and wall-clock time.
func (a Appointment) schedule() (time.Time, time.Time, error) {
	date, err := records.ParseDate(a.Date)
	if err != nil {
		return time.Time{}, time.Time{}, records.Validationf("appointment date: %v", err)
	}
	clock, err := records.ParseClock(a.Time)
	if err != nil {
		return time.Time{}, time.Time{}, records.Validationf("appointment time: %v", err)
	}
	return date, clock, nil
}

func fromRow(r []string) Appointment {
	return Appointment{
		ID:              r[0],
		PatientID:       r[1],
		ClinicianID:     r[2],
		FacilityID:      r[3],
		Date:            r[4],
		Time:            r[5],
		DurationMinutes: r[6],
		Type:            r[7],
		Status:          r[8],
		Reason:          r[9],
		Notes:           r[10],
		CreatedDate:     r[11],
		LastModified:    r[12],
	}
}

// row converts the appointment to its CSV row in header column order.
func (a Appointment) row() []string {
	return []string{
		a.ID, a.PatientID, a.ClinicianID, a.FacilityID,
		a.Date, a.Time, a.DurationMinutes,
		a.Type, a.Status, a.Reason, a.Notes,
		a.CreatedDate, a.LastModified,
	}
}
