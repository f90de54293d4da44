package appointments

import (
	"strings"
	"time"

	"github.com/brightpath-health/clinicstore/internal/records"
)

// Validator holds the pure booking rules. Both checks are functions of
// their inputs only and perform no I/O; the clock is injectable so tests
// can pin "now".
type Validator struct {
	now func() time.Time
}

// NewValidator creates a validator using the wall clock.
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// NewValidatorAt creates a validator with a fixed clock for tests.
func NewValidatorAt(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// NotInPast rejects a date strictly before today, or a time already passed
// when the date is today. Future dates, and today with a time not yet
// reached, are accepted.
func (v *Validator) NotInPast(date, clock time.Time) error {
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	candidate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if candidate.Before(today) {
		return records.Validationf("appointment date cannot be in the past")
	}
	if candidate.Equal(today) {
		candidateSecs := clock.Hour()*3600 + clock.Minute()*60
		nowSecs := now.Hour()*3600 + now.Minute()*60 + now.Second()
		if candidateSecs < nowSecs {
			return records.Validationf("appointment time cannot be in the past (today)")
		}
	}
	return nil
}

// NoDoubleBooking rejects the candidate when another appointment shares its
// clinician, date and time and is not cancelled. The record matching the
// candidate's own id is excluded so an edit never conflicts with itself.
func (v *Validator) NoDoubleBooking(existing []Appointment, candidate Appointment) error {
	for _, a := range existing {
		if candidate.ID != "" && a.ID == candidate.ID {
			continue
		}
		if a.ClinicianID == candidate.ClinicianID &&
			a.Date == candidate.Date &&
			a.Time == candidate.Time &&
			!strings.EqualFold(a.Status, StatusCancelled) {
			return records.Validationf("clinician %s is already booked at %s %s",
				candidate.ClinicianID, candidate.Date, candidate.Time)
		}
	}
	return nil
}
