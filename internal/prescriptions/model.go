// Package prescriptions persists prescription records in the prescriptions
// CSV file.
package prescriptions

import "github.com/brightpath-health/clinicstore/internal/records"

const fieldCount = 15

const (
	// StatusIssued is the default status stamped on creation.
	StatusIssued = "Issued"
	// StatusCollected is set by MarkCollected along with collection_date.
	StatusCollected = "Collected"
)

// Header is the prescriptions file header row.
var Header = []string{
	"prescription_id", "patient_id", "clinician_id", "appointment_id",
	"prescription_date", "medication_name", "dosage", "frequency",
	"duration_days", "quantity", "instructions", "pharmacy_name",
	"status", "issue_date", "collection_date",
}

// Prescription is one prescriptions-file record. AppointmentID and
// CollectionDate may be empty.
type Prescription struct {
	ID               string `json:"id"`
	PatientID        string `json:"patient_id"`
	ClinicianID      string `json:"clinician_id"`
	AppointmentID    string `json:"appointment_id"`
	PrescriptionDate string `json:"prescription_date"`
	MedicationName   string `json:"medication_name"`
	Dosage           string `json:"dosage"`
	Frequency        string `json:"frequency"`
	DurationDays     string `json:"duration_days"`
	Quantity         string `json:"quantity"`
	Instructions     string `json:"instructions"`
	PharmacyName     string `json:"pharmacy_name"`
	Status           string `json:"status"`
	IssueDate        string `json:"issue_date"`
	CollectionDate   string `json:"collection_date"`
}

// Validate checks the candidate's required fields before persistence.
func (p Prescription) Validate() error {
	if p.PatientID == "" || p.ClinicianID == "" || p.MedicationName == "" {
		return records.Validationf("prescription patient id, clinician id and medication name are required")
	}
	if p.PrescriptionDate != "" {
		if _, err := records.ParseDate(p.PrescriptionDate); err != nil {
			return records.Validationf("prescription date: %v", err)
		}
	}
	return nil
}

func fromRow(r []string) Prescription {
	return Prescription{
		ID:               r[0],
		PatientID:        r[1],
		ClinicianID:      r[2],
		AppointmentID:    r[3],
		PrescriptionDate: r[4],
		MedicationName:   r[5],
		Dosage:           r[6],
		Frequency:        r[7],
		DurationDays:     r[8],
		Quantity:         r[9],
		Instructions:     r[10],
		PharmacyName:     r[11],
		Status:           r[12],
		IssueDate:        r[13],
		CollectionDate:   r[14],
	}
}

// row converts the prescription to its CSV row in header column order.
func (p Prescription) row() []string {
	return []string{
		p.ID, p.PatientID, p.ClinicianID, p.AppointmentID,
		p.PrescriptionDate, p.MedicationName, p.Dosage, p.Frequency,
		p.DurationDays, p.Quantity, p.Instructions, p.PharmacyName,
		p.Status, p.IssueDate, p.CollectionDate,
	}
}
