// Package patients persists patient records in the patients CSV file.
package patients

import "github.com/brightpath-health/clinicstore/internal/records"

// fieldCount is the number of columns in the patients file; shorter rows are
// treated as malformed and skipped on load.
const fieldCount = 14

// Header is the patients file header row.
var Header = []string{
	"patient_id", "first_name", "last_name", "date_of_birth", "nhs_number",
	"gender", "phone_number", "email", "address", "postcode",
	"emergency_contact_name", "emergency_contact_phone", "registration_date",
	"gp_surgery_id",
}

// Patient is one patients-file record. All fields are stored as text; the
// ID is assigned by the repository and immutable afterwards.
type Patient struct {
	ID                    string `json:"id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	DateOfBirth           string `json:"date_of_birth"`
	NHSNumber             string `json:"nhs_number"`
	Gender                string `json:"gender"`
	PhoneNumber           string `json:"phone_number"`
	Email                 string `json:"email"`
	Address               string `json:"address"`
	Postcode              string `json:"postcode"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	RegistrationDate      string `json:"registration_date"`
	GPSurgeryID           string `json:"gp_surgery_id"`
}

// Validate checks the candidate's required fields before persistence.
func (p Patient) Validate() error {
	if p.FirstName == "" || p.LastName == "" {
		return records.Validationf("patient first name and last name are required")
	}
	if p.DateOfBirth != "" {
		if _, err := records.ParseDate(p.DateOfBirth); err != nil {
			return records.Validationf("date of birth: %v", err)
		}
	}
	return nil
}

func fromRow(r []string) Patient {
	return Patient{
		ID:                    r[0],
		FirstName:             r[1],
		LastName:              r[2],
		DateOfBirth:           r[3],
		NHSNumber:             r[4],
		Gender:                r[5],
		PhoneNumber:           r[6],
		Email:                 r[7],
		Address:               r[8],
		Postcode:              r[9],
		EmergencyContactName:  r[10],
		EmergencyContactPhone: r[11],
		RegistrationDate:      r[12],
		GPSurgeryID:           r[13],
	}
}

// row converts the patient to its CSV row in header column order.
func (p Patient) row() []string {
	return []string{
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.NHSNumber,
		p.Gender, p.PhoneNumber, p.Email, p.Address, p.Postcode,
		p.EmergencyContactName, p.EmergencyContactPhone, p.RegistrationDate,
		p.GPSurgeryID,
	}
}
