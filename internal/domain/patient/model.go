// Package patient generates the synthetic patient roster the rest of the
// corpus hangs off.
package patient

import "time"

// Address is a postal address.
type Address struct {
	Line       string `json:"line"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// EmergencyContact is the person to notify.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// InsuranceStatus describes whether an affiliation window encloses the
// generation clock.
type InsuranceStatus string

const (
	InsuranceActive  InsuranceStatus = "active"
	InsuranceExpired InsuranceStatus = "expired"
)

// Insurance is an optional affiliation window with a duration class.
type Insurance struct {
	Status        InsuranceStatus `json:"status"`
	Provider      string          `json:"provider"`
	PolicyNumber  string          `json:"policyNumber"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	DurationClass string          `json:"durationClass"`
}

// History is the medical history attached to a patient.
type History struct {
	ChronicConditions []string `json:"chronicConditions"`
	Medications       []string `json:"medications"`
	Allergies         []string `json:"allergies"`
	Smoker            bool     `json:"smoker"`
	AlcoholUse        bool     `json:"alcoholUse"`
}

// Patient is created once by the generator and never mutated afterward.
type Patient struct {
	PatientID        string           `json:"patientId"`
	MRN              string           `json:"mrn"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Gender           string           `json:"gender"`
	BirthDate        time.Time        `json:"birthDate"`
	Age              int              `json:"age"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Address          Address          `json:"address"`
	Insurance        *Insurance       `json:"insurance,omitempty"`
	History          History          `json:"history"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	RegistrationDate time.Time        `json:"registrationDate"`
	CreatedBy        string           `json:"createdBy"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedBy        string           `json:"updatedBy"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}
