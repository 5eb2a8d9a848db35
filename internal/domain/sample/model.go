// Package sample generates the physical specimens backing each order's tests
// and back-fills sample references into order copies.
package sample

import "time"

// Status discriminates the pending/collected union. A pending sample has no
// Collection; a collected one always does.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCollected Status = "collected"
)

// Collection holds the fields that only exist once a sample has been drawn.
// Invariant: Volume >= the sample's RequiredVolume.
type Collection struct {
	CollectedAt     time.Time `json:"collectedAt"`
	CollectedBy     string    `json:"collectedBy"`
	Volume          float64   `json:"volume"`
	ContainerType   string    `json:"containerType"`
	ContainerColor  string    `json:"containerColor"`
	Notes           *string   `json:"notes,omitempty"`
	RemainingVolume *float64  `json:"remainingVolume,omitempty"`
}

// Sample is one physical specimen serving one or more tests on a single
// order.
type Sample struct {
	SampleID       string      `json:"sampleId"`
	OrderID        string      `json:"orderId"`
	PatientID      string      `json:"patientId"`
	SampleType     string      `json:"sampleType"`
	TestCodes      []string    `json:"testCodes"`
	RequiredVolume float64     `json:"requiredVolume"`
	Status         Status      `json:"status"`
	Collection     *Collection `json:"collection,omitempty"`
	CreatedBy      string      `json:"createdBy"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedBy      string      `json:"updatedBy"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Collected reports whether the sample carries collection data.
func (s *Sample) Collected() bool {
	return s.Status == StatusCollected && s.Collection != nil
}
