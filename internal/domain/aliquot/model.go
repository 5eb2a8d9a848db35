// Package aliquot splits collected samples into sub-units serving subsets of
// their tests.
package aliquot

import "time"

// Status is the aliquot lifecycle state.
type Status string

const (
	StatusAvailable Status = "available"
	StatusInUse     Status = "in-use"
	StatusConsumed  Status = "consumed"
	StatusStored    Status = "stored"
	StatusDisposed  Status = "disposed"
)

// Aliquot is one sub-portion of a collected sample.
// Invariants: RemainingVolume <= Volume; a consumed aliquot has
// RemainingVolume == 0.
type Aliquot struct {
	AliquotID        string     `json:"aliquotId"`
	SampleID         string     `json:"sampleId"`
	OrderID          string     `json:"orderId"`
	PatientID        string     `json:"patientId"`
	Sequence         int        `json:"sequence"`
	Volume           float64    `json:"volume"`
	RemainingVolume  float64    `json:"remainingVolume"`
	TestCodes        []string   `json:"testCodes"`
	UsedTestCodes    []string   `json:"usedTestCodes,omitempty"`
	Status           Status     `json:"status"`
	Purpose          *string    `json:"purpose,omitempty"`
	StorageLocation  *string    `json:"storageLocation,omitempty"`
	StorageCondition *string    `json:"storageCondition,omitempty"`
	CreatedBy        string     `json:"createdBy"`
	CreatedAt        time.Time  `json:"createdAt"`
	ConsumedAt       *time.Time `json:"consumedAt,omitempty"`
	ConsumedBy       *string    `json:"consumedBy,omitempty"`
	DisposedAt       *time.Time `json:"disposedAt,omitempty"`
	DisposedBy       *string    `json:"disposedBy,omitempty"`
}

// Stats summarizes one aliquot generation pass. The average is computed over
// the samples that actually entered the pass, so the denominator always
// matches the population that produced the aliquots.
type Stats struct {
	SamplesConsidered    int     `json:"samplesConsidered"`
	SamplesIncluded      int     `json:"samplesIncluded"`
	AliquotsCreated      int     `json:"aliquotsCreated"`
	AvgAliquotsPerSample float64 `json:"avgAliquotsPerSample"`
}
