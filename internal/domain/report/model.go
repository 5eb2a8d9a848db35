// Package report generates one delivery-ready report per order whose tests
// have all been validated or reported.
package report

import "time"

// Status is the report delivery state.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusViewed    Status = "viewed"
)

// DeliveryMethod is how a report reaches the patient or clinician.
type DeliveryMethod string

const (
	DeliveryEmail  DeliveryMethod = "email"
	DeliveryPortal DeliveryMethod = "portal"
	DeliveryPrint  DeliveryMethod = "print"
	DeliveryFax    DeliveryMethod = "fax"
)

// Report summarizes one fully validated order.
// Invariant: DeliveredAt <= ViewedAt whenever both are set; ViewedAt exists
// only for viewed reports.
type Report struct {
	ReportID        string           `json:"reportId"`
	OrderID         string           `json:"orderId"`
	PatientID       string           `json:"patientId"`
	PatientName     string           `json:"patientName"`
	TestCodes       []string         `json:"testCodes"`
	Status          Status           `json:"status"`
	DeliveryMethods []DeliveryMethod `json:"deliveryMethods"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	DeliveredAt     *time.Time       `json:"deliveredAt,omitempty"`
	ViewedAt        *time.Time       `json:"viewedAt,omitempty"`
	CreatedBy       string           `json:"createdBy"`
	CreatedAt       time.Time        `json:"createdAt"`
}
