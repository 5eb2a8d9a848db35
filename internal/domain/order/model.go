// Package order generates laboratory orders with per-test state, results,
// validation, and critical-value notifications.
package order

import "time"

// TestStatus is the canonical progression of a single ordered test.
type TestStatus string

const (
	StatusOrdered    TestStatus = "ordered"
	StatusCollected  TestStatus = "collected"
	StatusInProgress TestStatus = "in-progress"
	StatusCompleted  TestStatus = "completed"
	StatusValidated  TestStatus = "validated"
	StatusReported   TestStatus = "reported"
)

var progression = []TestStatus{
	StatusOrdered, StatusCollected, StatusInProgress,
	StatusCompleted, StatusValidated, StatusReported,
}

// Ordinal returns the position of s in the canonical progression, or -1 for
// an unknown status.
func (s TestStatus) Ordinal() int {
	for i, p := range progression {
		if p == s {
			return i
		}
	}
	return -1
}

// AtLeast reports whether s has reached the progression stage of other.
func (s TestStatus) AtLeast(other TestStatus) bool {
	return s.Ordinal() >= other.Ordinal()
}

// OverallStatus is the order-level aggregate status.
type OverallStatus string

const (
	OverallPending    OverallStatus = "pending"
	OverallInProgress OverallStatus = "in-progress"
	OverallCompleted  OverallStatus = "completed"
	OverallDelivered  OverallStatus = "delivered"
)

// PaymentStatus tracks how far payment has progressed.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Priority is the requested turnaround class.
type Priority string

const (
	PriorityRoutine Priority = "routine"
	PriorityUrgent  Priority = "urgent"
	PriorityStat    Priority = "stat"
)

// ResultStatus classifies a single parameter result.
type ResultStatus string

const (
	ResultNormal       ResultStatus = "normal"
	ResultHigh         ResultStatus = "high"
	ResultLow          ResultStatus = "low"
	ResultCriticalHigh ResultStatus = "critical-high"
	ResultCriticalLow  ResultStatus = "critical-low"
	ResultAbnormal     ResultStatus = "abnormal"
)

// Critical reports whether the result requires urgent notification.
func (s ResultStatus) Critical() bool {
	return s == ResultCriticalHigh || s == ResultCriticalLow
}

// Normal reports whether the result is within the reference range.
func (s ResultStatus) Normal() bool {
	return s == ResultNormal
}

// Result is one parameter result keyed by the catalog result-item code.
type Result struct {
	Value          string       `json:"value"`
	Unit           string       `json:"unit,omitempty"`
	ReferenceRange string       `json:"referenceRange,omitempty"`
	Status         ResultStatus `json:"status"`
}

// CriticalNotification records the urgent-notification trail for a critical
// result.
type CriticalNotification struct {
	Sent           bool       `json:"sent"`
	NotifiedAt     time.Time  `json:"notifiedAt"`
	NotifiedTo     string     `json:"notifiedTo"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
}

// OrderTest is one test on an order. Fields beyond the core set are populated
// progressively as Status advances; a test at "ordered" carries none of them,
// one at "reported" carries all that apply.
type OrderTest struct {
	TestCode          string                `json:"testCode"`
	TestName          string                `json:"testName"`
	Price             float64               `json:"price"`
	Status            TestStatus            `json:"status"`
	SampleID          *string               `json:"sampleId,omitempty"`
	Results           map[string]Result     `json:"results,omitempty"`
	Flags             []string              `json:"flags,omitempty"`
	EnteredAt         *time.Time            `json:"enteredAt,omitempty"`
	EnteredBy         *string               `json:"enteredBy,omitempty"`
	ResultValidatedAt *time.Time            `json:"resultValidatedAt,omitempty"`
	ValidatedBy       *string               `json:"validatedBy,omitempty"`
	Critical          *CriticalNotification `json:"criticalNotification,omitempty"`
	IsRetest          bool                  `json:"isRetest,omitempty"`
	RetestReason      *string               `json:"retestReason,omitempty"`
	ReflexFrom        *string               `json:"reflexFrom,omitempty"`
}

// HasCritical reports whether any populated result is critical.
func (t *OrderTest) HasCritical() bool {
	for _, r := range t.Results {
		if r.Status.Critical() {
			return true
		}
	}
	return false
}

// Order is a patient's requisition for one or more tests.
type Order struct {
	OrderID       string        `json:"orderId"`
	PatientID     string        `json:"patientId"`
	OrderDate     time.Time     `json:"orderDate"`
	Tests         []OrderTest   `json:"tests"`
	TotalPrice    float64       `json:"totalPrice"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OverallStatus OverallStatus `json:"overallStatus"`
	Priority      Priority      `json:"priority"`
	CreatedBy     string        `json:"createdBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedBy     string        `json:"updatedBy"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Reportable reports whether every test has been validated or reported, the
// precondition for generating a report.
func (o *Order) Reportable() bool {
	if len(o.Tests) == 0 {
		return false
	}
	for _, t := range o.Tests {
		if t.Status != StatusValidated && t.Status != StatusReported {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. The sample stage back-fills sample references
// into copies so the stage-input orders stay auditable.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Tests = make([]OrderTest, len(o.Tests))
	for i, t := range o.Tests {
		tc := t
		tc.SampleID = clonePtr(t.SampleID)
		tc.EnteredAt = clonePtr(t.EnteredAt)
		tc.EnteredBy = clonePtr(t.EnteredBy)
		tc.ResultValidatedAt = clonePtr(t.ResultValidatedAt)
		tc.ValidatedBy = clonePtr(t.ValidatedBy)
		tc.RetestReason = clonePtr(t.RetestReason)
		tc.ReflexFrom = clonePtr(t.ReflexFrom)
		if t.Results != nil {
			tc.Results = make(map[string]Result, len(t.Results))
			for k, v := range t.Results {
				tc.Results[k] = v
			}
		}
		if t.Flags != nil {
			tc.Flags = append([]string(nil), t.Flags...)
		}
		if t.Critical != nil {
			cn := *t.Critical
			cn.AcknowledgedAt = clonePtr(t.Critical.AcknowledgedAt)
			tc.Critical = &cn
		}
		cp.Tests[i] = tc
	}
	return &cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
