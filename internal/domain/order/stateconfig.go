package order

import "github.com/lims/lims/internal/platform/random"

// stateConfig bundles an internally consistent trio of overall status,
// per-test statuses, and payment status. Orders draw one configuration as a
// unit so impossible combinations (a delivered order with ordered tests)
// cannot occur. When TestStatuses lists more than one entry the order's tests
// are round-robined across them.
type stateConfig struct {
	Overall      OverallStatus
	TestStatuses []TestStatus
	Payment      PaymentStatus
}

var stateConfigs = []random.WeightedChoice[stateConfig]{
	{Value: stateConfig{OverallPending, []TestStatus{StatusOrdered}, PaymentPending}, Weight: 12},
	{Value: stateConfig{OverallPending, []TestStatus{StatusOrdered}, PaymentPaid}, Weight: 5},
	{Value: stateConfig{OverallInProgress, []TestStatus{StatusCollected}, PaymentPartial}, Weight: 10},
	{Value: stateConfig{OverallInProgress, []TestStatus{StatusCollected, StatusInProgress}, PaymentPaid}, Weight: 10},
	{Value: stateConfig{OverallInProgress, []TestStatus{StatusInProgress}, PaymentPaid}, Weight: 8},
	{Value: stateConfig{OverallInProgress, []TestStatus{StatusInProgress, StatusCompleted}, PaymentPartial}, Weight: 7},
	{Value: stateConfig{OverallCompleted, []TestStatus{StatusCompleted}, PaymentPaid}, Weight: 8},
	{Value: stateConfig{OverallCompleted, []TestStatus{StatusValidated}, PaymentPaid}, Weight: 15},
	{Value: stateConfig{OverallCompleted, []TestStatus{StatusValidated}, PaymentPartial}, Weight: 5},
	{Value: stateConfig{OverallDelivered, []TestStatus{StatusReported}, PaymentPaid}, Weight: 13},
	{Value: stateConfig{OverallDelivered, []TestStatus{StatusValidated, StatusReported}, PaymentPaid}, Weight: 7},
}

var priorities = []random.WeightedChoice[Priority]{
	{Value: PriorityRoutine, Weight: 70},
	{Value: PriorityUrgent, Weight: 20},
	{Value: PriorityStat, Weight: 10},
}

var testCounts = []random.WeightedChoice[int]{
	{Value: 1, Weight: 30},
	{Value: 2, Weight: 30},
	{Value: 3, Weight: 20},
	{Value: 4, Weight: 12},
	{Value: 5, Weight: 8},
}
