package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lims/lims/internal/catalog"
	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/staff"
)

// Probabilities and offsets for result expansion.
const (
	abnormalPct         = 20
	criticalOfAbnormal  = 10
	acknowledgedPct     = 80
	criticalOvershoot   = 0.5 // up to 50% beyond the critical bound
	notificationDelay   = 15 * time.Minute
	acknowledgeDelay    = 30 * time.Minute
	resultEntryFraction = 0.75 // results land at 75% of turnaround
)

// normalLexicon classifies SELECT values: a categorical result whose
// lowercased value contains one of these substrings is reported as normal.
var normalLexicon = []string{
	"negative", "normal", "clear", "yellow", "no growth", "absent",
}

const textPlaceholder = "See attached laboratory notes"

// expandTest fills results, validation, and critical-notification fields
// according to how far the test's status has progressed. forceCritical asks
// for a critical value on the first result item that can carry one; the
// return value reports whether that happened.
func (g *Generator) expandTest(t *OrderTest, def *catalog.TestDefinition, orderDate time.Time, gender string, forceCritical bool) bool {
	if !t.Status.AtLeast(StatusCompleted) {
		return false
	}

	t.Results = make(map[string]Result, len(def.ResultItems))
	forced := false
	for _, item := range def.ResultItems {
		force := forceCritical && !forced && item.ValueType == catalog.ValueNumeric
		res := g.generateResult(&item, gender, force)
		if force && res.Status.Critical() {
			forced = true
		}
		t.Results[item.Code] = res
		if !res.Status.Normal() {
			t.Flags = append(t.Flags, fmt.Sprintf("%s: %s", item.Code, res.Status))
		}
	}

	turnaround := time.Duration(def.TurnaroundHours) * time.Hour
	enteredAt := orderDate.Add(time.Duration(float64(turnaround) * resultEntryFraction))
	tech := g.staff.Pick(g.src, staff.RoleTechnician)
	t.EnteredAt = &enteredAt
	t.EnteredBy = &tech.ID

	if t.Status.AtLeast(StatusValidated) {
		validatedAt := orderDate.Add(turnaround)
		pathologist := g.staff.Pick(g.src, staff.RolePathologist)
		t.ResultValidatedAt = &validatedAt
		t.ValidatedBy = &pathologist.ID

		if t.HasCritical() {
			notify := g.staff.Pick(g.src, staff.RolePathologist)
			cn := &CriticalNotification{
				Sent:       true,
				NotifiedAt: enteredAt.Add(notificationDelay),
				NotifiedTo: notify.Name,
			}
			if random.Chance(g.src, acknowledgedPct) {
				ack := cn.NotifiedAt.Add(acknowledgeDelay)
				cn.AcknowledgedAt = &ack
			}
			t.Critical = cn
		}
	}
	return forced
}

func (g *Generator) generateResult(item *catalog.ResultItem, gender string, forceCritical bool) Result {
	switch item.ValueType {
	case catalog.ValueNumeric:
		return g.generateNumeric(item, gender, forceCritical)
	case catalog.ValueSelect:
		return g.generateSelect(item)
	default:
		return Result{Value: textPlaceholder, Status: ResultNormal}
	}
}

func (g *Generator) generateNumeric(item *catalog.ResultItem, gender string, forceCritical bool) Result {
	rr := item.RangeFor(gender)
	if rr == nil {
		return Result{Value: "0", Unit: item.Unit, Status: ResultNormal}
	}
	crit := item.CriticalRange
	if crit == nil {
		// Derive a notional critical band one full span beyond the range.
		crit = &catalog.ReferenceRange{Low: rr.Low - rr.Span(), High: rr.High + rr.Span()}
	}

	abnormal := forceCritical || random.Chance(g.src, abnormalPct)
	critical := abnormal && (forceCritical || random.Chance(g.src, criticalOfAbnormal))

	var value float64
	var status ResultStatus
	switch {
	case critical:
		highSide := crit.Low <= 0 || random.Chance(g.src, 50)
		if highSide {
			value = crit.High * (1 + g.src.Float64()*criticalOvershoot)
			status = ResultCriticalHigh
		} else {
			value = crit.Low * (1 - g.src.Float64()*criticalOvershoot)
			status = ResultCriticalLow
		}
	case abnormal:
		offset := math.Max(0.5, 0.3*rr.Span()) * (1 + g.src.Float64()*0.5)
		if random.Chance(g.src, 50) {
			value = rr.High + offset
			if value >= crit.High {
				value = (rr.High + crit.High) / 2
			}
			status = ResultHigh
		} else {
			value = rr.Low - offset
			if value <= crit.Low {
				value = (rr.Low + crit.Low) / 2
			}
			if value < 0 {
				value = rr.Low / 2
			}
			status = ResultLow
		}
	default:
		value = random.FloatBetween(g.src, rr.Low, rr.High)
		status = ResultNormal
	}

	return Result{
		Value:          formatValue(value, item.Decimals),
		Unit:           item.Unit,
		ReferenceRange: fmt.Sprintf("%s - %s", formatValue(rr.Low, item.Decimals), formatValue(rr.High, item.Decimals)),
		Status:         status,
	}
}

func (g *Generator) generateSelect(item *catalog.ResultItem) Result {
	value := random.PickOne(g.src, item.AllowedValues)
	status := ResultAbnormal
	lower := strings.ToLower(value)
	for _, word := range normalLexicon {
		if strings.Contains(lower, word) {
			status = ResultNormal
			break
		}
	}
	return Result{Value: value, Status: status}
}

func formatValue(v float64, decimals int) string {
	return strconv.FormatFloat(random.Round(v, decimals), 'f', decimals, 64)
}
