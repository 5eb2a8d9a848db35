package report

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lims/lims/internal/domain/order"
	"github.com/lims/lims/internal/domain/patient"
	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
)

var deliveredWeights = []random.WeightedChoice[Status]{
	{Value: StatusDelivered, Weight: 50},
	{Value: StatusViewed, Weight: 30},
	{Value: StatusSent, Weight: 20},
}

var undeliveredWeights = []random.WeightedChoice[Status]{
	{Value: StatusGenerated, Weight: 60},
	{Value: StatusSent, Weight: 40},
}

var methods = []DeliveryMethod{
	DeliveryEmail, DeliveryPortal, DeliveryPrint, DeliveryFax,
}

// Generator produces reports for fully validated orders.
type Generator struct {
	src    random.Source
	seq    *sequence.Allocator
	staff  *staff.Registry
	logger zerolog.Logger
}

// NewGenerator returns a report Generator.
func NewGenerator(src random.Source, seq *sequence.Allocator, reg *staff.Registry, logger zerolog.Logger) *Generator {
	return &Generator{src: src, seq: seq, staff: reg, logger: logger}
}

// Generate produces one report per order whose every test is validated or
// reported. An order whose patient cannot be resolved is skipped with a
// warning; generation continues.
func (g *Generator) Generate(orders []*order.Order, patients []*patient.Patient) []*Report {
	byID := make(map[string]*patient.Patient, len(patients))
	for _, p := range patients {
		byID[p.PatientID] = p
	}

	var reports []*Report
	for _, o := range orders {
		if !o.Reportable() {
			continue
		}
		p, ok := byID[o.PatientID]
		if !ok {
			g.logger.Warn().
				Str("orderId", o.OrderID).
				Str("patientId", o.PatientID).
				Msg("skipping report: patient not found")
			continue
		}
		reports = append(reports, g.generateOne(o, p))
	}
	return reports
}

func (g *Generator) generateOne(o *order.Order, p *patient.Patient) *Report {
	generatedAt := latestValidation(o).Add(time.Duration(random.IntBetween(g.src, 60, 240)) * time.Minute)

	var status Status
	if o.OverallStatus == order.OverallDelivered {
		status = random.Weighted(g.src, deliveredWeights)
	} else {
		status = random.Weighted(g.src, undeliveredWeights)
	}

	delivery := random.PickN(g.src, methods, 1)
	if random.Chance(g.src, 40) {
		delivery = random.PickN(g.src, methods, 2)
	}

	codes := make([]string, len(o.Tests))
	for i, t := range o.Tests {
		codes[i] = t.TestCode
	}

	pathologist := g.staff.Pick(g.src, staff.RolePathologist)
	r := &Report{
		ReportID:        g.seq.Next("RPT", generatedAt),
		OrderID:         o.OrderID,
		PatientID:       o.PatientID,
		PatientName:     p.FirstName + " " + p.LastName,
		TestCodes:       codes,
		Status:          status,
		DeliveryMethods: delivery,
		GeneratedAt:     generatedAt,
		CreatedBy:       pathologist.ID,
		CreatedAt:       generatedAt,
	}

	if status == StatusDelivered || status == StatusViewed {
		deliveredAt := generatedAt.Add(time.Duration(random.IntBetween(g.src, 10, 120)) * time.Minute)
		r.DeliveredAt = &deliveredAt
		if status == StatusViewed {
			viewedAt := deliveredAt.Add(time.Duration(random.IntBetween(g.src, 5, 720)) * time.Minute)
			r.ViewedAt = &viewedAt
		}
	}
	return r
}

// latestValidation returns the most recent test validation time, or the
// order date when no test carries one.
func latestValidation(o *order.Order) time.Time {
	latest := o.OrderDate
	for _, t := range o.Tests {
		if t.ResultValidatedAt != nil && t.ResultValidatedAt.After(latest) {
			latest = *t.ResultValidatedAt
		}
	}
	return latest
}
