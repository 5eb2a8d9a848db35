package order

import (
	"sort"
	"time"

	"github.com/lims/lims/internal/catalog"
	"github.com/lims/lims/internal/domain/patient"
	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
)

// maxOrdersPerPatient caps how many orders any single patient receives before
// patient selection falls back to uniform choice.
const maxOrdersPerPatient = 5

// criticalForcePct is the fraction of orders flagged to force at least one
// critical result.
const criticalForcePct = 5

// Generator produces orders against a patient roster and the test catalog.
type Generator struct {
	src   random.Source
	seq   *sequence.Allocator
	cat   *catalog.Catalog
	staff *staff.Registry
	now   time.Time
}

// NewGenerator returns a Generator anchored at now.
func NewGenerator(src random.Source, seq *sequence.Allocator, cat *catalog.Catalog, reg *staff.Registry, now time.Time) *Generator {
	return &Generator{src: src, seq: seq, cat: cat, staff: reg, now: now}
}

// Generate produces count orders sorted by order date ascending.
func (g *Generator) Generate(patients []*patient.Patient, count int) []*Order {
	counts := make(map[string]int, len(patients))
	orders := make([]*Order, 0, count)
	for i := 0; i < count; i++ {
		p := g.pickPatient(patients, counts)
		counts[p.PatientID]++
		orders = append(orders, g.generateOne(p))
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.Before(orders[j].OrderDate)
	})
	return orders
}

// pickPatient prefers patients with fewer existing orders, weighting each
// candidate by its remaining capacity. Once every patient is saturated the
// cap is waived and choice becomes uniform.
func (g *Generator) pickPatient(patients []*patient.Patient, counts map[string]int) *patient.Patient {
	choices := make([]random.WeightedChoice[*patient.Patient], 0, len(patients))
	for _, p := range patients {
		if remaining := maxOrdersPerPatient - counts[p.PatientID]; remaining > 0 {
			choices = append(choices, random.WeightedChoice[*patient.Patient]{
				Value:  p,
				Weight: float64(remaining),
			})
		}
	}
	if len(choices) == 0 {
		return random.PickOne(g.src, patients)
	}
	return random.Weighted(g.src, choices)
}

func (g *Generator) generateOne(p *patient.Patient) *Order {
	cfg := random.Weighted(g.src, stateConfigs)

	orderDate := g.now.
		AddDate(0, 0, -random.IntBetween(g.src, 0, 29)).
		Add(-time.Duration(random.IntBetween(g.src, 0, 540)) * time.Minute)
	if orderDate.Before(p.RegistrationDate) {
		orderDate = p.RegistrationDate.Add(time.Hour)
	}

	numTests := random.Weighted(g.src, testCounts)
	codes := random.PickN(g.src, g.cat.Codes(), numTests)
	forceCritical := random.Chance(g.src, criticalForcePct)

	receptionist := g.staff.Pick(g.src, staff.RoleReceptionist)

	o := &Order{
		OrderID:       g.seq.Next("ORD", orderDate),
		PatientID:     p.PatientID,
		OrderDate:     orderDate,
		PaymentStatus: cfg.Payment,
		OverallStatus: cfg.Overall,
		Priority:      random.Weighted(g.src, priorities),
		CreatedBy:     receptionist.ID,
		CreatedAt:     orderDate,
		UpdatedBy:     receptionist.ID,
		UpdatedAt:     orderDate,
	}

	forcePending := forceCritical
	for i, code := range codes {
		def, ok := g.cat.Lookup(code)
		if !ok {
			continue
		}
		t := OrderTest{
			TestCode: def.Code,
			TestName: def.Name,
			Price:    def.Price,
			Status:   cfg.TestStatuses[i%len(cfg.TestStatuses)],
		}
		if g.expandTest(&t, def, orderDate, p.Gender, forcePending) {
			forcePending = false
		}
		o.TotalPrice += def.Price
		o.Tests = append(o.Tests, t)
	}

	g.attachLineage(o)

	// The latest result activity is the order's last touch.
	for _, t := range o.Tests {
		if t.ResultValidatedAt != nil && t.ResultValidatedAt.After(o.UpdatedAt) {
			o.UpdatedAt = *t.ResultValidatedAt
		} else if t.EnteredAt != nil && t.EnteredAt.After(o.UpdatedAt) {
			o.UpdatedAt = *t.EnteredAt
		}
	}
	return o
}

// attachLineage occasionally marks retest and reflex relationships between
// tests on the same order.
func (g *Generator) attachLineage(o *Order) {
	for i := range o.Tests {
		t := &o.Tests[i]
		if t.Status.AtLeast(StatusInProgress) && random.Chance(g.src, 4) {
			t.IsRetest = true
			reason := "repeat after QC failure on previous run"
			t.RetestReason = &reason
		}
	}
	if len(o.Tests) < 2 {
		return
	}
	for i := range o.Tests {
		t := &o.Tests[i]
		if len(t.Flags) == 0 || !random.Chance(g.src, 15) {
			continue
		}
		last := &o.Tests[len(o.Tests)-1]
		if last.TestCode != t.TestCode && last.ReflexFrom == nil {
			code := t.TestCode
			last.ReflexFrom = &code
		}
		return
	}
}
