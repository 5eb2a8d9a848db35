package aliquot

import (
	"math"
	"time"

	"github.com/lims/lims/internal/domain/order"
	"github.com/lims/lims/internal/domain/sample"
	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
)

const (
	// inclusionPct is the coin-flip gate deciding which collected samples
	// get an aliquot plan.
	inclusionPct = 60
	// deadVolumeML is lost per transfer when splitting a sample.
	deadVolumeML = 0.1
)

var statusWeights = []random.WeightedChoice[Status]{
	{Value: StatusConsumed, Weight: 50},
	{Value: StatusStored, Weight: 30},
	{Value: StatusDisposed, Weight: 20},
}

var purposes = []string{
	"reflex testing",
	"send-out referral",
	"archive",
	"QC repeat",
}

var storageConditions = []string{
	"-20C frozen",
	"2-8C refrigerated",
	"room temperature",
}

// Generator splits collected samples into aliquots.
type Generator struct {
	src   random.Source
	seq   *sequence.Allocator
	staff *staff.Registry
}

// NewGenerator returns an aliquot Generator.
func NewGenerator(src random.Source, seq *sequence.Allocator, reg *staff.Registry) *Generator {
	return &Generator{src: src, seq: seq, staff: reg}
}

// Generate builds aliquot plans for roughly 60% of the collected samples.
// Orders must be the sample stage's updated copies so per-test statuses line
// up with the back-filled sample references.
func (g *Generator) Generate(samples []*sample.Sample, orders []*order.Order) ([]*Aliquot, Stats) {
	byOrder := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		byOrder[o.OrderID] = o
	}

	var all []*Aliquot
	stats := Stats{}
	for _, s := range samples {
		if !s.Collected() {
			continue
		}
		stats.SamplesConsidered++
		if !random.Chance(g.src, inclusionPct) {
			continue
		}
		plan := g.planSample(s, byOrder[s.OrderID])
		if len(plan) == 0 {
			continue
		}
		stats.SamplesIncluded++
		stats.AliquotsCreated += len(plan)
		all = append(all, plan...)
	}
	if stats.SamplesIncluded > 0 {
		stats.AvgAliquotsPerSample = float64(stats.AliquotsCreated) / float64(stats.SamplesIncluded)
	}
	return all, stats
}

func (g *Generator) planSample(s *sample.Sample, o *order.Order) []*Aliquot {
	collected := s.Collection.Volume
	count := len(s.TestCodes)
	if n := int(math.Ceil(collected / 2)); n < count {
		count = n
	}
	if count <= 0 {
		return nil
	}

	// Each transfer loses dead volume; the rest splits evenly. Floored so
	// the split can never overdraw the sample.
	per := math.Floor((collected-deadVolumeML*float64(count))/float64(count)*100) / 100
	if per <= 0 {
		return nil
	}

	perChunk := (len(s.TestCodes) + count - 1) / count
	createdAt := s.Collection.CollectedAt.Add(time.Duration(random.IntBetween(g.src, 15, 60)) * time.Minute)
	tech := g.staff.Pick(g.src, staff.RoleTechnician)

	aliquots := make([]*Aliquot, 0, count)
	for i := 0; i < count; i++ {
		start := i * perChunk
		end := start + perChunk
		if end > len(s.TestCodes) {
			end = len(s.TestCodes)
		}
		codes := append([]string(nil), s.TestCodes[start:end]...)

		a := &Aliquot{
			AliquotID: g.seq.Next("ALQ", createdAt),
			SampleID:  s.SampleID,
			OrderID:   s.OrderID,
			PatientID: s.PatientID,
			Sequence:  i + 1,
			Volume:    per,
			TestCodes: codes,
			CreatedBy: tech.ID,
			CreatedAt: createdAt,
		}
		g.assignStatus(a, o, createdAt)
		if random.Chance(g.src, 30) {
			purpose := random.PickOne(g.src, purposes)
			a.Purpose = &purpose
		}
		aliquots = append(aliquots, a)
	}
	return aliquots
}

// assignStatus derives the aliquot lifecycle state from the order-test
// statuses of the codes it carries.
func (g *Generator) assignStatus(a *Aliquot, o *order.Order, createdAt time.Time) {
	allCompleted := true
	anyInProgress := false
	for _, code := range a.TestCodes {
		st := testStatus(o, code)
		if !st.AtLeast(order.StatusCompleted) {
			allCompleted = false
		}
		if st == order.StatusInProgress {
			anyInProgress = true
		}
	}

	switch {
	case allCompleted:
		a.Status = random.Weighted(g.src, statusWeights)
	case anyInProgress:
		a.Status = StatusInUse
	default:
		a.Status = StatusAvailable
	}

	switch a.Status {
	case StatusConsumed, StatusDisposed:
		a.RemainingVolume = 0
		at := createdAt.Add(time.Duration(random.IntBetween(g.src, 60, 240)) * time.Minute)
		by := g.staff.Pick(g.src, staff.RoleTechnician).ID
		a.ConsumedAt = &at
		a.ConsumedBy = &by
		if a.Status == StatusDisposed {
			a.DisposedAt = &at
			a.DisposedBy = &by
		}
	case StatusInUse:
		a.RemainingVolume = random.Round(a.Volume*0.5, 2)
		a.UsedTestCodes = append([]string(nil), a.TestCodes[:len(a.TestCodes)/2+len(a.TestCodes)%2]...)
	case StatusStored:
		a.RemainingVolume = a.Volume
		loc := g.storageLocation()
		cond := random.PickOne(g.src, storageConditions)
		a.StorageLocation = &loc
		a.StorageCondition = &cond
	default:
		a.RemainingVolume = a.Volume
	}
}

func testStatus(o *order.Order, code string) order.TestStatus {
	if o == nil {
		return order.StatusOrdered
	}
	for _, t := range o.Tests {
		if t.TestCode == code {
			return t.Status
		}
	}
	return order.StatusOrdered
}

func (g *Generator) storageLocation() string {
	rack := string(rune('A' + g.src.Intn(6)))
	return "Freezer " + rack + ", shelf " + string(rune('1'+g.src.Intn(4)))
}
