package sample

import (
	"sort"
	"strings"
	"time"

	"github.com/lims/lims/internal/catalog"
	"github.com/lims/lims/internal/domain/order"
	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
)

var collectionNotes = []string{
	"slightly hemolyzed, acceptable for analysis",
	"difficult draw, second attempt",
	"patient fasting confirmed",
	"collected from left antecubital site",
	"slightly lipemic",
}

// Generator produces samples from orders and the catalog.
type Generator struct {
	src   random.Source
	seq   *sequence.Allocator
	cat   *catalog.Catalog
	staff *staff.Registry
}

// NewGenerator returns a sample Generator.
func NewGenerator(src random.Source, seq *sequence.Allocator, cat *catalog.Catalog, reg *staff.Registry) *Generator {
	return &Generator{src: src, seq: seq, cat: cat, staff: reg}
}

// testGroup is one physical sample's worth of tests: same mapped sample type
// and the same set of container colors.
type testGroup struct {
	key        string
	sampleType string
	container  catalog.Container
	codes      []string
	required   float64
}

// Generate produces one sample per test group of every order and returns the
// samples along with deep copies of the orders whose tests carry the
// back-filled sample references. The input orders are never mutated.
func (g *Generator) Generate(orders []*order.Order) ([]*Sample, []*order.Order) {
	samples := make([]*Sample, 0, len(orders))
	updated := make([]*order.Order, len(orders))

	for i, o := range orders {
		cp := o.Clone()
		updated[i] = cp

		anyCollected := false
		allOrdered := true
		for _, t := range cp.Tests {
			if t.Status.AtLeast(order.StatusCollected) {
				anyCollected = true
			}
			if t.Status != order.StatusOrdered {
				allOrdered = false
			}
		}
		if !anyCollected && !allOrdered {
			continue
		}

		for _, grp := range g.groupTests(cp) {
			var s *Sample
			if anyCollected {
				s = g.collectedSample(cp, grp)
			} else {
				s = g.pendingSample(cp, grp)
			}
			samples = append(samples, s)

			for ti := range cp.Tests {
				for _, code := range grp.codes {
					if cp.Tests[ti].TestCode == code {
						id := s.SampleID
						cp.Tests[ti].SampleID = &id
					}
				}
			}
		}
	}
	return samples, updated
}

// groupTests buckets an order's tests by (sample type, sorted container
// colors). Group order follows first appearance so output is deterministic.
func (g *Generator) groupTests(o *order.Order) []*testGroup {
	var groups []*testGroup
	index := make(map[string]*testGroup)

	for _, t := range o.Tests {
		def, ok := g.cat.Lookup(t.TestCode)
		if !ok {
			continue
		}
		colors := make([]string, len(def.Containers))
		for i, c := range def.Containers {
			colors[i] = c.Color
		}
		sort.Strings(colors)
		key := def.SampleType + "|" + strings.Join(colors, ",")

		grp, ok := index[key]
		if !ok {
			grp = &testGroup{
				key:        key,
				sampleType: def.SampleType,
				container:  def.Containers[0],
			}
			index[key] = grp
			groups = append(groups, grp)
		}
		grp.codes = append(grp.codes, t.TestCode)
		grp.required += def.MinVolumeML
	}
	return groups
}

func (g *Generator) collectedSample(o *order.Order, grp *testGroup) *Sample {
	collectedAt := o.OrderDate.Add(time.Duration(random.IntBetween(g.src, 30, 180)) * time.Minute)
	volume := random.Round(grp.required+random.FloatBetween(g.src, 0.5, 2.0), 1)
	phleb := g.staff.Pick(g.src, staff.RolePhlebotomist)

	col := &Collection{
		CollectedAt:    collectedAt,
		CollectedBy:    phleb.ID,
		Volume:         volume,
		ContainerType:  grp.container.Type,
		ContainerColor: grp.container.Color,
	}
	if random.Chance(g.src, 20) {
		note := random.PickOne(g.src, collectionNotes)
		col.Notes = &note
	}
	if volume > 2 && random.Chance(g.src, 30) {
		remaining := random.Round(volume*random.FloatBetween(g.src, 0.1, 0.4), 1)
		col.RemainingVolume = &remaining
	}

	return &Sample{
		SampleID:       g.seq.Next("SMP", collectedAt),
		OrderID:        o.OrderID,
		PatientID:      o.PatientID,
		SampleType:     grp.sampleType,
		TestCodes:      append([]string(nil), grp.codes...),
		RequiredVolume: random.Round(grp.required, 1),
		Status:         StatusCollected,
		Collection:     col,
		CreatedBy:      phleb.ID,
		CreatedAt:      collectedAt,
		UpdatedBy:      phleb.ID,
		UpdatedAt:      collectedAt,
	}
}

func (g *Generator) pendingSample(o *order.Order, grp *testGroup) *Sample {
	receptionist := g.staff.Pick(g.src, staff.RoleReceptionist)
	return &Sample{
		SampleID:       g.seq.Next("SMP", o.OrderDate),
		OrderID:        o.OrderID,
		PatientID:      o.PatientID,
		SampleType:     grp.sampleType,
		TestCodes:      append([]string(nil), grp.codes...),
		RequiredVolume: random.Round(grp.required, 1),
		Status:         StatusPending,
		CreatedBy:      receptionist.ID,
		CreatedAt:      o.OrderDate,
		UpdatedBy:      receptionist.ID,
		UpdatedAt:      o.OrderDate,
	}
}
