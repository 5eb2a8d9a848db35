package aliquot

import (
	"math"
	"testing"
	"time"

	"github.com/lims/lims/internal/catalog"
	"github.com/lims/lims/internal/domain/order"
	"github.com/lims/lims/internal/domain/patient"
	"github.com/lims/lims/internal/domain/sample"
	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
)

var testClock = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func testCorpus(t *testing.T, seed int64) (*Generator, []*sample.Sample, []*order.Order) {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	src := random.New(seed)
	seq := sequence.New()
	reg := staff.NewRegistry()
	patients := patient.NewGenerator(src, seq, reg, testClock).Generate(20)
	orders := order.NewGenerator(src, seq, cat, reg, testClock).Generate(patients, 80)
	samples, updated := sample.NewGenerator(src, seq, cat, reg).Generate(orders)
	return NewGenerator(src, seq, reg), samples, updated
}

func TestGenerate_VolumeConservation(t *testing.T) {
	g, samples, orders := testCorpus(t, 42)
	aliquots, _ := g.Generate(samples, orders)

	bySample := map[string]*sample.Sample{}
	for _, s := range samples {
		bySample[s.SampleID] = s
	}
	totals := map[string]float64{}
	counts := map[string]int{}
	for _, a := range aliquots {
		totals[a.SampleID] += a.Volume
		counts[a.SampleID]++
	}
	for id, total := range totals {
		s := bySample[id]
		if s == nil {
			t.Fatalf("aliquot references unknown sample %s", id)
		}
		budget := s.Collection.Volume - deadVolumeML*float64(counts[id])
		if total > budget+1e-9 {
			t.Errorf("sample %s: aliquot volumes %.2f exceed budget %.2f", id, total, budget)
		}
	}
}

func TestGenerate_CountBoundedByTestsAndVolume(t *testing.T) {
	g, samples, orders := testCorpus(t, 1)
	aliquots, _ := g.Generate(samples, orders)

	bySample := map[string]*sample.Sample{}
	for _, s := range samples {
		bySample[s.SampleID] = s
	}
	counts := map[string]int{}
	for _, a := range aliquots {
		counts[a.SampleID]++
	}
	for id, n := range counts {
		s := bySample[id]
		limit := len(s.TestCodes)
		if v := int(math.Ceil(s.Collection.Volume / 2)); v < limit {
			limit = v
		}
		if n > limit {
			t.Errorf("sample %s: %d aliquots, limit %d", id, n, limit)
		}
	}
}

func TestGenerate_SequenceAndCodeCoverage(t *testing.T) {
	g, samples, orders := testCorpus(t, 2)
	aliquots, _ := g.Generate(samples, orders)

	bySample := map[string][]*Aliquot{}
	for _, a := range aliquots {
		bySample[a.SampleID] = append(bySample[a.SampleID], a)
	}
	sampleCodes := map[string][]string{}
	for _, s := range samples {
		sampleCodes[s.SampleID] = s.TestCodes
	}

	for id, group := range bySample {
		var covered []string
		for i, a := range group {
			if a.Sequence != i+1 {
				t.Errorf("sample %s aliquot %d has sequence %d", id, i, a.Sequence)
			}
			if len(a.TestCodes) == 0 {
				t.Errorf("sample %s aliquot %d carries no test codes", id, a.Sequence)
			}
			covered = append(covered, a.TestCodes...)
		}
		// Concatenated aliquot codes must reproduce the sample's codes
		// in order with no gaps or overlaps.
		want := sampleCodes[id]
		if len(covered) != len(want) {
			t.Errorf("sample %s: aliquots cover %d codes, sample has %d", id, len(covered), len(want))
			continue
		}
		for i := range want {
			if covered[i] != want[i] {
				t.Errorf("sample %s: code %d is %s, want %s", id, i, covered[i], want[i])
			}
		}
	}
}

func TestGenerate_StatusFields(t *testing.T) {
	g, samples, orders := testCorpus(t, 3)
	aliquots, _ := g.Generate(samples, orders)

	for _, a := range aliquots {
		switch a.Status {
		case StatusConsumed, StatusDisposed:
			if a.RemainingVolume != 0 {
				t.Errorf("aliquot %s %s with remaining %.2f", a.AliquotID, a.Status, a.RemainingVolume)
			}
			if a.ConsumedAt == nil || a.ConsumedBy == nil {
				t.Errorf("aliquot %s %s missing consumption audit", a.AliquotID, a.Status)
			}
			if a.Status == StatusDisposed && (a.DisposedAt == nil || a.DisposedBy == nil) {
				t.Errorf("aliquot %s disposed without disposal audit", a.AliquotID)
			}
		case StatusInUse:
			if a.RemainingVolume >= a.Volume || a.RemainingVolume <= 0 {
				t.Errorf("aliquot %s in-use remaining %.2f outside (0, %.2f)", a.AliquotID, a.RemainingVolume, a.Volume)
			}
			if len(a.UsedTestCodes) == 0 {
				t.Errorf("aliquot %s in-use with no used codes", a.AliquotID)
			}
		case StatusStored:
			if a.StorageLocation == nil || a.StorageCondition == nil {
				t.Errorf("aliquot %s stored without location", a.AliquotID)
			}
			if a.RemainingVolume != a.Volume {
				t.Errorf("aliquot %s stored but partially drawn", a.AliquotID)
			}
		case StatusAvailable:
			if a.RemainingVolume != a.Volume {
				t.Errorf("aliquot %s available but partially drawn", a.AliquotID)
			}
		}
		if a.ConsumedAt != nil && !a.ConsumedAt.After(a.CreatedAt) {
			t.Errorf("aliquot %s consumed before creation", a.AliquotID)
		}
	}
}

func TestGenerate_StatsDenominator(t *testing.T) {
	g, samples, orders := testCorpus(t, 4)
	aliquots, stats := g.Generate(samples, orders)

	if stats.AliquotsCreated != len(aliquots) {
		t.Errorf("stats count %d != %d aliquots", stats.AliquotsCreated, len(aliquots))
	}
	if stats.SamplesIncluded > stats.SamplesConsidered {
		t.Errorf("included %d exceeds considered %d", stats.SamplesIncluded, stats.SamplesConsidered)
	}
	if stats.SamplesIncluded > 0 {
		want := float64(stats.AliquotsCreated) / float64(stats.SamplesIncluded)
		if stats.AvgAliquotsPerSample != want {
			t.Errorf("avg %.3f != %.3f", stats.AvgAliquotsPerSample, want)
		}
	} else if stats.AvgAliquotsPerSample != 0 {
		t.Errorf("avg %.3f with no included samples", stats.AvgAliquotsPerSample)
	}

	collected := 0
	for _, s := range samples {
		if s.Collected() {
			collected++
		}
	}
	if stats.SamplesConsidered != collected {
		t.Errorf("considered %d != %d collected samples", stats.SamplesConsidered, collected)
	}
}
