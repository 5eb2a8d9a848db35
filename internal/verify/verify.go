// Package verify checks cross-entity referential integrity over a generated
// corpus. It is a pure check: it collects violations and repairs nothing.
package verify

import (
	"fmt"

	"github.com/lims/lims/internal/catalog"
	"github.com/lims/lims/internal/domain/aliquot"
	"github.com/lims/lims/internal/domain/order"
	"github.com/lims/lims/internal/domain/patient"
	"github.com/lims/lims/internal/domain/report"
	"github.com/lims/lims/internal/domain/sample"
)

// Result is the outcome of a verification pass. Errors are referential
// violations that invalidate the corpus; warnings are semantic oddities that
// do not.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Corpus scans every foreign-key field of every entity against the sibling
// collections produced in the same run. It never panics.
func Corpus(
	patients []*patient.Patient,
	orders []*order.Order,
	samples []*sample.Sample,
	aliquots []*aliquot.Aliquot,
	reports []*report.Report,
	cat *catalog.Catalog,
) Result {
	patientIDs := make(map[string]bool, len(patients))
	for _, p := range patients {
		patientIDs[p.PatientID] = true
	}
	orderIDs := make(map[string]bool, len(orders))
	for _, o := range orders {
		orderIDs[o.OrderID] = true
	}
	sampleIDs := make(map[string]bool, len(samples))
	for _, s := range samples {
		sampleIDs[s.SampleID] = true
	}
	testCodes := make(map[string]bool, cat.Len())
	for _, code := range cat.Codes() {
		testCodes[code] = true
	}

	var r Result

	for _, o := range orders {
		if !patientIDs[o.PatientID] {
			r.errf("order %s references unknown patient %s", o.OrderID, o.PatientID)
		}
		for _, t := range o.Tests {
			if !testCodes[t.TestCode] {
				r.errf("order %s test %s not in catalog", o.OrderID, t.TestCode)
			}
			if t.SampleID != nil && !sampleIDs[*t.SampleID] {
				r.errf("order %s test %s references unknown sample %s", o.OrderID, t.TestCode, *t.SampleID)
			}
		}
	}

	for _, s := range samples {
		if !orderIDs[s.OrderID] {
			r.errf("sample %s references unknown order %s", s.SampleID, s.OrderID)
		}
		for _, code := range s.TestCodes {
			if !testCodes[code] {
				r.errf("sample %s test code %s not in catalog", s.SampleID, code)
			}
		}
		if s.Collected() && s.Collection.Volume < s.RequiredVolume {
			r.warnf("sample %s collected volume %.1f below required %.1f", s.SampleID, s.Collection.Volume, s.RequiredVolume)
		}
	}

	for _, a := range aliquots {
		if !sampleIDs[a.SampleID] {
			r.errf("aliquot %s references unknown sample %s", a.AliquotID, a.SampleID)
		}
		if !orderIDs[a.OrderID] {
			r.errf("aliquot %s references unknown order %s", a.AliquotID, a.OrderID)
		}
		if !patientIDs[a.PatientID] {
			r.errf("aliquot %s references unknown patient %s", a.AliquotID, a.PatientID)
		}
		if a.RemainingVolume > a.Volume {
			r.warnf("aliquot %s remaining volume %.2f exceeds volume %.2f", a.AliquotID, a.RemainingVolume, a.Volume)
		}
		if a.Status == aliquot.StatusConsumed && a.RemainingVolume != 0 {
			r.warnf("aliquot %s consumed but remaining volume is %.2f", a.AliquotID, a.RemainingVolume)
		}
	}

	for _, rp := range reports {
		if !orderIDs[rp.OrderID] {
			r.errf("report %s references unknown order %s", rp.ReportID, rp.OrderID)
		}
		if !patientIDs[rp.PatientID] {
			r.errf("report %s references unknown patient %s", rp.ReportID, rp.PatientID)
		}
		if rp.DeliveredAt != nil && rp.ViewedAt != nil && rp.ViewedAt.Before(*rp.DeliveredAt) {
			r.warnf("report %s viewed before delivery", rp.ReportID)
		}
	}

	r.Valid = len(r.Errors) == 0
	return r
}

func (r *Result) errf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
