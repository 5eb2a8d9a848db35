package patient

import (
	"strings"
	"testing"
	"time"

	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
)

var testClock = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(random.New(seed), sequence.New(), staff.NewRegistry(), testClock)
}

func TestGenerate_Count(t *testing.T) {
	patients := newTestGenerator(42).Generate(25)
	if len(patients) != 25 {
		t.Fatalf("got %d patients, want 25", len(patients))
	}
}

func TestGenerate_SortedByRegistrationDate(t *testing.T) {
	patients := newTestGenerator(42).Generate(50)
	for i := 1; i < len(patients); i++ {
		if patients[i].RegistrationDate.Before(patients[i-1].RegistrationDate) {
			t.Fatalf("patients not sorted at index %d", i)
		}
	}
}

func TestGenerate_IDFormatAndUniqueness(t *testing.T) {
	patients := newTestGenerator(42).Generate(100)
	seen := map[string]bool{}
	for _, p := range patients {
		if !strings.HasPrefix(p.PatientID, "PAT-") {
			t.Errorf("unexpected ID format %s", p.PatientID)
		}
		if seen[p.PatientID] {
			t.Errorf("duplicate patient ID %s", p.PatientID)
		}
		seen[p.PatientID] = true
	}
}

func TestGenerate_InsuranceWindows(t *testing.T) {
	patients := newTestGenerator(7).Generate(200)
	sawActive, sawExpired, sawNone := false, false, false
	for _, p := range patients {
		if p.Insurance == nil {
			sawNone = true
			continue
		}
		ins := p.Insurance
		if !ins.StartDate.Before(ins.EndDate) {
			t.Errorf("patient %s: start %v not before end %v", p.PatientID, ins.StartDate, ins.EndDate)
		}
		switch ins.Status {
		case InsuranceActive:
			sawActive = true
			if ins.StartDate.After(testClock) || ins.EndDate.Before(testClock) {
				t.Errorf("patient %s: active window does not enclose the clock", p.PatientID)
			}
		case InsuranceExpired:
			sawExpired = true
			if !ins.EndDate.Before(testClock) {
				t.Errorf("patient %s: expired window ends after the clock", p.PatientID)
			}
		default:
			t.Errorf("patient %s: unexpected insurance status %s", p.PatientID, ins.Status)
		}
	}
	if !sawActive || !sawExpired || !sawNone {
		t.Error("expected all three affiliation types across 200 patients")
	}
}

func TestGenerate_AgeConsistentWithBirthDate(t *testing.T) {
	patients := newTestGenerator(3).Generate(100)
	for _, p := range patients {
		if p.Age < 18 || p.Age > 90 {
			t.Errorf("patient %s: age %d outside generated bands", p.PatientID, p.Age)
		}
		years := testClock.Year() - p.BirthDate.Year()
		if years < p.Age || years > p.Age+1 {
			t.Errorf("patient %s: birth date %v inconsistent with age %d", p.PatientID, p.BirthDate, p.Age)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := newTestGenerator(42).Generate(20)
	b := newTestGenerator(42).Generate(20)
	for i := range a {
		if a[i].PatientID != b[i].PatientID || a[i].FirstName != b[i].FirstName ||
			!a[i].RegistrationDate.Equal(b[i].RegistrationDate) {
			t.Fatalf("runs diverged at patient %d", i)
		}
	}
}

func TestGenerate_MedicationsRequireConditions(t *testing.T) {
	patients := newTestGenerator(9).Generate(200)
	for _, p := range patients {
		if len(p.History.Medications) > 0 && len(p.History.ChronicConditions) == 0 {
			t.Errorf("patient %s: medications without chronic conditions", p.PatientID)
		}
	}
}

func TestGenerate_AuditFields(t *testing.T) {
	patients := newTestGenerator(5).Generate(20)
	for _, p := range patients {
		if p.CreatedBy == "" || p.UpdatedBy == "" {
			t.Errorf("patient %s: missing audit actor", p.PatientID)
		}
		if !p.CreatedAt.Equal(p.RegistrationDate) {
			t.Errorf("patient %s: createdAt differs from registration date", p.PatientID)
		}
	}
}
