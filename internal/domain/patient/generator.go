package patient

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
)

type ageBand struct {
	Min int
	Max int
}

var ageBands = []random.WeightedChoice[int]{
	{Value: 0, Weight: 20},
	{Value: 1, Weight: 25},
	{Value: 2, Weight: 25},
	{Value: 3, Weight: 20},
	{Value: 4, Weight: 10},
}

var bands = []ageBand{
	{18, 30},
	{31, 45},
	{46, 60},
	{61, 75},
	{76, 90},
}

type complexity int

const (
	complexityNone complexity = iota
	complexityLow
	complexityModerate
	complexityHigh
)

// Older bands weight toward higher medical complexity.
var complexityByBand = [][]random.WeightedChoice[complexity]{
	{{Value: complexityNone, Weight: 40}, {Value: complexityLow, Weight: 40}, {Value: complexityModerate, Weight: 15}, {Value: complexityHigh, Weight: 5}},
	{{Value: complexityNone, Weight: 25}, {Value: complexityLow, Weight: 45}, {Value: complexityModerate, Weight: 22}, {Value: complexityHigh, Weight: 8}},
	{{Value: complexityNone, Weight: 15}, {Value: complexityLow, Weight: 40}, {Value: complexityModerate, Weight: 30}, {Value: complexityHigh, Weight: 15}},
	{{Value: complexityNone, Weight: 8}, {Value: complexityLow, Weight: 30}, {Value: complexityModerate, Weight: 38}, {Value: complexityHigh, Weight: 24}},
	{{Value: complexityNone, Weight: 4}, {Value: complexityLow, Weight: 22}, {Value: complexityModerate, Weight: 40}, {Value: complexityHigh, Weight: 34}},
}

var insuranceTypes = []random.WeightedChoice[string]{
	{Value: "active", Weight: 60},
	{Value: "expired", Weight: 15},
	{Value: "none", Weight: 25},
}

var durationClasses = []random.WeightedChoice[string]{
	{Value: "short-term", Weight: 20},
	{Value: "annual", Weight: 55},
	{Value: "long-term", Weight: 25},
}

var durationMonths = map[string]int{
	"short-term": 6,
	"annual":     12,
	"long-term":  36,
}

// Generator produces the patient roster for one run.
type Generator struct {
	src   random.Source
	seq   *sequence.Allocator
	staff *staff.Registry
	now   time.Time
}

// NewGenerator returns a Generator anchored at now.
func NewGenerator(src random.Source, seq *sequence.Allocator, reg *staff.Registry, now time.Time) *Generator {
	return &Generator{src: src, seq: seq, staff: reg, now: now}
}

// Generate produces count patients sorted by registration date ascending.
func (g *Generator) Generate(count int) []*Patient {
	patients := make([]*Patient, 0, count)
	for i := 0; i < count; i++ {
		patients = append(patients, g.generateOne())
	}
	sort.SliceStable(patients, func(i, j int) bool {
		return patients[i].RegistrationDate.Before(patients[j].RegistrationDate)
	})
	return patients
}

func (g *Generator) generateOne() *Patient {
	bandIdx := random.Weighted(g.src, ageBands)
	band := bands[bandIdx]
	age := random.IntBetween(g.src, band.Min, band.Max)
	birthDate := g.now.AddDate(-age, 0, -random.IntBetween(g.src, 0, 364))

	var firstName, gender string
	if g.src.Intn(2) == 0 {
		firstName = random.PickOne(g.src, firstNamesMale)
		gender = "male"
	} else {
		firstName = random.PickOne(g.src, firstNamesFemale)
		gender = "female"
	}
	lastName := random.PickOne(g.src, lastNames)

	registeredAt := g.now.
		AddDate(0, 0, -random.IntBetween(g.src, 1, 540)).
		Add(-time.Duration(random.IntBetween(g.src, 0, 600)) * time.Minute)

	receptionist := g.staff.Pick(g.src, staff.RoleReceptionist)

	p := &Patient{
		PatientID: g.seq.Next("PAT", registeredAt),
		MRN:       fmt.Sprintf("MRN-%08d", g.src.Intn(100000000)),
		FirstName: firstName,
		LastName:  lastName,
		Gender:    gender,
		BirthDate: birthDate,
		Age:       age,
		Phone:     g.randomPhone(),
		Email: fmt.Sprintf("%s.%s%d@example.com",
			strings.ToLower(firstName), strings.ToLower(lastName),
			random.IntBetween(g.src, 1, 99)),
		Address: Address{
			Line:       random.PickOne(g.src, streets),
			City:       random.PickOne(g.src, cities),
			State:      random.PickOne(g.src, states),
			PostalCode: random.PickOne(g.src, zips),
			Country:    "US",
		},
		Insurance: g.generateInsurance(),
		History:   g.generateHistory(bandIdx),
		EmergencyContact: EmergencyContact{
			Name: random.PickOne(g.src, firstNamesFemale) + " " +
				random.PickOne(g.src, lastNames),
			Relationship: random.PickOne(g.src, relationships),
			Phone:        g.randomPhone(),
		},
		RegistrationDate: registeredAt,
		CreatedBy:        receptionist.ID,
		CreatedAt:        registeredAt,
		UpdatedBy:        receptionist.ID,
		UpdatedAt:        registeredAt,
	}
	return p
}

func (g *Generator) generateInsurance() *Insurance {
	kind := random.Weighted(g.src, insuranceTypes)
	if kind == "none" {
		return nil
	}
	class := random.Weighted(g.src, durationClasses)
	months := durationMonths[class]

	var start, end time.Time
	if kind == "active" {
		// Window must enclose the generation clock.
		daysBack := random.IntBetween(g.src, 1, months*30-30)
		start = g.now.AddDate(0, 0, -daysBack)
		end = start.AddDate(0, 0, months*30)
	} else {
		end = g.now.AddDate(0, 0, -random.IntBetween(g.src, 30, 365))
		start = end.AddDate(0, 0, -months*30)
	}

	return &Insurance{
		Status:        InsuranceStatus(kind),
		Provider:      random.PickOne(g.src, insuranceProviders),
		PolicyNumber:  fmt.Sprintf("POL-%07d", g.src.Intn(10000000)),
		StartDate:     start,
		EndDate:       end,
		DurationClass: class,
	}
}

func (g *Generator) generateHistory(bandIdx int) History {
	level := random.Weighted(g.src, complexityByBand[bandIdx])

	var conditions, meds []string
	switch level {
	case complexityLow:
		conditions = random.PickN(g.src, chronicConditions, 1)
		meds = random.PickN(g.src, medications, 1)
	case complexityModerate:
		conditions = random.PickN(g.src, chronicConditions, random.IntBetween(g.src, 2, 3))
		meds = random.PickN(g.src, medications, random.IntBetween(g.src, 2, 3))
	case complexityHigh:
		conditions = random.PickN(g.src, chronicConditions, random.IntBetween(g.src, 3, 5))
		meds = random.PickN(g.src, medications, random.IntBetween(g.src, 3, 5))
	}

	var allergyList []string
	if random.Chance(g.src, 30) {
		allergyList = random.PickN(g.src, allergies, random.IntBetween(g.src, 1, 2))
	}

	return History{
		ChronicConditions: conditions,
		Medications:       meds,
		Allergies:         allergyList,
		Smoker:            random.Chance(g.src, 18),
		AlcoholUse:        random.Chance(g.src, 35),
	}
}

func (g *Generator) randomPhone() string {
	return fmt.Sprintf("(%03d) %03d-%04d",
		200+g.src.Intn(800),
		200+g.src.Intn(800),
		g.src.Intn(10000),
	)
}
