// Package pipeline sequences the generation stages, verifies the corpus, and
// writes the output documents.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lims/lims/internal/catalog"
	"github.com/lims/lims/internal/config"
	"github.com/lims/lims/internal/domain/aliquot"
	"github.com/lims/lims/internal/domain/order"
	"github.com/lims/lims/internal/domain/patient"
	"github.com/lims/lims/internal/domain/report"
	"github.com/lims/lims/internal/domain/sample"
	"github.com/lims/lims/internal/platform/random"
	"github.com/lims/lims/internal/platform/sequence"
	"github.com/lims/lims/internal/staff"
	"github.com/lims/lims/internal/verify"
)

// generationClock anchors every generated timestamp. A wall-clock anchor
// would make two runs with the same seed differ, breaking byte-identical
// reproducibility.
var generationClock = time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)

// ErrIntegrity is returned when the verifier rejects the corpus. No output
// documents are written in that case.
var ErrIntegrity = errors.New("corpus failed integrity verification")

// maxPrintedErrors caps how many verification errors are logged before the
// "+N more" summary.
const maxPrintedErrors = 10

// Output document names.
const (
	PatientsFile = "patients.json"
	OrdersFile   = "orders.json"
	SamplesFile  = "samples.json"
	AliquotsFile = "aliquots.json"
	ReportsFile  = "reports.json"
)

// Pipeline runs one generation pass end to end.
type Pipeline struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// New returns a Pipeline.
func New(cfg *config.Config, logger zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger}
}

// Result summarizes a completed run.
type Result struct {
	RunID     string        `json:"runId"`
	Patients  int           `json:"patients"`
	Orders    int           `json:"orders"`
	Samples   int           `json:"samples"`
	Aliquots  int           `json:"aliquots"`
	Reports   int           `json:"reports"`
	Warnings  int           `json:"warnings"`
	Duration  time.Duration `json:"duration"`
	OutputDir string        `json:"outputDir"`
}

// Run executes the fixed stage sequence: seed PRNG, reset the allocator,
// load the catalog, generate each collection, verify, then write the five
// output documents. Later stages only ever read earlier stages' completed
// output; the sample stage returns updated order copies that replace the
// order stage's output from then on.
func (p *Pipeline) Run() (*Result, error) {
	started := time.Now()
	runID := uuid.New().String()
	p.logger.Info().
		Str("runId", runID).
		Int64("seed", p.cfg.Seed).
		Msg("starting generation run")

	src := random.New(p.cfg.Seed)
	seq := sequence.New()
	seq.Reset()
	reg := staff.NewRegistry()

	cat, err := catalog.Load(p.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	p.logger.Info().Int("tests", cat.Len()).Msg("catalog loaded")

	patients := patient.NewGenerator(src, seq, reg, generationClock).Generate(p.cfg.PatientCount)
	p.logger.Info().Int("count", len(patients)).Msg("patients generated")

	orders := order.NewGenerator(src, seq, cat, reg, generationClock).Generate(patients, p.cfg.OrderCount)
	p.logger.Info().Int("count", len(orders)).Msg("orders generated")

	samples, updatedOrders := sample.NewGenerator(src, seq, cat, reg).Generate(orders)
	p.logger.Info().Int("count", len(samples)).Msg("samples generated")

	aliquots, stats := aliquot.NewGenerator(src, seq, reg).Generate(samples, updatedOrders)
	p.logger.Info().
		Int("count", len(aliquots)).
		Float64("avgPerSample", stats.AvgAliquotsPerSample).
		Msg("aliquots generated")

	reports := report.NewGenerator(src, seq, reg, p.logger).Generate(updatedOrders, patients)
	p.logger.Info().Int("count", len(reports)).Msg("reports generated")

	res := verify.Corpus(patients, updatedOrders, samples, aliquots, reports, cat)
	for _, w := range res.Warnings {
		p.logger.Warn().Msg(w)
	}
	if !res.Valid {
		for i, e := range res.Errors {
			if i == maxPrintedErrors {
				p.logger.Error().Msgf("+%d more", len(res.Errors)-maxPrintedErrors)
				break
			}
			p.logger.Error().Msg(e)
		}
		return nil, fmt.Errorf("%w: %d errors", ErrIntegrity, len(res.Errors))
	}

	if err := p.writeDocuments(patients, updatedOrders, samples, aliquots, reports); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     runID,
		Patients:  len(patients),
		Orders:    len(updatedOrders),
		Samples:   len(samples),
		Aliquots:  len(aliquots),
		Reports:   len(reports),
		Warnings:  len(res.Warnings),
		Duration:  time.Since(started),
		OutputDir: p.cfg.OutputDir,
	}
	p.logger.Info().
		Int("patients", result.Patients).
		Int("orders", result.Orders).
		Int("samples", result.Samples).
		Int("aliquots", result.Aliquots).
		Int("reports", result.Reports).
		Dur("duration", result.Duration).
		Str("outputDir", result.OutputDir).
		Msg("generation run complete")
	return result, nil
}

func (p *Pipeline) writeDocuments(
	patients []*patient.Patient,
	orders []*order.Order,
	samples []*sample.Sample,
	aliquots []*aliquot.Aliquot,
	reports []*report.Report,
) error {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	docs := []struct {
		name string
		data any
	}{
		{PatientsFile, patients},
		{OrdersFile, orders},
		{SamplesFile, samples},
		{AliquotsFile, aliquots},
		{ReportsFile, reports},
	}
	for _, d := range docs {
		if err := writeJSON(filepath.Join(p.cfg.OutputDir, d.name), d.data); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
