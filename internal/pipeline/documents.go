package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lims/lims/internal/catalog"
	"github.com/lims/lims/internal/domain/aliquot"
	"github.com/lims/lims/internal/domain/order"
	"github.com/lims/lims/internal/domain/patient"
	"github.com/lims/lims/internal/domain/report"
	"github.com/lims/lims/internal/domain/sample"
	"github.com/lims/lims/internal/verify"
)

// VerifyDocuments re-reads a previously written corpus from dir and runs the
// integrity verifier over it. Used by the standalone verify command.
func VerifyDocuments(dir, catalogPath string) (verify.Result, error) {
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return verify.Result{}, fmt.Errorf("load catalog: %w", err)
	}

	var patients []*patient.Patient
	if err := readJSON(filepath.Join(dir, PatientsFile), &patients); err != nil {
		return verify.Result{}, err
	}
	var orders []*order.Order
	if err := readJSON(filepath.Join(dir, OrdersFile), &orders); err != nil {
		return verify.Result{}, err
	}
	var samples []*sample.Sample
	if err := readJSON(filepath.Join(dir, SamplesFile), &samples); err != nil {
		return verify.Result{}, err
	}
	var aliquots []*aliquot.Aliquot
	if err := readJSON(filepath.Join(dir, AliquotsFile), &aliquots); err != nil {
		return verify.Result{}, err
	}
	var reports []*report.Report
	if err := readJSON(filepath.Join(dir, ReportsFile), &reports); err != nil {
		return verify.Result{}, err
	}

	return verify.Corpus(patients, orders, samples, aliquots, reports, cat), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}
