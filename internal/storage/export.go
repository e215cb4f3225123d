package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/sim"
)

type ExportData struct {
	Name       string               `json:"name"`
	Grid       fdtd.Grid            `json:"grid"`
	Courant    float64              `json:"courant"`
	Boundaries fdtd.Boundaries      `json:"boundaries"`
	Steps      int                  `json:"steps"`
	Energy     []float64            `json:"energy"`
	Probes     map[string][]float64 `json:"probes"`
	Metrics    map[string]float64   `json:"metrics"`
}

func newExportData(cfg *config.Config, result *sim.Result) ExportData {
	return ExportData{
		Name:       cfg.Name,
		Grid:       cfg.Grid,
		Courant:    cfg.Courant,
		Boundaries: cfg.Boundaries,
		Steps:      result.StepsTaken,
		Energy:     result.Energy,
		Probes:     result.Probes,
		Metrics:    result.Metrics,
	}
}

func ExportJSON(path string, cfg *config.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeJSON(file, newExportData(cfg, result))
}

func ExportJSONStdout(cfg *config.Config, result *sim.Result) error {
	return EncodeJSON(os.Stdout, newExportData(cfg, result))
}

// EncodeJSON writes v as indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeJSON(file, v)
}
