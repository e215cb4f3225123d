package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "probes.csv"
)

var ErrCorruptSeries = errors.New("storage: corrupt series file")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Grid       fdtd.Grid          `json:"grid"`
	Courant    float64            `json:"courant"`
	Decay      float64            `json:"decay"`
	Steps      int                `json:"steps"`
	StepsTaken int                `json:"steps_taken"`
	Workers    int                `json:"workers"`
	Boundaries fdtd.Boundaries    `json:"boundaries"`
	Source     string             `json:"source"`
	Probes     []string           `json:"probes"`
	Metrics    map[string]float64 `json:"metrics"`
	Error      string             `json:"error,omitempty"`
}

// Series is the per-step data of a run: the energy column followed by one
// column per probe.
type Series struct {
	Steps   []int
	Columns []string
	Values  map[string][]float64
}

// Save writes metadata.json and probes.csv under a new run directory. runErr
// is the error the run ended with, if any; partial results are still saved.
func (s *Store) Save(cfg *config.Config, result *sim.Result, runErr error) (string, error) {
	runID, runDir, err := s.newRunDir(cfg.Name)
	if err != nil {
		return "", err
	}

	probes := make([]string, 0, len(result.Probes))
	for name := range result.Probes {
		probes = append(probes, name)
	}
	sort.Strings(probes)

	meta := RunMetadata{
		ID:         runID,
		Name:       cfg.Name,
		Timestamp:  time.Now(),
		Grid:       cfg.Grid,
		Courant:    cfg.Courant,
		Decay:      cfg.Decay,
		Steps:      cfg.Steps,
		StepsTaken: result.StepsTaken,
		Workers:    cfg.Workers,
		Boundaries: cfg.Boundaries,
		Source:     cfg.Source.Kind,
		Probes:     probes,
		Metrics:    result.Metrics,
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := append([]string{"step", "energy"}, probes...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := 0; i < result.StepsTaken; i++ {
		row := []string{strconv.Itoa(i + 1), formatFloat(at(result.Energy, i))}
		for _, name := range probes {
			row = append(row, formatFloat(at(result.Probes[name], i)))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
}

func (s *Store) newRunDir(name string) (string, string, error) {
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		if _, err := os.Stat(runDir); os.IsNotExist(err) {
			if err := os.MkdirAll(runDir, 0755); err != nil {
				return "", "", err
			}
			return runID, runDir, nil
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadProbes(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < 2 || records[0][0] != "step" {
		return nil, fmt.Errorf("%w: missing header", ErrCorruptSeries)
	}

	columns := records[0][1:]
	series := &Series{
		Steps:   make([]int, 0, len(records)-1),
		Columns: columns,
		Values:  make(map[string][]float64, len(columns)),
	}

	for i, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCorruptSeries, i+1, err)
		}
		series.Steps = append(series.Steps, step)

		for j, name := range columns {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %v", ErrCorruptSeries, i+1, name, err)
			}
			series.Values[name] = append(series.Values[name], val)
		}
	}

	return series, nil
}

func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
