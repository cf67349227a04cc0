package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/postflight/internal/analysis"
	"github.com/san-kum/postflight/internal/flight"
	"github.com/san-kum/postflight/internal/sim"
)

// Store keeps one directory per saved run: metadata.json with the scenario
// identity and metric summary, trajectory.csv with the sampled states and
// forces. The CSV is the hand-off format for external reporting layers.
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
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	Condition string    `json:"condition"` // "reference" or "damaged"
	Timestamp time.Time `json:"timestamp"`

	DtReport float64 `json:"dt_report"`
	Duration float64 `json:"duration"`
	Samples  int     `json:"samples"`

	Metrics analysis.TrajectoryMetrics `json:"metrics"`
}

var csvHeader = []string{
	"time",
	"x", "y", "z",
	"u", "v", "w",
	"phi", "theta", "psi",
	"p", "q", "r",
	"fx", "fy", "fz",
	"mx", "my", "mz",
}

// Save writes one trajectory and returns the run id.
func (s *Store) Save(scenarioName, condition string, tr *sim.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", scenarioName, condition, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenarioName,
		Condition: condition,
		Timestamp: time.Now(),
		DtReport:  tr.SampleInterval(),
		Duration:  tr.Duration(),
		Samples:   tr.Len(),
		Metrics:   analysis.Metrics(tr),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeCSV(csvFile, tr); err != nil {
		return "", err
	}
	return runID, nil
}

func writeCSV(out io.Writer, tr *sim.Trajectory) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for i := range tr.Times {
		row := make([]string, 0, len(csvHeader))
		row = append(row, fmtFloat(tr.Times[i]))
		for _, v := range tr.States[i].Vector() {
			row = append(row, fmtFloat(v))
		}
		for _, v := range tr.Forces[i] {
			row = append(row, fmtFloat(v))
		}
		for _, v := range tr.Moments[i] {
			row = append(row, fmtFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

// List returns metadata for every saved run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadTrajectory reads a saved run back into memory.
func (s *Store) LoadTrajectory(runID string) (*sim.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("run %s: trajectory file is empty", runID)
	}

	tr := &sim.Trajectory{}
	for _, rec := range records[1:] {
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("run %s: bad column count %d", runID, len(rec))
		}
		vals := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: %w", runID, err)
			}
			vals[i] = v
		}

		tr.Times = append(tr.Times, vals[0])
		tr.States = append(tr.States, flight.FromVector(vals[1:13]))
		tr.Forces = append(tr.Forces, flight.Vec3{vals[13], vals[14], vals[15]})
		tr.Moments = append(tr.Moments, flight.Vec3{vals[16], vals[17], vals[18]})
	}
	return tr, nil
}
