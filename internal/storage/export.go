package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/postflight/internal/analysis"
	"github.com/san-kum/postflight/internal/sim"
)

// ExportData is the JSON shape handed to external reporting tools.
type ExportData struct {
	Scenario  string  `json:"scenario"`
	Condition string  `json:"condition"`
	DtReport  float64 `json:"dt_report"`
	Duration  float64 `json:"duration"`
	Samples   int     `json:"samples"`

	Times   []float64    `json:"times"`
	States  [][]float64  `json:"states"` // 12 components per sample
	Forces  [][3]float64 `json:"forces"`
	Moments [][3]float64 `json:"moments"`

	Summary analysis.RunSummary `json:"summary"`
}

// ExportJSON writes one trajectory with its analysis summary.
func ExportJSON(w io.Writer, scenarioName, condition string, tr *sim.Trajectory) error {
	data := ExportData{
		Scenario:  scenarioName,
		Condition: condition,
		DtReport:  tr.SampleInterval(),
		Duration:  tr.Duration(),
		Samples:   tr.Len(),
		Times:     tr.Times,
		States:    make([][]float64, tr.Len()),
		Forces:    make([][3]float64, tr.Len()),
		Moments:   make([][3]float64, tr.Len()),
		Summary:   analysis.Summarize(tr),
	}

	for i := range tr.States {
		data.States[i] = tr.States[i].Vector()
		data.Forces[i] = tr.Forces[i]
		data.Moments[i] = tr.Moments[i]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes one trajectory in the same column layout the store
// persists per run, for hand-off without going through a saved run dir.
func ExportCSV(w io.Writer, tr *sim.Trajectory) error {
	return writeCSV(w, tr)
}
