package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/quadsim/internal/bench"
	"github.com/san-kum/quadsim/internal/quad"
)

type ExportData struct {
	Engine   string        `json:"engine"`
	Left     float64       `json:"left"`
	Right    float64       `json:"right"`
	Segments int           `json:"segments"`
	Step     float64       `json:"step"`
	Value    float64       `json:"value"`
	Stats    bench.Stats   `json:"stats"`
	Samples  []quad.Result `json:"samples"`
}

func NewExportData(report *bench.Report) ExportData {
	return ExportData{
		Engine:   report.Engine,
		Left:     report.Params.Left(),
		Right:    report.Params.Right(),
		Segments: report.Params.Segments(),
		Step:     report.Params.Step(),
		Value:    report.Value(),
		Stats:    report.Stats,
		Samples:  report.Samples,
	}
}

// WriteJSON encodes report as indented JSON.
func WriteJSON(w io.Writer, report *bench.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(report))
}

func ExportJSON(path string, report *bench.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, report)
}
