package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/quadsim/internal/bench"
	"github.com/san-kum/quadsim/internal/quad"
)

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
	ID        string      `json:"id"`
	Engine    string      `json:"engine"`
	Timestamp time.Time   `json:"timestamp"`
	Left      float64     `json:"left"`
	Right     float64     `json:"right"`
	Segments  int         `json:"segments"`
	Value     float64     `json:"value"`
	Stats     bench.Stats `json:"stats"`
}

// Params rebuilds the integration problem of the run.
func (m *RunMetadata) Params() (quad.Params, error) {
	return quad.NewParams(m.Left, m.Right, m.Segments)
}

func (s *Store) Save(report *bench.Report) (string, error) {
	if report == nil || report.Params.IsZero() {
		return "", &quad.ConfigurationError{Field: "report", Value: report, Reason: "has no parameters"}
	}
	if !report.Stats.Finalized() {
		return "", &quad.ConfigurationError{Field: "stats", Value: report.Stats, Reason: "not finalized"}
	}

	started := report.Started
	if started.IsZero() {
		started = time.Now()
	}
	runID := fmt.Sprintf("%s_%d_%d", slug(report.Engine), report.Params.Segments(), started.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Engine:    report.Engine,
		Timestamp: started,
		Left:      report.Params.Left(),
		Right:     report.Params.Right(),
		Segments:  report.Params.Segments(),
		Value:     report.Value(),
		Stats:     report.Stats,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, "samples.csv"), report.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []quad.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"run", "time_ms", "value"}); err != nil {
		return err
	}
	for i, res := range samples {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(res.Time, 'f', 6, 64),
			strconv.FormatFloat(res.Value, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every stored run, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]quad.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []quad.Result{}, nil
	}

	samples := make([]quad.Result, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 3 {
			return nil, fmt.Errorf("samples.csv line %d: expected 3 fields, got %d", i+2, len(record))
		}
		ms, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+2, err)
		}
		value, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+2, err)
		}
		samples = append(samples, quad.Result{Time: ms, Value: value})
	}
	return samples, nil
}

// Report reassembles a stored run.
func (s *Store) Report(runID string) (*bench.Report, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	p, err := meta.Params()
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &bench.Report{
		Engine:  meta.Engine,
		Params:  p,
		Stats:   meta.Stats,
		Samples: samples,
		Started: meta.Timestamp,
	}, nil
}

func slug(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
