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

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/solver"
)

var ErrBadHistory = errors.New("storage: malformed history file")

const (
	metadataFile = "metadata.json"
	historyFile  = "history.csv"
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Request    experiment.Request `json:"request"`
	Status     solver.Status      `json:"status"`
	X          float64            `json:"x"`
	FX         float64            `json:"fx"`
	Iterations int                `json:"iterations"`
	Cause      string             `json:"cause,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes run to a new directory and returns its id.
func (s *Store) Save(run *experiment.Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Request.Method, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	res := run.Result
	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		Request:    run.Request,
		Status:     res.Status,
		X:          res.X,
		FX:         res.FX,
		Iterations: res.Iterations,
		Metrics:    run.Metrics,
	}
	if res.Cause != nil {
		meta.Cause = res.Cause.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, historyFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteHistoryCSV(f, res.History); err != nil {
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

// List returns the metadata of every stored run, oldest first. Directories
// without readable metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func (s *Store) LoadHistory(runID string) (solver.History, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, historyFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHistory, err)
	}
	if len(records) < 2 {
		return solver.History{}, nil
	}

	h := make(solver.History, 0, len(records)-1)
	for i, record := range records[1:] {
		it, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadHistory, i+1, err)
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadHistory, i+1, err)
		}
		h = append(h, solver.Point{Iteration: it, Error: e})
	}
	return h, nil
}

// LoadRun reassembles a stored run. Cause comes back as plain text, so
// errors.Is no longer matches the package sentinels.
func (s *Store) LoadRun(runID string) (*experiment.Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	h, err := s.LoadHistory(runID)
	if err != nil {
		return nil, err
	}
	var cause error
	if meta.Cause != "" {
		cause = errors.New(meta.Cause)
	}
	return &experiment.Run{
		Request: meta.Request,
		Result: &solver.Result{
			Method:     meta.Request.Method,
			X:          meta.X,
			FX:         meta.FX,
			Iterations: meta.Iterations,
			Status:     meta.Status,
			History:    h,
			Cause:      cause,
		},
		Metrics: meta.Metrics,
	}, nil
}
