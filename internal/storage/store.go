// Package storage persists finished runs on disk. Each run gets its own
// directory holding metadata.json and states.csv.
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

	"github.com/san-kum/odelab/internal/dynamo"
)

var ErrNoRun = errors.New("storage: run not found")

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
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Scheme    string             `json:"scheme"`
	Timestamp time.Time          `json:"timestamp"`
	TMin      float64            `json:"t_min"`
	TMax      float64            `json:"t_max"`
	Step      float64            `json:"step"`
	Steps     int                `json:"steps"`
	Stopped   bool               `json:"stopped,omitempty"`
	Labels    []string           `json:"labels,omitempty"`
	Params    map[string]float64 `json:"params,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes tr under a fresh run ID. ID, Timestamp and Steps are filled
// in from the trajectory.
func (s *Store) Save(meta RunMetadata, tr *dynamo.Trajectory) (string, error) {
	if tr == nil {
		return "", fmt.Errorf("%w: nil trajectory", dynamo.ErrInvalidArgument)
	}

	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Model, now.UnixNano())
	meta.Timestamp = now
	meta.Steps = tr.Len() - 1

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, meta, tr); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, tr *dynamo.Trajectory) error {
	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return err
	}
	return writeStates(filepath.Join(runDir, "states.csv"), meta.Labels, tr)
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	return f.Close()
}

func writeStates(path string, labels []string, tr *dynamo.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header(labels, tr.Dim())); err != nil {
		return err
	}

	row := make([]string, tr.Dim()+1)
	for i := 0; i < tr.Len(); i++ {
		row[0] = strconv.FormatFloat(tr.Time(i), 'g', -1, 64)
		for j := 0; j < tr.Dim(); j++ {
			row[j+1] = strconv.FormatFloat(tr.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func header(labels []string, dim int) []string {
	h := []string{"time"}
	for i := 0; i < dim; i++ {
		if i < len(labels) {
			h = append(h, labels[i])
		} else {
			h = append(h, fmt.Sprintf("x%d", i))
		}
	}
	return h
}

// List returns every readable run, newest first. A missing base directory
// is an empty store.
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads states.csv back into a trajectory. Values are stored
// in shortest round-trip form so the result matches what was saved.
func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: run %s has no states", dynamo.ErrInvalidArgument, runID)
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]dynamo.State, 0, len(records)-1)
	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", runID, i+1, err)
		}

		state := make(dynamo.State, len(record)-1)
		for j := range state {
			state[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", runID, i+1, err)
			}
		}
		times = append(times, t)
		states = append(states, state)
	}

	return dynamo.NewTrajectory(times, states)
}
