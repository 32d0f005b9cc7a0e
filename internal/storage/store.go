// Package storage persists replay runs as directories holding run metadata
// and the flattened report table.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/replaylab/internal/replay"
	"github.com/san-kum/replaylab/internal/table"
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
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
	Patterns  []string  `json:"patterns"`
	Type      string    `json:"type"`
	Workers   int       `json:"workers"`
	Rows      int       `json:"rows"`
	Columns   []string  `json:"columns"`
}

// Save writes a run directory: metadata.json plus report.csv with the report
// flattened to scalar columns.
func (s *Store) Save(model string, patterns []string, valueType string, workers int, rep *replay.Report) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Patterns:  patterns,
		Type:      valueType,
		Workers:   workers,
		Rows:      rep.NumRows(),
		Columns:   rep.Labels(),
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

	flat, err := rep.Table()
	if err != nil {
		return "", err
	}
	if err := flat.WriteCSV(filepath.Join(runDir, "report.csv")); err != nil {
		return "", err
	}
	return runID, nil
}

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
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

// LoadReport reads back a run's flattened report table.
func (s *Store) LoadReport(runID string) (*table.Table, error) {
	return table.ReadCSV(filepath.Join(s.baseDir, runID, "report.csv"))
}
