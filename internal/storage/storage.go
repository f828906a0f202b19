package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sciAnima/boxing-calendar/internal/schedule"
)

const snapshotFile = "snapshot.json"

// Storage handles persistence of schedule snapshots.
type Storage struct {
	dataDir string
}

// New creates a Storage instance rooted at dataDir, creating the directory
// if needed. A leading ~/ is expanded to the user's home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

func (s *Storage) snapshotPath() string {
	return filepath.Join(s.dataDir, snapshotFile)
}

// LoadSnapshot loads the previous schedule snapshot from disk. A missing
// file yields an empty snapshot, not an error.
func (s *Storage) LoadSnapshot() (*schedule.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return schedule.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot schedule.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snapshot.Cards == nil {
		snapshot.Cards = make(map[string]*schedule.Card)
	}

	return &snapshot, nil
}

// SaveSnapshot saves a snapshot to disk, stamping it with the current time.
func (s *Storage) SaveSnapshot(snapshot *schedule.Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// SnapshotCards creates and saves a snapshot from the current schedule.
func (s *Storage) SnapshotCards(cards []*schedule.Card) error {
	snap := schedule.CreateSnapshot(cards, time.Now().UTC().Format(time.RFC3339))
	return s.SaveSnapshot(snap)
}
