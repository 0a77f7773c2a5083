package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"vocabdeck/internal/deck"
	"vocabdeck/internal/models"
)

// BackupVersion tags the export format
const BackupVersion = "1.0"

// BackupData is the complete on-disk backup structure
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Folders    []models.Folder `json:"folders"`
	Cards      []models.Card   `json:"cards"`
}

// BackupService exports and restores the whole card store as JSON
type BackupService struct {
	store *deck.Store
}

// NewBackupService creates a backup service over the given store
func NewBackupService(store *deck.Store) *BackupService {
	return &BackupService{store: store}
}

// Export writes a complete backup to w
func (s *BackupService) Export(w io.Writer) error {
	folders, cards := s.store.Snapshot()
	backup := BackupData{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Folders:    folders,
		Cards:      cards,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// ExportToFile writes a complete backup to the given path
func (s *BackupService) ExportToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()
	return s.Export(f)
}

// Import restores a backup from r, replacing the current collections
func (s *BackupService) Import(r io.Reader) (folders, cards int, err error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version == "" {
		return 0, 0, fmt.Errorf("not a backup file: missing version")
	}

	s.store.Replace(backup.Folders, backup.Cards)
	return len(backup.Folders), len(backup.Cards), nil
}

// ImportFromFile restores a backup from the given path
func (s *BackupService) ImportFromFile(path string) (folders, cards int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()
	return s.Import(f)
}
