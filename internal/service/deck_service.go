package service

import (
	"fmt"
	"log"

	"vocabdeck/internal/deck"
	"vocabdeck/internal/models"
)

// AudioGenerator pre-fetches pronunciation files for card terms
type AudioGenerator interface {
	EnsureAudioFile(text string) (string, error)
	CleanupOrphanedFiles(activeTerms []string) error
}

// DeckService wraps the card store with the side concerns of editing:
// pronunciation pre-generation and session invalidation.
type DeckService struct {
	store *deck.Store
	audio AudioGenerator
	study *StudyService
}

// NewDeckService creates a deck service. audio may be nil to skip
// pronunciation pre-generation.
func NewDeckService(store *deck.Store, audio AudioGenerator, study *StudyService) *DeckService {
	return &DeckService{
		store: store,
		audio: audio,
		study: study,
	}
}

// Folders lists all folders
func (s *DeckService) Folders() []models.Folder {
	return s.store.Folders()
}

// FolderByID returns a single folder
func (s *DeckService) FolderByID(id string) (models.Folder, bool) {
	return s.store.FolderByID(id)
}

// CardCount returns how many cards a folder holds
func (s *DeckService) CardCount(folderID string) int {
	return s.store.CardCount(folderID)
}

// Cards returns a folder's cards, optionally filtered by a search query
func (s *DeckService) Cards(folderID, query string) []models.Card {
	return s.store.Search(folderID, query)
}

// CreateFolder adds a new folder
func (s *DeckService) CreateFolder(name, description string) (models.Folder, error) {
	return s.store.AddFolder(name, description)
}

// DeleteFolder removes a folder and its cards, invalidating any session
// that was studying it
func (s *DeckService) DeleteFolder(id string) error {
	if err := s.store.DeleteFolder(id); err != nil {
		return err
	}
	s.study.Invalidate(id)
	return nil
}

// AddCard creates a card, invalidates sessions over its folder, and
// pre-fetches its pronunciation in the background
func (s *DeckService) AddCard(term, definition, folderID string) (models.Card, error) {
	card, err := s.store.AddCard(term, definition, folderID)
	if err != nil {
		return models.Card{}, err
	}
	s.study.Invalidate(folderID)
	s.prefetchAudio(card.Term)
	return card, nil
}

// DeleteCard removes a card and invalidates sessions over its folder
func (s *DeckService) DeleteCard(id, folderID string) {
	s.store.DeleteCard(id)
	s.study.Invalidate(folderID)
}

// ClearFolder removes every card in the folder
func (s *DeckService) ClearFolder(folderID string) {
	s.store.ClearFolder(folderID)
	s.study.Invalidate(folderID)
}

// Import bulk-adds cards from line-delimited text
func (s *DeckService) Import(rawText, folderID string) (models.ImportResult, error) {
	result, err := s.store.BulkImport(rawText, folderID)
	if err != nil {
		return result, err
	}
	if result.Imported > 0 {
		s.study.Invalidate(folderID)
		go s.generateMissingAudio(folderID)
	}
	return result, nil
}

// Export serializes a folder as downloadable line-delimited text
func (s *DeckService) Export(folderID string) (string, error) {
	if _, ok := s.store.FolderByID(folderID); !ok {
		return "", fmt.Errorf("cannot export: %w", deck.ErrFolderNotFound)
	}
	return s.store.ExportFolder(folderID), nil
}

func (s *DeckService) prefetchAudio(term string) {
	if s.audio == nil {
		return
	}
	go func() {
		if _, err := s.audio.EnsureAudioFile(term); err != nil {
			log.Printf("Warning: failed to pre-generate audio for %q: %v", term, err)
		}
	}()
}

// generateMissingAudio walks a folder and makes sure every term has a
// cached pronunciation
func (s *DeckService) generateMissingAudio(folderID string) {
	if s.audio == nil {
		return
	}
	for _, card := range s.store.CardsInFolder(folderID) {
		if _, err := s.audio.EnsureAudioFile(card.Term); err != nil {
			log.Printf("Warning: failed to pre-generate audio for %q: %v", card.Term, err)
		}
	}
}

// CleanupOrphanedAudio drops cached pronunciations no card references anymore
func (s *DeckService) CleanupOrphanedAudio() error {
	if s.audio == nil {
		return nil
	}
	_, cards := s.store.Snapshot()
	terms := make([]string, len(cards))
	for i, c := range cards {
		terms[i] = c.Term
	}
	return s.audio.CleanupOrphanedFiles(terms)
}
