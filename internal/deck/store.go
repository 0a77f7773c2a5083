// Package deck owns the canonical folder and card collections. Every
// mutation re-persists both collections to the storage collaborator; study
// sessions read from here but never write back.
package deck

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vocabdeck/internal/models"
	"vocabdeck/internal/storage"
)

// Storage keys. Collections are serialized whole, one key each.
const (
	CardsKey   = "vocabdeck_cards_v2"
	FoldersKey = "vocabdeck_folders_v2"
)

// DefaultFolderID identifies the seeded folder, which is protected from deletion
const DefaultFolderID = "1"

// Store holds the folder and card collections and enforces their invariants
type Store struct {
	mu      sync.Mutex
	folders []models.Folder
	cards   []models.Card
	storage storage.Store
}

// NewStore creates a store backed by the given persistence collaborator,
// loading whatever it holds. Absent or malformed data is treated as empty
// and the default folder is seeded.
func NewStore(st storage.Store) *Store {
	s := &Store{storage: st}
	s.load()
	return s
}

func (s *Store) load() {
	if raw, ok, err := s.storage.Get(FoldersKey); err != nil {
		log.Printf("Failed to read stored folders, starting empty: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.folders); err != nil {
			log.Printf("Ignoring malformed folder data: %v", err)
			s.folders = nil
		}
	}
	if raw, ok, err := s.storage.Get(CardsKey); err != nil {
		log.Printf("Failed to read stored cards, starting empty: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.cards); err != nil {
			log.Printf("Ignoring malformed card data: %v", err)
			s.cards = nil
		}
	}

	if len(s.folders) == 0 {
		s.folders = []models.Folder{{
			ID:          DefaultFolderID,
			Name:        "Bộ từ mẫu N3",
			Description: "Chữ Hán căn bản",
		}}
		s.persistLocked()
	}
}

// persistLocked writes both collections to storage. Failures are logged,
// not propagated: the app keeps running on its in-memory state.
func (s *Store) persistLocked() {
	folders, err := json.Marshal(s.folders)
	if err == nil {
		err = s.storage.Set(FoldersKey, string(folders))
	}
	if err != nil {
		log.Printf("Failed to persist folders: %v", err)
	}

	cards, err := json.Marshal(s.cards)
	if err == nil {
		err = s.storage.Set(CardsKey, string(cards))
	}
	if err != nil {
		log.Printf("Failed to persist cards: %v", err)
	}
}

// Folders returns all folders in creation order
func (s *Store) Folders() []models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

// FolderByID returns the folder with the given id
func (s *Store) FolderByID(id string) (models.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.folders {
		if f.ID == id {
			return f, true
		}
	}
	return models.Folder{}, false
}

// AddFolder creates a folder with a fresh unique id
func (s *Store) AddFolder(name, description string) (models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Folder{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder := models.Folder{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	s.folders = append(s.folders, folder)
	s.persistLocked()
	return folder, nil
}

// DeleteFolder removes a folder and cascades to every card in it.
// The protected default folder is refused.
func (s *Store) DeleteFolder(id string) error {
	if id == DefaultFolderID {
		return ErrProtectedFolder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.folders[:0]
	for _, f := range s.folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.folders = kept
	s.clearFolderLocked(id)
	s.persistLocked()
	return nil
}

// AddCard creates a card after enforcing the store invariants: non-empty
// trimmed fields, an existing folder, and per-folder term uniqueness
// (case-insensitive, trimmed).
func (s *Store) AddCard(term, definition, folderID string) (models.Card, error) {
	term = strings.TrimSpace(term)
	definition = strings.TrimSpace(definition)
	if term == "" || definition == "" {
		return models.Card{}, ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.folderExistsLocked(folderID) {
		return models.Card{}, ErrFolderNotFound
	}
	if s.termExistsLocked(term, folderID) {
		return models.Card{}, ErrDuplicateTerm
	}

	card := models.Card{
		ID:         uuid.NewString(),
		Term:       term,
		Definition: definition,
		FolderID:   folderID,
	}
	s.cards = append(s.cards, card)
	s.persistLocked()
	return card, nil
}

// DeleteCard removes a card; a missing id is a no-op
func (s *Store) DeleteCard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cards[:0]
	for _, c := range s.cards {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.cards = kept
	s.persistLocked()
}

// ClearFolder removes every card in the folder
func (s *Store) ClearFolder(folderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearFolderLocked(folderID)
	s.persistLocked()
}

func (s *Store) clearFolderLocked(folderID string) {
	kept := s.cards[:0]
	for _, c := range s.cards {
		if c.FolderID != folderID {
			kept = append(kept, c)
		}
	}
	s.cards = kept
}

// CardsInFolder returns the folder's cards in insertion order
func (s *Store) CardsInFolder(folderID string) []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardsInFolderLocked(folderID)
}

func (s *Store) cardsInFolderLocked(folderID string) []models.Card {
	var out []models.Card
	for _, c := range s.cards {
		if c.FolderID == folderID {
			out = append(out, c)
		}
	}
	return out
}

// Search returns the folder's cards whose term or definition contains the
// query, case-insensitively. An empty query returns the whole folder.
// The result is recomputed from the live collection on every call.
func (s *Store) Search(folderID, query string) []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.cardsInFolderLocked(folderID)
	}

	var out []models.Card
	for _, c := range s.cards {
		if c.FolderID != folderID {
			continue
		}
		if strings.Contains(strings.ToLower(c.Term), query) ||
			strings.Contains(strings.ToLower(c.Definition), query) {
			out = append(out, c)
		}
	}
	return out
}

// CardCount returns the number of cards in the folder
func (s *Store) CardCount(folderID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, c := range s.cards {
		if c.FolderID == folderID {
			count++
		}
	}
	return count
}

// Snapshot returns copies of both collections, for backup
func (s *Store) Snapshot() ([]models.Folder, []models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	folders := make([]models.Folder, len(s.folders))
	copy(folders, s.folders)
	cards := make([]models.Card, len(s.cards))
	copy(cards, s.cards)
	return folders, cards
}

// Replace swaps in restored collections wholesale, dropping cards that
// reference no folder. Used by backup import; normal mutation goes through
// AddFolder/AddCard.
func (s *Store) Replace(folders []models.Folder, cards []models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.folders = folders
	if len(s.folders) == 0 {
		s.folders = []models.Folder{{
			ID:          DefaultFolderID,
			Name:        "Bộ từ mẫu N3",
			Description: "Chữ Hán căn bản",
		}}
	}

	s.cards = nil
	for _, c := range cards {
		if s.folderExistsLocked(c.FolderID) {
			s.cards = append(s.cards, c)
		}
	}
	s.persistLocked()
}

func (s *Store) folderExistsLocked(id string) bool {
	for _, f := range s.folders {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) termExistsLocked(term, folderID string) bool {
	term = strings.ToLower(term)
	for _, c := range s.cards {
		if c.FolderID == folderID && strings.ToLower(strings.TrimSpace(c.Term)) == term {
			return true
		}
	}
	return false
}
