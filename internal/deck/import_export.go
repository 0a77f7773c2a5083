package deck

import (
	"strings"

	"github.com/google/uuid"

	"vocabdeck/internal/models"
)

// ExportDelimiter is the separator used when serializing cards for export
const ExportDelimiter = " | "

// splitLine splits an import line into term and definition. The pipe wins
// over the dash when a line contains both, so exported data (which always
// uses pipes) round-trips even when a definition contains a dash.
func splitLine(line string) (term, definition string, ok bool) {
	var parts []string
	if strings.Contains(line, "|") {
		parts = strings.SplitN(line, "|", 2)
	} else if strings.Contains(line, "-") {
		parts = strings.SplitN(line, "-", 2)
	} else {
		return "", "", false
	}

	term = strings.TrimSpace(parts[0])
	definition = strings.TrimSpace(parts[1])
	if term == "" || definition == "" {
		return "", "", false
	}
	return term, definition, true
}

// BulkImport adds one card per well-formed line of rawText. Lines are
// `term|definition` (or `term-definition`); blank and malformed lines are
// skipped and counted, duplicates are counted separately. Partial success
// is reported, never rolled back.
func (s *Store) BulkImport(rawText, folderID string) (models.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.folderExistsLocked(folderID) {
		return models.ImportResult{}, ErrFolderNotFound
	}

	var result models.ImportResult
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}

		term, definition, ok := splitLine(line)
		if !ok {
			result.Skipped++
			continue
		}
		if s.termExistsLocked(term, folderID) {
			result.Duplicates++
			continue
		}

		s.cards = append(s.cards, models.Card{
			ID:         uuid.NewString(),
			Term:       term,
			Definition: definition,
			FolderID:   folderID,
		})
		result.Imported++
	}

	if result.Imported > 0 {
		s.persistLocked()
	}
	return result, nil
}

// ExportFolder serializes the folder's cards as "term | definition" lines
// in current store order
func (s *Store) ExportFolder(folderID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []string
	for _, c := range s.cards {
		if c.FolderID == folderID {
			lines = append(lines, c.Term+ExportDelimiter+c.Definition)
		}
	}
	return strings.Join(lines, "\n")
}
