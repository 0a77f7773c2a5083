package models

// Folder is a named grouping of cards; the unit of study-session scoping
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc,omitempty"`
}

// Card is a term/definition pair belonging to exactly one folder
type Card struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	FolderID   string `json:"folderId"`
}

// QuizQuestion pairs a sampled card with its shuffled answer choices.
// Choices always contains the card's definition exactly once.
type QuizQuestion struct {
	Card    Card
	Choices []string
}

// TileKind distinguishes the two faces a card contributes to the match grid
type TileKind string

const (
	TileTerm       TileKind = "term"
	TileDefinition TileKind = "definition"
)

// MatchTile is one half of a card placed into the matching-game grid
type MatchTile struct {
	CardID  string
	Text    string
	Kind    TileKind
	Matched bool
}

// ImportResult reports the outcome of a bulk import. Malformed lines are
// skipped, duplicate terms are counted separately; neither aborts the import.
type ImportResult struct {
	Imported   int
	Skipped    int
	Duplicates int
}
