package handlers

import (
	"vocabdeck/internal/models"
	"vocabdeck/internal/study"
)

type FolderSummary struct {
	models.Folder
	CardCount int
}

type FolderListViewData struct {
	Title   string
	Folders []FolderSummary
	Error   string
}

type EditViewData struct {
	Title        string
	Folder       models.Folder
	Cards        []models.Card
	Query        string
	Error        string
	ImportResult *models.ImportResult
}

type FlashcardViewData struct {
	Title       string
	Folder      models.Folder
	Card        models.Card
	Index       int
	Total       int
	Flipped     bool
	Shuffled    bool
	AutoPlaying bool
	AudioFile   string
	Empty       bool
}

type QuizViewData struct {
	Title     string
	Folder    models.Folder
	CardCount int
	Started   bool
	Finished  bool
	Question  *models.QuizQuestion
	Index     int
	Total     int
	Score     int
	Selected  string
	Answered  bool
	Error     string
}

type MatchViewData struct {
	Title    string
	Folder   models.Folder
	Started  bool
	Complete bool
	Tiles    []models.MatchTile
	Held     int
	Elapsed  int
	Error    string
}

type RecallViewData struct {
	Title    string
	Folder   models.Folder
	Card     models.Card
	Index    int
	Total    int
	Feedback *study.RecallResult
	Empty    bool
}
