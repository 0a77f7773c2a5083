package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"vocabdeck/internal/models"
	"vocabdeck/internal/service"
	"vocabdeck/internal/study"
)

// AudioNamer maps a term to its cached pronunciation file name
type AudioNamer interface {
	Filename(text string) string
}

// StudyHandler handles the four study mode HTTP flows
type StudyHandler struct {
	deckService  *service.DeckService
	studyService *service.StudyService
	audio        AudioNamer
	templates    *template.Template
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(deckService *service.DeckService, studyService *service.StudyService, audio AudioNamer, templates *template.Template) *StudyHandler {
	return &StudyHandler{
		deckService:  deckService,
		studyService: studyService,
		audio:        audio,
		templates:    templates,
	}
}

// folder resolves the folder from the path, entering it as the active
// study folder when it isn't already
func (h *StudyHandler) folder(w http.ResponseWriter, r *http.Request) (models.Folder, bool) {
	folderID := r.PathValue("id")

	folder, ok := h.deckService.FolderByID(folderID)
	if !ok {
		http.NotFound(w, r)
		return models.Folder{}, false
	}

	if h.studyService.ActiveFolder() != folderID {
		h.studyService.EnterFolder(folderID)
	}
	return folder, true
}

// --- Flashcards ---

// ShowFlashcards shows the flip-card view for a folder
func (h *StudyHandler) ShowFlashcards(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.renderFlashcards(w, folder)
}

// FlashcardNext advances to the next card
func (h *StudyHandler) FlashcardNext(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.studyService.Navigator().Next()
	h.renderFlashcards(w, folder)
}

// FlashcardPrevious moves back to the previous card
func (h *StudyHandler) FlashcardPrevious(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.studyService.Navigator().Previous()
	h.renderFlashcards(w, folder)
}

// FlashcardFlip flips the current card over
func (h *StudyHandler) FlashcardFlip(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.studyService.Navigator().ToggleFlip()
	h.renderFlashcards(w, folder)
}

// FlashcardShuffle toggles between shuffled and insertion order
func (h *StudyHandler) FlashcardShuffle(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.studyService.Navigator().ToggleShuffle()
	h.renderFlashcards(w, folder)
}

// FlashcardSwipe applies a horizontal swipe distance reported by the client
func (h *StudyHandler) FlashcardSwipe(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}

	distance, err := strconv.ParseFloat(r.FormValue("distance"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid swipe distance", "Error parsing swipe distance", err)
		return
	}

	h.studyService.Navigator().Swipe(distance)
	h.renderFlashcards(w, folder)
}

// FlashcardAutoPlay toggles hands-free flip-and-advance playback
func (h *StudyHandler) FlashcardAutoPlay(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}

	nav := h.studyService.Navigator()
	if nav.AutoPlaying() {
		nav.StopAutoPlay()
	} else {
		nav.StartAutoPlay()
	}
	h.renderFlashcards(w, folder)
}

func (h *StudyHandler) renderFlashcards(w http.ResponseWriter, folder models.Folder) {
	nav := h.studyService.Navigator()

	data := FlashcardViewData{
		Title:       folder.Name,
		Folder:      folder,
		Index:       nav.Index() + 1,
		Total:       nav.Length(),
		Flipped:     nav.IsFlipped(),
		Shuffled:    nav.IsShuffled(),
		AutoPlaying: nav.AutoPlaying(),
	}

	card, ok := nav.Current()
	if !ok {
		data.Empty = true
	} else {
		data.Card = card
		data.AudioFile = h.audio.Filename(card.Term)
	}

	if err := h.templates.ExecuteTemplate(w, "flashcards.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering flashcards", err)
	}
}

// --- Quiz ---

// ShowQuiz shows the quiz start screen, or the running quiz if one exists
func (h *StudyHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.renderQuiz(w, folder, "")
}

// StartQuiz starts a quiz with the requested question count (0 means all)
func (h *StudyHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.FormValue("count"); v != "" && v != "all" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid question count", "Error parsing quiz count", err)
			return
		}
		limit = n
	}

	if err := h.studyService.StartQuiz(limit); err != nil {
		if errors.Is(err, study.ErrInsufficientCards) {
			h.renderQuiz(w, folder, "At least 4 cards are needed for a quiz")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to start quiz", "Error starting quiz", err)
		return
	}

	h.renderQuiz(w, folder, "")
}

// AnswerQuiz records the selected choice for the current question
func (h *StudyHandler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}

	if err := h.studyService.AnswerQuiz(r.FormValue("choice")); err != nil {
		h.renderQuiz(w, folder, "The quiz is no longer running")
		return
	}
	h.renderQuiz(w, folder, "")
}

// ResetQuiz abandons the quiz and returns to the start screen
func (h *StudyHandler) ResetQuiz(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.studyService.ResetQuiz()
	h.renderQuiz(w, folder, "")
}

func (h *StudyHandler) renderQuiz(w http.ResponseWriter, folder models.Folder, errMsg string) {
	data := QuizViewData{
		Title:     folder.Name,
		Folder:    folder,
		CardCount: h.deckService.CardCount(folder.ID),
		Error:     errMsg,
	}

	if quiz, running := h.studyService.Quiz(); running {
		data.Started = true
		data.Finished = quiz.Finished()
		data.Index = quiz.Index() + 1
		data.Total = quiz.Total()
		data.Score = quiz.Score()

		if q, ok := quiz.Question(); ok {
			data.Question = &q
		}
		if selected, answered := quiz.Selected(); answered {
			data.Selected = selected
			data.Answered = true
		}
	}

	if err := h.templates.ExecuteTemplate(w, "quiz.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering quiz", err)
	}
}

// --- Match ---

// ShowMatch shows the matching game start screen, or the board if running
func (h *StudyHandler) ShowMatch(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.renderMatch(w, folder, "")
}

// StartMatch starts a fresh matching game over the folder
func (h *StudyHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}

	if err := h.studyService.StartMatch(); err != nil {
		if errors.Is(err, study.ErrInsufficientCards) {
			h.renderMatch(w, folder, "At least 3 cards are needed to play")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to start game", "Error starting match game", err)
		return
	}

	h.renderMatch(w, folder, "")
}

// SelectMatchTile applies a tile selection on the board
func (h *StudyHandler) SelectMatchTile(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}

	idx, err := strconv.Atoi(r.FormValue("tile"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid tile", "Error parsing tile index", err)
		return
	}

	if _, err := h.studyService.SelectMatchTile(idx); err != nil {
		h.renderMatch(w, folder, "The game is no longer running")
		return
	}
	h.renderMatch(w, folder, "")
}

// CancelMatch abandons the game and returns to the start screen
func (h *StudyHandler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.studyService.CancelMatch()
	h.renderMatch(w, folder, "")
}

func (h *StudyHandler) renderMatch(w http.ResponseWriter, folder models.Folder, errMsg string) {
	data := MatchViewData{
		Title:  folder.Name,
		Folder: folder,
		Held:   -1,
		Error:  errMsg,
	}

	if match, running := h.studyService.Match(); running {
		data.Started = true
		data.Complete = match.Complete()
		data.Tiles = match.Tiles()
		data.Held = match.Held()
		data.Elapsed = match.Elapsed()
	}

	if err := h.templates.ExecuteTemplate(w, "match.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering match game", err)
	}
}

// --- Typed recall ---

// ShowRecall shows the typed recall view for the navigator's current card
func (h *StudyHandler) ShowRecall(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}
	h.renderRecall(w, folder, nil)
}

// SubmitRecall checks a typed answer against the current card's definition
func (h *StudyHandler) SubmitRecall(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.folder(w, r)
	if !ok {
		return
	}

	result, _, err := h.studyService.CheckRecall(r.FormValue("answer"))
	if err != nil {
		h.renderRecall(w, folder, nil)
		return
	}
	h.renderRecall(w, folder, &result)
}

func (h *StudyHandler) renderRecall(w http.ResponseWriter, folder models.Folder, feedback *study.RecallResult) {
	nav := h.studyService.Navigator()

	data := RecallViewData{
		Title:    folder.Name,
		Folder:   folder,
		Index:    nav.Index() + 1,
		Total:    nav.Length(),
		Feedback: feedback,
	}

	card, ok := nav.Current()
	if !ok {
		data.Empty = true
	} else {
		data.Card = card
	}

	if err := h.templates.ExecuteTemplate(w, "recall.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering recall view", err)
	}
}
