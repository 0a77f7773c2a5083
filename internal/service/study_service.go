package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"vocabdeck/internal/deck"
	"vocabdeck/internal/models"
	"vocabdeck/internal/study"
)

// ErrNoSession is returned when an operation needs a session that isn't running
var ErrNoSession = errors.New("no active study session")

// recallAdvanceDelay is how long a correct typed answer stays on screen
// before the navigator moves on
const recallAdvanceDelay = time.Second

// Pronouncer is the fire-and-forget speech collaborator
type Pronouncer interface {
	Speak(text string)
	Cancel()
}

// StudyService owns at most one live session per study mode. Sessions are
// built from a snapshot of the active folder and discarded wholesale on
// mode switch, folder switch, or any edit to the underlying cards.
type StudyService struct {
	store   *deck.Store
	speaker Pronouncer
	rng     *rand.Rand

	mu        sync.Mutex
	folderID  string
	nav       *study.Navigator
	quiz      *study.QuizSession
	match     *study.MatchSession
	recallGen int
}

// NewStudyService creates a study service over the given card store
func NewStudyService(store *deck.Store, speaker Pronouncer, rng *rand.Rand) *StudyService {
	return &StudyService{
		store:   store,
		speaker: speaker,
		rng:     rng,
	}
}

// EnterFolder makes folderID the active folder, discarding every session
// built from the previous one
func (s *StudyService) EnterFolder(folderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderID = folderID
	s.discardAllLocked()
}

// ActiveFolder returns the folder currently being studied
func (s *StudyService) ActiveFolder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folderID
}

// Invalidate discards sessions built over folderID. Card and folder edits
// call this so no session keeps indices into a collection that changed
// under it.
func (s *StudyService) Invalidate(folderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.folderID == folderID {
		s.discardAllLocked()
	}
}

func (s *StudyService) discardAllLocked() {
	if s.nav != nil {
		s.nav.Close()
		s.nav = nil
	}
	if s.quiz != nil {
		s.quiz.Reset()
		s.quiz = nil
	}
	if s.match != nil {
		s.match.Cancel()
		s.match = nil
	}
	s.recallGen++
	s.speaker.Cancel()
}

// Navigator returns the flashcard navigator for the active folder,
// creating it on first use
func (s *StudyService) Navigator() *study.Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nav == nil {
		cards := s.store.CardsInFolder(s.folderID)
		s.nav = study.NewNavigator(cards, s.rng, s.speaker.Speak)
	}
	return s.nav
}

// StartQuiz builds a fresh quiz over the active folder, discarding any
// previous quiz outright
func (s *StudyService) StartQuiz(limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz != nil {
		s.quiz.Reset()
		s.quiz = nil
	}

	cards := s.store.CardsInFolder(s.folderID)
	quiz, err := study.NewQuizSession(cards, limit, s.rng, s.speaker.Speak)
	if err != nil {
		return err
	}
	s.quiz = quiz
	return nil
}

// Quiz returns the running quiz session, if any
func (s *StudyService) Quiz() (*study.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz, s.quiz != nil
}

// AnswerQuiz forwards a choice to the running quiz
func (s *StudyService) AnswerQuiz(choice string) error {
	s.mu.Lock()
	quiz := s.quiz
	s.mu.Unlock()
	if quiz == nil {
		return ErrNoSession
	}
	quiz.Answer(choice)
	return nil
}

// ResetQuiz discards the quiz, returning the mode to its start screen
func (s *StudyService) ResetQuiz() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz != nil {
		s.quiz.Reset()
		s.quiz = nil
	}
}

// StartMatch builds and starts a fresh matching game over the active folder
func (s *StudyService) StartMatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.match != nil {
		s.match.Cancel()
		s.match = nil
	}

	cards := s.store.CardsInFolder(s.folderID)
	match, err := study.NewMatchSession(cards, s.rng, s.speaker.Speak)
	if err != nil {
		return err
	}
	match.StartClock()
	s.match = match
	return nil
}

// Match returns the running match session, if any
func (s *StudyService) Match() (*study.MatchSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match, s.match != nil
}

// SelectMatchTile forwards a tile selection to the running game
func (s *StudyService) SelectMatchTile(idx int) (study.SelectOutcome, error) {
	s.mu.Lock()
	match := s.match
	s.mu.Unlock()
	if match == nil {
		return study.SelectIgnored, ErrNoSession
	}
	return match.SelectTile(idx), nil
}

// CancelMatch abandons the running game
func (s *StudyService) CancelMatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match != nil {
		s.match.Cancel()
		s.match = nil
	}
}

// CheckRecall evaluates a typed answer against the navigator's current
// card. A correct answer is pronounced and, after a short delay, the
// navigator advances; an incorrect answer surfaces the definition and
// stays put.
func (s *StudyService) CheckRecall(input string) (study.RecallResult, models.Card, error) {
	nav := s.Navigator()
	card, ok := nav.Current()
	if !ok {
		return study.RecallResult{}, models.Card{}, ErrNoSession
	}

	result := study.CheckRecall(input, card.Definition)
	if result.Correct {
		s.speaker.Speak(card.Term)

		s.mu.Lock()
		gen := s.recallGen
		s.mu.Unlock()
		time.AfterFunc(recallAdvanceDelay, func() {
			s.advanceRecall(gen, nav)
		})
	}
	return result, card, nil
}

// advanceRecall moves the navigator on after a correct typed answer,
// unless the sessions were invalidated in the meantime
func (s *StudyService) advanceRecall(gen int, nav *study.Navigator) {
	s.mu.Lock()
	stale := gen != s.recallGen || s.nav != nav
	s.mu.Unlock()
	if !stale {
		nav.Next()
	}
}
