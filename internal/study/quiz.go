package study

import (
	"math/rand"
	"sync"
	"time"

	"vocabdeck/internal/models"
	"vocabdeck/internal/selection"
)

const (
	// QuizMinimumCards is the smallest folder a quiz can be built from:
	// one correct definition plus three distractors per question
	QuizMinimumCards = 4

	// quizDistractors is the number of wrong choices per question
	quizDistractors = 3

	// quizAdvanceDelay is how long an answered question stays on screen
	quizAdvanceDelay = time.Second
)

// QuizSession is the multiple-choice quiz state machine. It is built once
// from a folder snapshot and walked question by question; a finished
// session's score never changes.
type QuizSession struct {
	mu        sync.Mutex
	questions []models.QuizQuestion
	index     int
	score     int
	selected  string
	answered  bool
	finished  bool
	gen       int
	speak     func(text string)
	schedule  scheduleFunc
}

// NewQuizSession samples min(limit, len(folderCards)) cards and builds a
// 4-choice question for each; a limit of zero or less takes every card.
// Distractors are drawn from the whole folder,
// not just the sampled pool, so small quizzes over large folders still
// offer varied wrong answers.
func NewQuizSession(folderCards []models.Card, limit int, rng *rand.Rand, speak func(string)) (*QuizSession, error) {
	if len(folderCards) < QuizMinimumCards {
		return nil, ErrInsufficientCards
	}
	if speak == nil {
		speak = func(string) {}
	}

	// A non-positive limit means the whole folder
	if limit <= 0 || limit > len(folderCards) {
		limit = len(folderCards)
	}

	selected := selection.Sample(rng, folderCards, limit)
	questions := make([]models.QuizQuestion, len(selected))
	for i, card := range selected {
		distractors := selection.Distractors(rng, folderCards, card.ID, quizDistractors)
		questions[i] = models.QuizQuestion{
			Card:    card,
			Choices: selection.ChoiceSet(rng, card.Definition, distractors),
		}
	}

	return &QuizSession{
		questions: questions,
		speak:     speak,
		schedule:  defaultSchedule,
	}, nil
}

// Question returns the question under the cursor
func (q *QuizSession) Question() (models.QuizQuestion, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.finished || q.index >= len(q.questions) {
		return models.QuizQuestion{}, false
	}
	return q.questions[q.index], true
}

// Index returns the zero-based position of the current question
func (q *QuizSession) Index() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.index
}

// Total returns the number of questions in the pool
func (q *QuizSession) Total() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.questions)
}

// Score returns the running (or, once finished, final) score
func (q *QuizSession) Score() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.score
}

// Finished reports whether the session has reached its terminal state
func (q *QuizSession) Finished() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.finished
}

// Selected returns the pending answer for the current question, if any
func (q *QuizSession) Selected() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.selected, q.answered
}

// Answer records the user's choice for the current question. A second
// answer while one is pending is ignored, so a correct answer can never
// be scored twice. After a short delay the session advances, or finishes
// on the last question.
func (q *QuizSession) Answer(choice string) bool {
	q.mu.Lock()
	if q.finished || q.answered || q.index >= len(q.questions) {
		q.mu.Unlock()
		return false
	}

	q.selected = choice
	q.answered = true

	question := q.questions[q.index]
	correct := choice == question.Card.Definition
	if correct {
		q.score++
	}

	gen := q.gen
	q.schedule(quizAdvanceDelay, func() {
		q.advance(gen)
	})
	q.mu.Unlock()

	if correct {
		q.speak(question.Card.Term)
	}
	return true
}

// advance moves to the next question or finishes the session. A stale
// generation means the session was reset after scheduling; do nothing.
func (q *QuizSession) advance(gen int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if gen != q.gen || q.finished {
		return
	}

	if q.index < len(q.questions)-1 {
		q.index++
		q.selected = ""
		q.answered = false
	} else {
		q.finished = true
	}
}

// Reset discards the pool and renders any scheduled advance inert. The
// owner drops the session afterwards; starting over means a new session.
func (q *QuizSession) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.gen++
	q.questions = nil
	q.finished = true
}
