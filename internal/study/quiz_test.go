package study

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"vocabdeck/internal/models"
)

func quizCards() []models.Card {
	return []models.Card{
		{ID: "1", Term: "猫", Definition: "cat", FolderID: "f"},
		{ID: "2", Term: "犬", Definition: "dog", FolderID: "f"},
		{ID: "3", Term: "鳥", Definition: "bird", FolderID: "f"},
		{ID: "4", Term: "魚", Definition: "fish", FolderID: "f"},
	}
}

// syncQuiz builds a session whose advance delay fires immediately
func syncQuiz(t *testing.T, cards []models.Card, limit int, speak func(string)) *QuizSession {
	t.Helper()
	q, err := NewQuizSession(cards, limit, rand.New(rand.NewSource(21)), speak)
	if err != nil {
		t.Fatalf("NewQuizSession() error = %v", err)
	}
	q.schedule = func(d time.Duration, f func()) { f() }
	return q
}

func TestNewQuizSessionRequiresFourCards(t *testing.T) {
	_, err := NewQuizSession(quizCards()[:3], 3, rand.New(rand.NewSource(1)), nil)
	if !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("NewQuizSession() with 3 cards error = %v, want ErrInsufficientCards", err)
	}
}

func TestNewQuizSessionClampsLimit(t *testing.T) {
	q, err := NewQuizSession(quizCards(), 10, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("NewQuizSession() error = %v", err)
	}
	if q.Total() != 4 {
		t.Errorf("Total() = %d, want limit clamped to 4", q.Total())
	}
}

func TestNewQuizSessionZeroLimitTakesWholeFolder(t *testing.T) {
	q, err := NewQuizSession(quizCards(), 0, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("NewQuizSession() error = %v", err)
	}
	if q.Total() != 4 {
		t.Fatalf("Total() = %d, want every card in the folder", q.Total())
	}

	question, ok := q.Question()
	if !ok {
		t.Fatal("Question() not available on a fresh whole-folder quiz")
	}
	if !q.Answer(question.Card.Definition) {
		t.Error("Answer() = false, want the first question to be answerable")
	}
}

func TestQuizChoiceSets(t *testing.T) {
	q, err := NewQuizSession(quizCards(), 4, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("NewQuizSession() error = %v", err)
	}

	for _, question := range q.questions {
		if len(question.Choices) != 4 {
			t.Fatalf("question %q has %d choices, want 4", question.Card.Term, len(question.Choices))
		}
		count := 0
		for _, c := range question.Choices {
			if c == question.Card.Definition {
				count++
			}
		}
		if count != 1 {
			t.Errorf("question %q contains its definition %d times, want exactly once", question.Card.Term, count)
		}
	}
}

func TestQuizPerfectRun(t *testing.T) {
	var spoken []string
	q := syncQuiz(t, quizCards(), 4, func(text string) { spoken = append(spoken, text) })

	for !q.Finished() {
		question, ok := q.Question()
		if !ok {
			t.Fatal("Question() returned no question before Finished()")
		}
		if !q.Answer(question.Card.Definition) {
			t.Fatal("Answer() rejected a fresh answer")
		}
	}

	if q.Score() != 4 {
		t.Errorf("final score = %d/4, want 4/4", q.Score())
	}
	if len(spoken) != 4 {
		t.Errorf("pronounced %d terms, want one per correct answer", len(spoken))
	}
}

func TestQuizWrongAnswerNotScored(t *testing.T) {
	q := syncQuiz(t, quizCards(), 1, nil)

	question, _ := q.Question()
	wrong := ""
	for _, c := range question.Choices {
		if c != question.Card.Definition {
			wrong = c
			break
		}
	}

	q.Answer(wrong)
	if q.Score() != 0 {
		t.Errorf("score after wrong answer = %d, want 0", q.Score())
	}
	if !q.Finished() {
		t.Error("single-question session should finish after its only answer")
	}
}

func TestQuizDoubleAnswerIgnored(t *testing.T) {
	// keep the delay pending so the second answer lands on the same question
	q, err := NewQuizSession(quizCards(), 2, rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatalf("NewQuizSession() error = %v", err)
	}
	var pending []func()
	q.schedule = func(d time.Duration, f func()) { pending = append(pending, f) }

	question, _ := q.Question()
	if !q.Answer(question.Card.Definition) {
		t.Fatal("first Answer() rejected")
	}
	if q.Answer(question.Card.Definition) {
		t.Error("second Answer() while pending should be ignored")
	}
	if q.Score() != 1 {
		t.Errorf("score = %d after double answer, want 1", q.Score())
	}

	pending[0]()
	if q.Index() != 1 {
		t.Errorf("index after advance = %d, want 1", q.Index())
	}
}

func TestQuizFinishedScoreIsStable(t *testing.T) {
	q := syncQuiz(t, quizCards(), 2, nil)

	for !q.Finished() {
		question, _ := q.Question()
		q.Answer(question.Card.Definition)
	}
	final := q.Score()

	if q.Answer("anything") {
		t.Error("Answer() on a finished session should be ignored")
	}
	if q.Score() != final {
		t.Errorf("score changed after Finished: %d -> %d", final, q.Score())
	}
}

func TestQuizResetRendersPendingAdvanceInert(t *testing.T) {
	q, err := NewQuizSession(quizCards(), 3, rand.New(rand.NewSource(9)), nil)
	if err != nil {
		t.Fatalf("NewQuizSession() error = %v", err)
	}
	var pending []func()
	q.schedule = func(d time.Duration, f func()) { pending = append(pending, f) }

	question, _ := q.Question()
	q.Answer(question.Card.Definition)
	q.Reset()

	pending[0]() // stale advance from before the reset
	if q.Index() != 0 {
		t.Errorf("stale advance moved index to %d after Reset()", q.Index())
	}
}

func TestQuizDistractorsDrawnFromFullFolder(t *testing.T) {
	// 12-card folder, 2-question quiz: with distractors drawn from the whole
	// folder, repeated builds must surface definitions beyond the sampled two
	cards := make([]models.Card, 12)
	for i := range cards {
		cards[i] = models.Card{
			ID:         string(rune('a' + i)),
			Term:       "t" + string(rune('a'+i)),
			Definition: "d" + string(rune('a'+i)),
		}
	}

	rng := rand.New(rand.NewSource(17))
	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		q, err := NewQuizSession(cards, 2, rng, nil)
		if err != nil {
			t.Fatalf("NewQuizSession() error = %v", err)
		}
		for _, question := range q.questions {
			for _, c := range question.Choices {
				seen[c] = true
			}
		}
	}

	if len(seen) < 8 {
		t.Errorf("distractors drew from only %d definitions across 30 sessions; expected variety from the full folder", len(seen))
	}
}
