package selection

import (
	"math/rand"
	"testing"

	"vocabdeck/internal/models"
)

func testCards(n int) []models.Card {
	cards := make([]models.Card, n)
	for i := range cards {
		cards[i] = models.Card{
			ID:         string(rune('a' + i)),
			Term:       "term" + string(rune('a'+i)),
			Definition: "def" + string(rune('a'+i)),
		}
	}
	return cards
}

func TestShuffleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cards := testCards(10)

	shuffled := Shuffle(rng, cards)
	if len(shuffled) != len(cards) {
		t.Fatalf("Shuffle() returned %d cards, want %d", len(shuffled), len(cards))
	}

	seen := make(map[string]int)
	for _, c := range shuffled {
		seen[c.ID]++
	}
	for _, c := range cards {
		if seen[c.ID] != 1 {
			t.Errorf("card %s appears %d times after shuffle, want 1", c.ID, seen[c.ID])
		}
	}
}

func TestShuffleDoesNotModifyInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cards := testCards(8)
	original := make([]models.Card, len(cards))
	copy(original, cards)

	Shuffle(rng, cards)

	for i := range cards {
		if cards[i].ID != original[i].ID {
			t.Fatal("Shuffle() modified its input slice")
		}
	}
}

func TestShuffleReachesMultipleOrders(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cards := testCards(5)

	orders := make(map[string]bool)
	for i := 0; i < 200; i++ {
		var key string
		for _, c := range Shuffle(rng, cards) {
			key += c.ID
		}
		orders[key] = true
	}

	// 5! = 120 orderings; a fair shuffle hits a large share in 200 draws
	if len(orders) < 50 {
		t.Errorf("saw only %d distinct orderings in 200 shuffles", len(orders))
	}
}

func TestSample(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		n       int
		wantLen int
	}{
		{name: "subset", total: 10, n: 4, wantLen: 4},
		{name: "request all", total: 6, n: 6, wantLen: 6},
		{name: "request more than available clamps", total: 3, n: 10, wantLen: 3},
		{name: "zero", total: 5, n: 0, wantLen: 0},
		{name: "empty input", total: 0, n: 4, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(3))
			result := Sample(rng, testCards(tt.total), tt.n)
			if len(result) != tt.wantLen {
				t.Errorf("Sample() returned %d cards, want %d", len(result), tt.wantLen)
			}

			seen := make(map[string]bool)
			for _, c := range result {
				if seen[c.ID] {
					t.Errorf("Sample() returned card %s twice", c.ID)
				}
				seen[c.ID] = true
			}
		})
	}
}

func TestDistractors(t *testing.T) {
	cards := testCards(10)

	t.Run("excludes the target card", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		for i := 0; i < 50; i++ {
			for _, d := range Distractors(rng, cards, "a", 3) {
				if d == "defa" {
					t.Fatal("Distractors() included the excluded card's definition")
				}
			}
		}
	})

	t.Run("returns k when enough cards", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		if got := len(Distractors(rng, cards, "a", 3)); got != 3 {
			t.Errorf("Distractors() returned %d, want 3", got)
		}
	})

	t.Run("small folder yields fewer", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		small := testCards(3)
		if got := len(Distractors(rng, small, "a", 3)); got != 2 {
			t.Errorf("Distractors() returned %d, want 2", got)
		}
	})
}

func TestChoiceSet(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	distractors := []string{"dog", "bird", "fish"}

	t.Run("contains correct exactly once", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			choices := ChoiceSet(rng, "cat", distractors)
			if len(choices) != 4 {
				t.Fatalf("ChoiceSet() length = %d, want 4", len(choices))
			}
			count := 0
			for _, c := range choices {
				if c == "cat" {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("correct answer appears %d times, want 1", count)
			}
		}
	})

	t.Run("position varies", func(t *testing.T) {
		positions := make(map[int]bool)
		for i := 0; i < 100; i++ {
			for pos, c := range ChoiceSet(rng, "cat", distractors) {
				if c == "cat" {
					positions[pos] = true
				}
			}
		}
		if len(positions) < 4 {
			t.Errorf("correct answer only seen at %d positions in 100 draws", len(positions))
		}
	})
}
