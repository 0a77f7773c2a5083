// Package selection provides the randomized sampling primitives shared by
// the study modes: uniform shuffles, permutation-prefix sampling, and quiz
// choice-set construction. All functions are pure over their inputs and take
// an explicit rand source so tests can seed them deterministically.
package selection

import (
	"math/rand"
	"time"

	"vocabdeck/internal/models"
)

// NewRand returns a time-seeded source for production use
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a uniformly-random permutation of cards (Fisher-Yates).
// The input slice is not modified.
func Shuffle(rng *rand.Rand, cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Sample returns min(n, len(cards)) cards drawn uniformly without
// replacement, in random order
func Sample(rng *rand.Rand, cards []models.Card, n int) []models.Card {
	shuffled := Shuffle(rng, cards)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	if n < 0 {
		n = 0
	}
	return shuffled[:n]
}

// Distractors picks up to k definitions from cards, excluding the card with
// excludeID. Folders smaller than k+1 yield fewer distractors; callers that
// need a full choice set precondition on folder size instead.
func Distractors(rng *rand.Rand, cards []models.Card, excludeID string, k int) []string {
	eligible := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != excludeID {
			eligible = append(eligible, c)
		}
	}

	picked := Sample(rng, eligible, k)
	definitions := make([]string, len(picked))
	for i, c := range picked {
		definitions[i] = c.Definition
	}
	return definitions
}

// ChoiceSet shuffles the correct definition in among the distractors so its
// position is not predictable
func ChoiceSet(rng *rand.Rand, correct string, distractors []string) []string {
	choices := make([]string, 0, len(distractors)+1)
	choices = append(choices, distractors...)
	choices = append(choices, correct)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}
