package study

import (
	"math/rand"
	"testing"
	"time"

	"vocabdeck/internal/models"
)

func navCards(n int) []models.Card {
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

func TestNavigatorCycles(t *testing.T) {
	nav := NewNavigator(navCards(4), rand.New(rand.NewSource(1)), nil)

	// next applied length times returns to the start
	for i := 0; i < 4; i++ {
		nav.Next()
	}
	if nav.Index() != 0 {
		t.Errorf("index after %d Next() = %d, want 0", 4, nav.Index())
	}

	// previous is the exact inverse of next
	nav.Next()
	nav.Previous()
	if nav.Index() != 0 {
		t.Errorf("Next() then Previous() left index at %d, want 0", nav.Index())
	}

	nav.Previous()
	if nav.Index() != 3 {
		t.Errorf("Previous() from 0 wrapped to %d, want 3", nav.Index())
	}
}

func TestNavigatorEmptyIsNoOp(t *testing.T) {
	nav := NewNavigator(nil, rand.New(rand.NewSource(1)), nil)

	nav.Next()
	nav.Previous()
	nav.ToggleFlip()

	if nav.Index() != 0 {
		t.Errorf("empty navigator index = %d, want 0", nav.Index())
	}
	if _, ok := nav.Current(); ok {
		t.Error("Current() on empty navigator should report no card")
	}
}

func TestNavigatorFlipPronouncesOnRevealOnly(t *testing.T) {
	var spoken []string
	nav := NewNavigator(navCards(3), rand.New(rand.NewSource(1)), func(text string) {
		spoken = append(spoken, text)
	})

	nav.ToggleFlip() // reveal
	nav.ToggleFlip() // hide
	nav.ToggleFlip() // reveal again

	if len(spoken) != 2 {
		t.Fatalf("pronounced %d times across 3 flips, want 2 (reveals only)", len(spoken))
	}
	if spoken[0] != "terma" {
		t.Errorf("pronounced %q, want the current card's term", spoken[0])
	}
}

func TestNavigatorNextUnflips(t *testing.T) {
	nav := NewNavigator(navCards(3), rand.New(rand.NewSource(1)), nil)

	nav.ToggleFlip()
	nav.Next()
	if nav.IsFlipped() {
		t.Error("Next() should show the term face")
	}

	nav.ToggleFlip()
	nav.Previous()
	if nav.IsFlipped() {
		t.Error("Previous() should show the term face")
	}
}

func TestNavigatorShuffle(t *testing.T) {
	cards := navCards(20)
	nav := NewNavigator(cards, rand.New(rand.NewSource(5)), nil)
	nav.Next()
	nav.Next()

	nav.ToggleShuffle()
	if !nav.IsShuffled() {
		t.Fatal("ToggleShuffle() should enable shuffle")
	}
	if nav.Index() != 0 {
		t.Errorf("shuffle should reset index, got %d", nav.Index())
	}
	if nav.Length() != len(cards) {
		t.Errorf("shuffled order has %d cards, want %d", nav.Length(), len(cards))
	}

	nav.ToggleShuffle()
	if nav.IsShuffled() {
		t.Fatal("second ToggleShuffle() should disable shuffle")
	}
	current, _ := nav.Current()
	if current.ID != cards[0].ID {
		t.Errorf("disabling shuffle should restore insertion order, first card = %s", current.ID)
	}
}

func TestResolveSwipe(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     SwipeAction
	}{
		{name: "long drag left", distance: 120, want: SwipeNext},
		{name: "long drag right", distance: -95, want: SwipePrevious},
		{name: "below threshold", distance: 69, want: SwipeNone},
		{name: "below threshold negative", distance: -70, want: SwipeNone},
		{name: "exactly threshold", distance: 70, want: SwipeNone},
		{name: "no movement", distance: 0, want: SwipeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSwipe(tt.distance); got != tt.want {
				t.Errorf("ResolveSwipe(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}
}

func TestNavigatorSwipeBelowThresholdDoesNotMove(t *testing.T) {
	nav := NewNavigator(navCards(4), rand.New(rand.NewSource(1)), nil)

	if action := nav.Swipe(30); action != SwipeNone {
		t.Errorf("Swipe(30) = %v, want SwipeNone", action)
	}
	if nav.Index() != 0 {
		t.Errorf("below-threshold swipe moved index to %d", nav.Index())
	}

	if action := nav.Swipe(200); action != SwipeNext {
		t.Errorf("Swipe(200) = %v, want SwipeNext", action)
	}
	if nav.Index() != 1 {
		t.Errorf("swipe next left index at %d, want 1", nav.Index())
	}
}

func TestNavigatorAutoPlay(t *testing.T) {
	var scheduled []func()
	var spoken []string
	nav := NewNavigator(navCards(3), rand.New(rand.NewSource(1)), func(text string) {
		spoken = append(spoken, text)
	})
	nav.schedule = func(d time.Duration, f func()) {
		scheduled = append(scheduled, f)
	}

	nav.StartAutoPlay()
	if len(scheduled) != 1 {
		t.Fatalf("StartAutoPlay() scheduled %d callbacks, want 1", len(scheduled))
	}

	// first tick flips and pronounces
	scheduled[0]()
	if !nav.IsFlipped() {
		t.Error("first auto step should flip the card")
	}
	if len(spoken) != 1 || spoken[0] != "terma" {
		t.Errorf("first auto step spoke %v, want the current term", spoken)
	}

	// second tick advances and unflips
	scheduled[1]()
	if nav.Index() != 1 || nav.IsFlipped() {
		t.Errorf("second auto step left index=%d flipped=%v, want 1/false", nav.Index(), nav.IsFlipped())
	}
}

func TestNavigatorAutoPlayCancelledByInteraction(t *testing.T) {
	var scheduled []func()
	nav := NewNavigator(navCards(3), rand.New(rand.NewSource(1)), nil)
	nav.schedule = func(d time.Duration, f func()) {
		scheduled = append(scheduled, f)
	}

	nav.StartAutoPlay()
	nav.Next() // manual interaction cancels auto-play

	if nav.AutoPlaying() {
		t.Fatal("manual Next() should cancel auto-play")
	}

	// the stale callback must be inert
	indexBefore := nav.Index()
	scheduled[0]()
	if nav.Index() != indexBefore || nav.IsFlipped() {
		t.Error("stale auto-play callback mutated the navigator")
	}
	if len(scheduled) != 1 {
		t.Errorf("stale callback rescheduled itself, %d callbacks", len(scheduled))
	}
}
