package study

import (
	"math/rand"
	"sync"
	"time"

	"vocabdeck/internal/models"
	"vocabdeck/internal/selection"
)

// SwipeThreshold is the horizontal drag distance that triggers navigation
const SwipeThreshold = 70

// autoAdvanceInterval drives the hands-free study loop
const autoAdvanceInterval = 3 * time.Second

// SwipeAction is the navigation resolved from a horizontal drag
type SwipeAction int

const (
	SwipeNone SwipeAction = iota
	SwipeNext
	SwipePrevious
)

// ResolveSwipe maps a drag distance (start minus end position) to an
// action. Below-threshold drags resolve to SwipeNone and must not move
// the navigator.
func ResolveSwipe(distance float64) SwipeAction {
	switch {
	case distance > SwipeThreshold:
		return SwipeNext
	case distance < -SwipeThreshold:
		return SwipePrevious
	default:
		return SwipeNone
	}
}

// Navigator is the flip-card traversal over a folder's cards: a cyclic
// index, a flip flag, and an optional shuffled order.
type Navigator struct {
	mu       sync.Mutex
	original []models.Card
	cards    []models.Card
	index    int
	flipped  bool
	shuffled bool
	rng      *rand.Rand
	speak    func(text string)
	gen      int
	autoOn   bool
	schedule scheduleFunc
}

// NewNavigator creates a navigator over the cards in their insertion order.
// speak is the fire-and-forget pronunciation collaborator; it may be nil.
func NewNavigator(cards []models.Card, rng *rand.Rand, speak func(string)) *Navigator {
	original := make([]models.Card, len(cards))
	copy(original, cards)
	if speak == nil {
		speak = func(string) {}
	}
	return &Navigator{
		original: original,
		cards:    original,
		rng:      rng,
		speak:    speak,
		schedule: defaultSchedule,
	}
}

// Current returns the card under the cursor
func (n *Navigator) Current() (models.Card, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.cards) == 0 {
		return models.Card{}, false
	}
	return n.cards[n.index], true
}

// Index returns the zero-based cursor position
func (n *Navigator) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

// Length returns the number of cards under navigation
func (n *Navigator) Length() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.cards)
}

// IsFlipped reports whether the definition face is showing
func (n *Navigator) IsFlipped() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.flipped
}

// IsShuffled reports whether a shuffled order is active
func (n *Navigator) IsShuffled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shuffled
}

// Next advances the cursor with wraparound and shows the term face again
func (n *Navigator) Next() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopAutoLocked()
	n.advanceLocked()
}

func (n *Navigator) advanceLocked() {
	if len(n.cards) == 0 {
		return
	}
	n.index = (n.index + 1) % len(n.cards)
	n.flipped = false
}

// Previous moves the cursor back with wraparound and shows the term face again
func (n *Navigator) Previous() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopAutoLocked()
	if len(n.cards) == 0 {
		return
	}
	n.index = (n.index - 1 + len(n.cards)) % len(n.cards)
	n.flipped = false
}

// ToggleFlip flips the card. Revealing the definition face pronounces the
// term once; flipping back does not.
func (n *Navigator) ToggleFlip() {
	n.mu.Lock()
	n.stopAutoLocked()
	if len(n.cards) == 0 {
		n.mu.Unlock()
		return
	}
	n.flipped = !n.flipped
	revealed := n.flipped
	term := n.cards[n.index].Term
	n.mu.Unlock()

	if revealed {
		n.speak(term)
	}
}

// ToggleShuffle switches between a fresh random permutation and the
// original insertion order, resetting the cursor either way
func (n *Navigator) ToggleShuffle() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopAutoLocked()

	n.shuffled = !n.shuffled
	if n.shuffled {
		n.cards = selection.Shuffle(n.rng, n.original)
	} else {
		n.cards = n.original
	}
	n.index = 0
	n.flipped = false
}

// Swipe resolves a drag distance and applies the resulting navigation
func (n *Navigator) Swipe(distance float64) SwipeAction {
	action := ResolveSwipe(distance)
	switch action {
	case SwipeNext:
		n.Next()
	case SwipePrevious:
		n.Previous()
	}
	return action
}

// StartAutoPlay begins the hands-free loop: every interval the current
// card is flipped and pronounced, then advanced. Any manual interaction
// cancels it.
func (n *Navigator) StartAutoPlay() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.autoOn || len(n.cards) == 0 {
		return
	}
	n.autoOn = true
	n.gen++
	n.scheduleAutoLocked(n.gen)
}

func (n *Navigator) scheduleAutoLocked(gen int) {
	n.schedule(autoAdvanceInterval, func() {
		n.autoStep(gen)
	})
}

func (n *Navigator) autoStep(gen int) {
	n.mu.Lock()
	if gen != n.gen || !n.autoOn {
		n.mu.Unlock()
		return
	}

	var toSpeak string
	if !n.flipped {
		n.flipped = true
		toSpeak = n.cards[n.index].Term
	} else {
		n.advanceLocked()
	}
	n.scheduleAutoLocked(gen)
	n.mu.Unlock()

	if toSpeak != "" {
		n.speak(toSpeak)
	}
}

// StopAutoPlay cancels the hands-free loop
func (n *Navigator) StopAutoPlay() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopAutoLocked()
}

// AutoPlaying reports whether the hands-free loop is running
func (n *Navigator) AutoPlaying() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.autoOn
}

func (n *Navigator) stopAutoLocked() {
	n.autoOn = false
	n.gen++
}

// Close renders all pending callbacks inert; the navigator is done
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopAutoLocked()
}
