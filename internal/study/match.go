package study

import (
	"math/rand"
	"sync"
	"time"

	"vocabdeck/internal/models"
	"vocabdeck/internal/selection"
)

const (
	// MatchMinimumCards is the smallest folder a matching game can start from
	MatchMinimumCards = 3

	// matchMaxPairs caps the grid at 6 source cards (12 tiles)
	matchMaxPairs = 6

	// matchMissDelay is how long a mismatched selection stays highlighted
	matchMissDelay = 400 * time.Millisecond

	// matchClockInterval is the game clock resolution
	matchClockInterval = time.Second
)

// SelectOutcome describes what a tile selection did
type SelectOutcome int

const (
	// SelectIgnored: the tile is matched, already held, or the game is over
	SelectIgnored SelectOutcome = iota
	// SelectHeld: the tile became the held selection
	SelectHeld
	// SelectMatched: the tile paired with the held selection
	SelectMatched
	// SelectMiss: the tile did not pair; it is held briefly, then cleared
	SelectMiss
)

// MatchSession is the timed pairing game: a shuffled grid of term and
// definition tiles, matched two at a time. The elapsed clock is the score.
type MatchSession struct {
	mu       sync.Mutex
	tiles    []models.MatchTile
	first    int
	elapsed  int
	complete bool
	gen      int
	speak    func(text string)
	schedule scheduleFunc
	stop     chan struct{}
}

// NewMatchSession samples up to 6 cards and lays out their term and
// definition tiles in one shuffled grid. The clock does not run until
// StartClock is called.
func NewMatchSession(cards []models.Card, rng *rand.Rand, speak func(string)) (*MatchSession, error) {
	if len(cards) < MatchMinimumCards {
		return nil, ErrInsufficientCards
	}
	if speak == nil {
		speak = func(string) {}
	}

	picked := selection.Sample(rng, cards, matchMaxPairs)
	tiles := make([]models.MatchTile, 0, 2*len(picked))
	for _, c := range picked {
		tiles = append(tiles, models.MatchTile{CardID: c.ID, Text: c.Term, Kind: models.TileTerm})
		tiles = append(tiles, models.MatchTile{CardID: c.ID, Text: c.Definition, Kind: models.TileDefinition})
	}
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return &MatchSession{
		tiles:    tiles,
		first:    -1,
		speak:    speak,
		schedule: defaultSchedule,
	}, nil
}

// StartClock begins the elapsed-time counter, ticking once per second
// until the session completes or is cancelled
func (m *MatchSession) StartClock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil || m.complete {
		return
	}
	m.stop = make(chan struct{})
	go m.runClock(m.stop)
}

func (m *MatchSession) runClock(stop chan struct{}) {
	ticker := time.NewTicker(matchClockInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.tick()
		case <-stop:
			return
		}
	}
}

// tick advances the game clock by one second while the game is live
func (m *MatchSession) tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.complete {
		m.elapsed++
	}
}

// Tiles returns a snapshot of the grid
func (m *MatchSession) Tiles() []models.MatchTile {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.MatchTile, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// Held returns the index of the held first selection, or -1
func (m *MatchSession) Held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.first
}

// Elapsed returns the game clock in seconds; once complete it is the score
func (m *MatchSession) Elapsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Complete reports whether every tile has been matched
func (m *MatchSession) Complete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.complete
}

// SelectTile applies a tile selection. A tile pairs with the held one when
// both come from the same source card with opposite kinds; anything else
// is a miss, held briefly for the flash and then cleared.
func (m *MatchSession) SelectTile(idx int) SelectOutcome {
	m.mu.Lock()
	if m.complete || idx < 0 || idx >= len(m.tiles) {
		m.mu.Unlock()
		return SelectIgnored
	}
	tile := m.tiles[idx]
	if tile.Matched || m.first == idx {
		m.mu.Unlock()
		return SelectIgnored
	}

	var toSpeak string
	if tile.Kind == models.TileTerm {
		toSpeak = tile.Text
	}

	var outcome SelectOutcome
	switch {
	case m.first == -1:
		m.first = idx
		outcome = SelectHeld

	case m.tiles[m.first].CardID == tile.CardID && m.tiles[m.first].Kind != tile.Kind:
		m.tiles[m.first].Matched = true
		m.tiles[idx].Matched = true
		m.first = -1
		m.completeIfDoneLocked()
		outcome = SelectMatched

	default:
		m.first = idx
		gen := m.gen
		m.schedule(matchMissDelay, func() {
			m.clearMiss(gen, idx)
		})
		outcome = SelectMiss
	}
	m.mu.Unlock()

	if toSpeak != "" {
		m.speak(toSpeak)
	}
	return outcome
}

// clearMiss drops the held selection left over from a miss, unless the
// session moved on or the user already selected something else
func (m *MatchSession) clearMiss(gen, idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen && m.first == idx {
		m.first = -1
	}
}

func (m *MatchSession) completeIfDoneLocked() {
	for _, t := range m.tiles {
		if !t.Matched {
			return
		}
	}
	m.complete = true
	m.stopClockLocked()
}

func (m *MatchSession) stopClockLocked() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}

// Cancel abandons the game: the clock stops, pending callbacks go inert,
// and the tiles are discarded
func (m *MatchSession) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.stopClockLocked()
	m.tiles = nil
	m.first = -1
}
