// Package study implements the study-session state machines: flashcard
// navigation, the multiple-choice quiz, the timed matching game, and the
// typed-answer checker. Sessions are ephemeral; they are built from a
// snapshot of a folder's cards and discarded wholesale on reset or mode
// switch. Every delayed callback carries the generation it was scheduled
// under and is inert once the session moves on.
package study

import (
	"errors"
	"time"
)

// ErrInsufficientCards is returned when a folder is too small for the
// requested mode (quiz needs at least 4 cards, match needs at least 3)
var ErrInsufficientCards = errors.New("not enough cards in this folder")

// scheduleFunc runs f after d. Production sessions use time.AfterFunc;
// tests inject a synchronous implementation.
type scheduleFunc func(d time.Duration, f func())

func defaultSchedule(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
