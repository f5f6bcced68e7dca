package game

import (
	"errors"
	"math"
	"unicode/utf8"
)

var (
	// ErrInvalidDuration is returned for round durations that are not positive.
	ErrInvalidDuration = errors.New("round duration must be greater than 0")
	// ErrRoundInProgress is returned when the duration changes mid-round.
	ErrRoundInProgress = errors.New("round in progress")
)

// Score returns correct hits normalized to a one-minute rate, rounded to the
// nearest integer.
func Score(correct, durationSeconds int) (int, error) {
	if durationSeconds <= 0 {
		return 0, ErrInvalidDuration
	}
	minutes := float64(durationSeconds) / 60.0
	return int(math.Round(float64(correct) / minutes)), nil
}

// NormalizeKey converts a key identifier into an uppercase letter.
// ok is false for anything that is not a single A-Z character.
func NormalizeKey(key string) (letter rune, ok bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	switch {
	case r >= 'a' && r <= 'z':
		return r - ('a' - 'A'), true
	case r >= 'A' && r <= 'Z':
		return r, true
	}
	return r, false
}
