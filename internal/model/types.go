// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	DurationSeconds  int
	Durations        []int
	IgnoreNonLetters bool
	FlashDuration    time.Duration
}

// RoundSummary captures a completed round.
type RoundSummary struct {
	ID              int64
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Correct         int
	Errors          int
	ScorePerMinute  int
}

// LetterStats stores per-letter stats for a round.
type LetterStats struct {
	Letter       string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// LetterAggregate aggregates letter stats across rounds.
type LetterAggregate struct {
	Letter       string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}
