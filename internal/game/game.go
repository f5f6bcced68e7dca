// Package game implements the letter typing round state machine.
//
// A Game is owned by a single event loop. Key presses and countdown ticks are
// delivered through KeyDown and Tick, and each call returns a Result
// describing what changed so the caller can schedule follow-up work (the next
// tick, a flash expiry) and update the display.
package game

import (
	"time"

	"github.com/verte-zerg/keyrush/internal/model"
)

// DefaultDurationSeconds is the round length used when none is configured.
const DefaultDurationSeconds = 15

// DefaultFlashDuration is how long the error indicator stays on.
const DefaultFlashDuration = 100 * time.Millisecond

// LetterSource draws the next target letter. Next must never return prev.
type LetterSource interface {
	Next(prev rune) rune
}

// Outcome classifies the event handled by KeyDown or Tick.
type Outcome int

const (
	// OutcomeIgnored means the event did not change the round.
	OutcomeIgnored Outcome = iota
	// OutcomeStale means a tick belonged to a cancelled countdown.
	OutcomeStale
	// OutcomeCorrect means the key matched the target.
	OutcomeCorrect
	// OutcomeIncorrect means the key did not match the target.
	OutcomeIncorrect
	// OutcomeTick means the countdown advanced by one second.
	OutcomeTick
)

// Result reports the effects of a single event.
type Result struct {
	Outcome       Outcome
	LetterChanged bool
	TimerStarted  bool
	Flash         bool
	Ended         bool
}

// Snapshot is a read-only projection of the round for display.
type Snapshot struct {
	Phase     Phase
	Target    rune
	Duration  int
	Remaining int
	Correct   int
	Errors    int
	Score     int
	HasScore  bool
	Flash     bool
}

type letterStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Game holds the state of the current round.
type Game struct {
	letters          LetterSource
	duration         int
	flashFor         time.Duration
	ignoreNonLetters bool

	phase     Phase
	target    rune
	prev      rune
	remaining int
	correct   int
	errors    int
	score     int

	// timerID tags the active countdown; bumping it cancels pending ticks.
	timerID    int
	flashUntil time.Time

	startedAt     time.Time
	endedAt       time.Time
	prevCorrectAt time.Time
	letterStats   map[rune]*letterStat
}

// New returns an idle Game. It fails with ErrInvalidDuration when the
// configured duration is not positive.
func New(cfg model.Config, letters LetterSource) (*Game, error) {
	if cfg.DurationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	flashFor := cfg.FlashDuration
	if flashFor <= 0 {
		flashFor = DefaultFlashDuration
	}
	return &Game{
		letters:          letters,
		duration:         cfg.DurationSeconds,
		flashFor:         flashFor,
		ignoreNonLetters: cfg.IgnoreNonLetters,
		letterStats:      map[rune]*letterStat{},
	}, nil
}

// SetDuration changes the round length. Only allowed while idle; an ended
// round keeps the duration its score was computed with.
func (g *Game) SetDuration(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDuration
	}
	if g.phase != PhaseIdle {
		return ErrRoundInProgress
	}
	g.duration = seconds
	return nil
}

// Start resets the round and draws the first target letter.
func (g *Game) Start(now time.Time) Result {
	g.clear()
	g.phase = PhaseWaiting
	g.remaining = g.duration
	g.startedAt = now
	g.drawLetter()
	return Result{LetterChanged: true}
}

// PlayAgain returns to Idle so a new duration can be chosen.
func (g *Game) PlayAgain() {
	g.clear()
}

// Reset abandons the current round and returns to Idle.
func (g *Game) Reset() {
	g.clear()
}

func (g *Game) clear() {
	g.timerID++
	g.phase = PhaseIdle
	g.remaining = 0
	g.correct = 0
	g.errors = 0
	g.score = 0
	g.flashUntil = time.Time{}
	g.startedAt = time.Time{}
	g.endedAt = time.Time{}
	g.prevCorrectAt = time.Time{}
	g.letterStats = map[rune]*letterStat{}
}

// KeyDown handles a key press identified by key, as delivered by the terminal.
func (g *Game) KeyDown(key string, now time.Time) Result {
	if !g.phase.Running() {
		return Result{}
	}
	letter, isLetter := NormalizeKey(key)
	if !isLetter && g.ignoreNonLetters {
		return Result{}
	}
	if isLetter && letter == g.target {
		res := Result{Outcome: OutcomeCorrect, LetterChanged: true}
		if g.phase == PhaseWaiting {
			g.phase = PhaseActive
			g.timerID++
			res.TimerStarted = true
		}
		g.recordCorrect(now)
		g.drawLetter()
		return res
	}
	g.errors++
	g.entry(g.target).incorrect++
	g.flashUntil = now.Add(g.flashFor)
	return Result{Outcome: OutcomeIncorrect, Flash: true}
}

// Tick advances the countdown tagged with id by one second. Ticks for a
// countdown that was cancelled, or that arrive outside PhaseActive, are stale.
func (g *Game) Tick(id int, now time.Time) Result {
	if id != g.timerID || g.phase != PhaseActive {
		return Result{Outcome: OutcomeStale}
	}
	if g.remaining > 0 {
		g.remaining--
	}
	g.Sweep(now)
	if g.remaining > 0 {
		return Result{Outcome: OutcomeTick}
	}
	g.end(now)
	return Result{Outcome: OutcomeTick, Ended: true}
}

// Sweep clears the error indicator once its deadline has passed.
func (g *Game) Sweep(now time.Time) {
	if !g.flashUntil.IsZero() && !now.Before(g.flashUntil) {
		g.flashUntil = time.Time{}
	}
}

// FlashActive reports whether the error indicator is on at now.
func (g *Game) FlashActive(now time.Time) bool {
	return !g.flashUntil.IsZero() && now.Before(g.flashUntil)
}

// FlashDuration returns how long the error indicator stays on.
func (g *Game) FlashDuration() time.Duration {
	return g.flashFor
}

func (g *Game) end(now time.Time) {
	g.timerID++
	g.phase = PhaseEnded
	g.endedAt = now
	g.flashUntil = time.Time{}
	// duration is validated positive in New and SetDuration.
	score, _ := Score(g.correct, g.duration)
	g.score = score
}

func (g *Game) recordCorrect(now time.Time) {
	g.correct++
	entry := g.entry(g.target)
	entry.correct++
	if !g.prevCorrectAt.IsZero() {
		entry.latencySumMs += now.Sub(g.prevCorrectAt).Milliseconds()
		entry.latencyCount++
	}
	g.prevCorrectAt = now
}

func (g *Game) entry(letter rune) *letterStat {
	entry, ok := g.letterStats[letter]
	if !ok {
		entry = &letterStat{}
		g.letterStats[letter] = entry
	}
	return entry
}

func (g *Game) drawLetter() {
	g.prev = g.target
	g.target = g.letters.Next(g.prev)
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Target returns the letter the player must type next.
func (g *Game) Target() rune { return g.target }

// Duration returns the selected round length in seconds.
func (g *Game) Duration() int { return g.duration }

// Remaining returns the seconds left in the countdown.
func (g *Game) Remaining() int { return g.remaining }

// Correct returns the number of correct key presses.
func (g *Game) Correct() int { return g.correct }

// Errors returns the number of incorrect key presses.
func (g *Game) Errors() int { return g.errors }

// TimerID returns the tag of the active countdown.
func (g *Game) TimerID() int { return g.timerID }

// Score returns the score per minute; ok is false until the round has ended.
func (g *Game) Score() (score int, ok bool) {
	if g.phase != PhaseEnded {
		return 0, false
	}
	return g.score, true
}

// Snapshot returns the display projection of the round at now.
func (g *Game) Snapshot(now time.Time) Snapshot {
	score, ok := g.Score()
	return Snapshot{
		Phase:     g.phase,
		Target:    g.target,
		Duration:  g.duration,
		Remaining: g.remaining,
		Correct:   g.correct,
		Errors:    g.errors,
		Score:     score,
		HasScore:  ok,
		Flash:     g.FlashActive(now),
	}
}

// Summary returns the completed round and its per-letter stats.
// ok is false unless the round has ended.
func (g *Game) Summary() (model.RoundSummary, []model.LetterStats, bool) {
	if g.phase != PhaseEnded {
		return model.RoundSummary{}, nil, false
	}
	summary := model.RoundSummary{
		StartedAt:       g.startedAt,
		EndedAt:         g.endedAt,
		DurationSeconds: g.duration,
		Correct:         g.correct,
		Errors:          g.errors,
		ScorePerMinute:  g.score,
	}
	letters := make([]model.LetterStats, 0, len(g.letterStats))
	for letter, entry := range g.letterStats {
		letters = append(letters, model.LetterStats{
			Letter:       string(letter),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	return summary, letters, true
}
