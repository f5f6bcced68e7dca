// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/keyrush/internal/game"
	"github.com/verte-zerg/keyrush/internal/model"
	"github.com/verte-zerg/keyrush/internal/stats"
	"github.com/verte-zerg/keyrush/internal/store"
)

const weakLetterCount = 3

// tickMsg is one second of the countdown tagged with id.
type tickMsg struct {
	id int
	at time.Time
}

// flashMsg fires when an error flash may have expired.
type flashMsg struct {
	at time.Time
}

// Model implements the Bubble Tea game UI.
type Model struct {
	config model.Config
	game   *game.Game
	store  *store.Store
	now    func() time.Time

	keys keyMap
	help help.Model

	width  int
	height int

	presets     []int
	durationIdx int
	editing     bool
	customInput textinput.Model
	inputErr    string

	letterSeq   int
	weakLetters []string

	showHistory bool
	history     table.Model
	rounds      []model.RoundSummary
}

// NewModel constructs a game TUI model around g. st records finished rounds.
func NewModel(cfg model.Config, g *game.Game, st *store.Store) *Model {
	input := textinput.New()
	input.Placeholder = "seconds"
	input.CharLimit = 4
	input.Width = 8

	m := &Model{
		config:      cfg,
		game:        g,
		store:       st,
		now:         time.Now,
		keys:        defaultKeyMap(),
		help:        help.New(),
		presets:     cfg.Durations,
		durationIdx: indexOf(cfg.Durations, g.Duration()),
		customInput: input,
		history:     newHistoryTable(),
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history.SetHeight(max(3, msg.Height-6))
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case flashMsg:
		m.game.Sweep(msg.at)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.showHistory {
			return m.updateHistory(msg)
		}
		switch m.game.Phase() {
		case game.PhaseIdle:
			if m.editing {
				return m.updateCustomInput(msg)
			}
			return m.updateSetup(msg)
		case game.PhaseWaiting, game.PhaseActive:
			return m.updatePlay(msg)
		case game.PhaseEnded:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	res := m.game.Tick(msg.id, msg.at)
	switch {
	case res.Outcome == game.OutcomeStale:
		return nil
	case res.Ended:
		m.finishRound()
		return nil
	default:
		return tickCmd(msg.id)
	}
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.startRound()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.cyclePreset(-1)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.cyclePreset(1)
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.inputErr = ""
		m.customInput.SetValue(strconv.Itoa(m.game.Duration()))
		m.customInput.CursorEnd()
		return m, m.customInput.Focus()
	case key.Matches(msg, m.keys.History):
		m.openHistory()
		return m, nil
	}
	return m, nil
}

func (m *Model) updateCustomInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeCustomInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if err := m.applyCustomDuration(m.customInput.Value()); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.closeCustomInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	return m, cmd
}

func (m *Model) closeCustomInput() {
	m.editing = false
	m.inputErr = ""
	m.customInput.Blur()
}

func (m *Model) applyCustomDuration(value string) error {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("enter a whole number of seconds")
	}
	if err := m.game.SetDuration(seconds); err != nil {
		return err
	}
	m.config.DurationSeconds = seconds
	m.durationIdx = indexOf(m.presets, seconds)
	return nil
}

func (m *Model) cyclePreset(delta int) {
	if len(m.presets) == 0 {
		return
	}
	idx := m.durationIdx
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(m.presets) - 1
	default:
		idx = (idx + delta + len(m.presets)) % len(m.presets)
	}
	if err := m.game.SetDuration(m.presets[idx]); err != nil {
		log.Warn().Err(err).Int("duration", m.presets[idx]).Msg("rejected preset duration")
		return
	}
	m.durationIdx = idx
	m.config.DurationSeconds = m.presets[idx]
}

func (m *Model) startRound() {
	m.game.Start(m.now())
	m.letterSeq++
	log.Debug().Int("duration", m.game.Duration()).Msg("round started")
}

func (m *Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Abort) {
		m.game.Reset()
		log.Debug().Msg("round abandoned")
		return m, nil
	}
	now := m.now()
	var cmds []tea.Cmd
	for _, k := range keysOf(msg) {
		res := m.game.KeyDown(k, now)
		if res.LetterChanged {
			m.letterSeq++
		}
		if res.TimerStarted {
			cmds = append(cmds, tickCmd(m.game.TimerID()))
		}
		if res.Flash {
			cmds = append(cmds, flashCmd(m.game.FlashDuration()))
		}
	}
	return m, tea.Batch(cmds...)
}

// keysOf splits a key message into per-key identifiers. Pasted or buffered
// runes arrive together and are handled one at a time.
func keysOf(msg tea.KeyMsg) []string {
	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 0 {
		keys := make([]string, len(msg.Runes))
		for i, r := range msg.Runes {
			keys[i] = string(r)
		}
		return keys
	}
	return []string{msg.String()}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Again):
		m.game.PlayAgain()
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		m.startRound()
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.openHistory()
		return m, nil
	}
	return m, nil
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) {
		m.showHistory = false
		m.history.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m *Model) openHistory() {
	m.showHistory = true
	m.history.SetRows(historyRows(m.rounds))
	m.history.GotoBottom()
	m.history.Focus()
}

func (m *Model) finishRound() {
	summary, letters, ok := m.game.Summary()
	if !ok {
		return
	}
	log.Info().
		Int("duration", summary.DurationSeconds).
		Int("correct", summary.Correct).
		Int("errors", summary.Errors).
		Int("spm", summary.ScorePerMinute).
		Msg("round ended")
	if m.store == nil {
		m.rounds = append(m.rounds, summary)
		return
	}
	ctx := context.Background()
	if _, err := m.store.InsertRound(ctx, summary, letters); err != nil {
		log.Warn().Err(err).Msg("failed to record round")
	}
	rounds, err := m.store.ListRounds(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load rounds")
	} else {
		m.rounds = rounds
	}
	aggs, err := m.store.ListLetterAggregates(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load letter stats")
		return
	}
	m.weakLetters = stats.SelectWeakLetters(aggs, weakLetterCount)
}

func tickCmd(id int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}

func flashCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return flashMsg{at: t}
	})
}

func newHistoryTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Duration", Width: 9},
			{Title: "Correct", Width: 8},
			{Title: "Errors", Width: 7},
			{Title: "SPM", Width: 5},
		}),
		table.WithHeight(10),
	)
}

func historyRows(rounds []model.RoundSummary) []table.Row {
	cells := stats.RoundRows(rounds)
	rows := make([]table.Row, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, table.Row(c))
	}
	return rows
}

func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}
