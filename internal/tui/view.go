package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keyrush/internal/game"
	"github.com/verte-zerg/keyrush/internal/stats"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Underline(true)
	letterStyle   = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	letterColors = []lipgloss.Color{"#F0F0F0", "#C89A3A"}
	flashStyle   = letterStyle.
			Background(lipgloss.Color("#FF4D4F")).
			BorderForeground(lipgloss.Color("#FF4D4F"))
	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch {
	case m.showHistory:
		body = m.viewHistory()
	case m.game.Phase() == game.PhaseIdle:
		body = m.viewSetup()
	case m.game.Phase() == game.PhaseEnded:
		body = m.viewResults()
	default:
		body = m.viewPlay()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return body + "\n\n" + footer
	}
	main := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

func (m *Model) viewSetup() string {
	lines := []string{titleStyle.Render("keyrush"), "", mutedStyle.Render("Round length")}
	if m.editing {
		lines = append(lines, m.customInput.View())
		if m.inputErr != "" {
			lines = append(lines, errorStyle.Render(m.inputErr))
		}
	} else {
		lines = append(lines, m.renderPresets())
	}
	lines = append(lines, "", mutedStyle.Render("Type each letter as it appears. The clock starts on your first hit."))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderPresets() string {
	parts := make([]string, 0, len(m.presets)+1)
	for i, p := range m.presets {
		label := fmt.Sprintf("%ds", p)
		if i == m.durationIdx {
			parts = append(parts, selectedStyle.Render(label))
			continue
		}
		parts = append(parts, mutedStyle.Render(label))
	}
	if m.durationIdx < 0 {
		parts = append(parts, selectedStyle.Render(fmt.Sprintf("%ds", m.game.Duration())))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) viewPlay() string {
	snap := m.game.Snapshot(m.now())
	style := letterStyle.Foreground(letterColors[m.letterSeq%len(letterColors)])
	if snap.Flash {
		style = flashStyle
	}
	card := style.Render(string(snap.Target))
	status := fmt.Sprintf("%s %s   %s %s   %s %s",
		mutedStyle.Render("Time"), valueStyle.Render(fmt.Sprintf("%ds", snap.Remaining)),
		mutedStyle.Render("Correct"), valueStyle.Render(fmt.Sprintf("%d", snap.Correct)),
		mutedStyle.Render("Errors"), valueStyle.Render(fmt.Sprintf("%d", snap.Errors)),
	)
	lines := []string{card, "", status}
	if snap.Phase == game.PhaseWaiting {
		lines = append(lines, mutedStyle.Render("Clock starts on the first correct key"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) viewResults() string {
	snap := m.game.Snapshot(m.now())
	_, acc := stats.RoundMetrics(snap.Correct, snap.Errors, snap.Duration)
	rows := []string{
		titleStyle.Render("Time's up"),
		"",
		fmt.Sprintf("%s %s", mutedStyle.Render("Score  "), valueStyle.Render(fmt.Sprintf("%d per minute", snap.Score))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Correct"), valueStyle.Render(fmt.Sprintf("%d", snap.Correct))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Errors "), valueStyle.Render(fmt.Sprintf("%d", snap.Errors))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Acc    "), valueStyle.Render(fmt.Sprintf("%.1f%%", acc*100))),
	}
	if len(m.weakLetters) > 0 {
		rows = append(rows, "", mutedStyle.Render("Weakest this run: ")+errorStyle.Render(strings.Join(m.weakLetters, " ")))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) viewHistory() string {
	if len(m.rounds) == 0 {
		return mutedStyle.Render("No rounds played yet.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("This run"), "", m.history.View())
}

func (m *Model) footerBindings() []key.Binding {
	switch {
	case m.showHistory:
		return []key.Binding{m.keys.Close}
	case m.game.Phase() == game.PhaseIdle && m.editing:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case m.game.Phase() == game.PhaseIdle:
		return []key.Binding{m.keys.Start, m.keys.Prev, m.keys.Next, m.keys.Edit, m.keys.History, m.keys.Quit}
	case m.game.Phase() == game.PhaseEnded:
		return []key.Binding{m.keys.Again, m.keys.Restart, m.keys.History, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Abort}
	}
}

func (m *Model) renderFooter() string {
	bindings := m.footerBindings()
	scores := m.scoreLine()
	text := m.help.ShortHelpView(bindings)
	if scores != "" {
		text = footerStyle.Render(scores) + "  " + text
	}
	if m.width > 0 && lipgloss.Width(text) > m.width {
		plain := plainHelp(bindings)
		if scores != "" {
			plain = scores + "  " + plain
		}
		return footerStyle.Render(runewidth.Truncate(plain, m.width, "…"))
	}
	return text
}

// scoreLine summarizes the last and best rounds of this run.
func (m *Model) scoreLine() string {
	if len(m.rounds) == 0 {
		return ""
	}
	last := m.rounds[len(m.rounds)-1]
	best := 0
	for _, r := range m.rounds {
		best = max(best, r.ScorePerMinute)
	}
	return fmt.Sprintf("Last %d SPM · Best %d SPM", last.ScorePerMinute, best)
}

// plainHelp renders bindings without styling so they can be truncated.
func plainHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
