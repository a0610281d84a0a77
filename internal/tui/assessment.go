// Package tui renders the assessment and dashboard screens. Models hold no
// domain state of their own: each View is a pure function of the engine or
// aggregator it wraps.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/assessment"
)

type assessmentStartedMsg struct{ err error }

type assessmentSubmittedMsg struct{ err error }

type assessmentModel struct {
	engine *assessment.Engine
	theme  *Theme

	spinner    spinner.Model
	cursor     int
	submitting bool
	errText    string
	fatal      error
	quitting   bool
}

func newAssessmentModel(engine *assessment.Engine) assessmentModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipglossSpinnerStyle()
	return assessmentModel{
		engine:  engine,
		theme:   NewTheme(),
		spinner: sp,
	}
}

// RunAssessment drives the daily assessment screen until the user quits or
// the session expires.
func RunAssessment(engine *assessment.Engine) error {
	out, err := tea.NewProgram(newAssessmentModel(engine), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if final, ok := out.(assessmentModel); ok && final.fatal != nil {
		return final.fatal
	}
	return nil
}

func (m assessmentModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCmd())
}

func (m assessmentModel) startCmd() tea.Cmd {
	return func() tea.Msg {
		return assessmentStartedMsg{err: m.engine.Start(context.Background())}
	}
}

func (m assessmentModel) submitCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.engine.Submit(context.Background())
		return assessmentSubmittedMsg{err: err}
	}
}

func (m assessmentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case assessmentStartedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				m.fatal = msg.err
				return m, tea.Quit
			}
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.cursor = 0
		return m, nil

	case assessmentSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				m.fatal = msg.err
				return m, tea.Quit
			}
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m assessmentModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "r":
		if m.engine.Phase() == assessment.PhaseLoading && m.errText != "" {
			m.errText = ""
			return m, m.startCmd()
		}
	}

	if m.engine.Phase() != assessment.PhaseInProgress {
		return m, nil
	}

	questions := m.engine.Questions()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(questions)-1 {
			m.cursor++
		}
	case "enter", "s":
		if m.engine.CanSubmit() && !m.submitting {
			m.submitting = true
			m.errText = ""
			return m, m.submitCmd()
		}
	default:
		if idx := optionIndex(msg.String()); idx >= 0 && m.cursor < len(questions) {
			q := questions[m.cursor]
			if idx < len(q.Options) {
				// Re-selecting just replaces the prior choice.
				_ = m.engine.Select(q.QuestionID, q.Options[idx].Label)
				if m.cursor < len(questions)-1 {
					m.cursor++
				}
			}
		}
	}
	return m, nil
}

// optionIndex maps keys "1".."9" to option slots, -1 otherwise.
func optionIndex(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1')
	}
	return -1
}

func (m assessmentModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Daily Assessment"))
	b.WriteString("\n\n")

	switch m.engine.Phase() {
	case assessment.PhaseLoading:
		if m.errText != "" {
			b.WriteString(m.theme.StatusError.Render("Could not load today's questions: " + m.errText))
			b.WriteString("\n\n")
			b.WriteString(m.footer("r", "retry", "q", "quit"))
		} else {
			b.WriteString(fmt.Sprintf("%s Loading today's questions...", m.spinner.View()))
		}

	case assessment.PhaseAlreadyCompleted:
		b.WriteString(m.viewAlreadyCompleted())

	case assessment.PhaseInProgress:
		b.WriteString(m.viewInProgress())

	case assessment.PhaseSubmitted:
		b.WriteString(m.viewSubmitted())
	}

	b.WriteString("\n")
	return b.String()
}

func (m assessmentModel) viewAlreadyCompleted() string {
	var b strings.Builder
	b.WriteString(m.theme.StatusSuccess.Render("You've already completed today's assessment."))
	b.WriteString("\n\n")

	if s := m.engine.Summary(); s != nil {
		card := fmt.Sprintf("%s  %s\n%s %.1f\n%s\n%s",
			m.theme.Label.Render("Date:"), s.Date,
			m.theme.Label.Render("Score:"), s.CompositeScore,
			m.theme.Selected.Render(assessment.Badge(s.CompositeScore)),
			m.theme.Subtitle.Render(assessment.Message(s.CompositeScore)))
		b.WriteString(m.theme.Card.Render(card))
	} else {
		b.WriteString(m.theme.Muted.Render("Today's score summary isn't available right now."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.footer("q", "quit"))
	return b.String()
}

func (m assessmentModel) viewInProgress() string {
	var b strings.Builder
	questions := m.engine.Questions()

	for i, q := range questions {
		var card strings.Builder
		card.WriteString(m.theme.Label.Render(strings.ToUpper(q.Category)))
		card.WriteString("\n")
		card.WriteString(m.theme.Value.Render(q.QuestionText))
		card.WriteString("\n")

		chosen, answered := m.engine.Answer(q.QuestionID)
		for j, opt := range q.Options {
			marker := "  "
			style := m.theme.Option
			if answered && opt.Label == chosen {
				marker = "● "
				style = m.theme.Selected
			}
			card.WriteString(fmt.Sprintf("%s%s %s\n", marker, m.theme.Muted.Render(fmt.Sprintf("(%d)", j+1)), style.Render(opt.Label)))
		}

		cardStyle := m.theme.Card
		if i == m.cursor {
			cardStyle = m.theme.CardActive
		}
		b.WriteString(cardStyle.Render(strings.TrimRight(card.String(), "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render(m.engine.ProgressText()))
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString(m.theme.StatusError.Render(m.errText))
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString(fmt.Sprintf("%s Submitting...\n", m.spinner.View()))
	}

	b.WriteString("\n")
	if m.engine.CanSubmit() {
		b.WriteString(m.footer("1-9", "answer", "↑/↓", "move", "enter", "submit", "q", "quit"))
	} else {
		b.WriteString(m.footer("1-9", "answer", "↑/↓", "move", "q", "quit"))
	}
	return b.String()
}

func (m assessmentModel) viewSubmitted() string {
	var b strings.Builder
	result := m.engine.Result()
	if result == nil {
		return m.theme.Muted.Render("No result available.")
	}

	b.WriteString(m.theme.StatusSuccess.Render("Assessment submitted!"))
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(fmt.Sprintf("%s %.1f\n", m.theme.Label.Render("Composite score:"), result.CompositeScore))
	card.WriteString(m.theme.Selected.Render(result.Badge))
	card.WriteString("\n")
	card.WriteString(m.theme.Subtitle.Render(result.Message))
	card.WriteString("\n\n")
	for _, row := range []struct {
		name  string
		score float64
	}{
		{"Sleep", result.SleepScore},
		{"Diet", result.DietScore},
		{"Activity", result.ActivityScore},
		{"Mental", result.MentalScore},
		{"Location", result.LocationScore},
	} {
		card.WriteString(fmt.Sprintf("%-11s %5.1f\n", row.name, row.score))
	}
	b.WriteString(m.theme.Card.Render(strings.TrimRight(card.String(), "\n")))
	b.WriteString("\n\n")
	b.WriteString(m.footer("q", "quit"))
	return b.String()
}

func (m assessmentModel) footer(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, m.theme.FooterKey.Render(pairs[i])+" "+m.theme.FooterLabel.Render(pairs[i+1]))
	}
	return strings.Join(parts, m.theme.FooterLabel.Render("  •  "))
}
