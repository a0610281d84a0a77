package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/assessment"
	"github.com/healthpulse/companion/internal/channel"
	"github.com/healthpulse/companion/internal/dashboard"
)

// trendGlyphs render a score bucket as a bar, lowest to highest.
var trendGlyphs = []rune("▁▂▃▄▅▆▇█")

type dashboardRefreshedMsg struct{ err error }

type dashboardViewMsg struct{ view dashboard.View }

type dashboardModel struct {
	agg   *dashboard.Aggregator
	ch    *channel.Channel
	views <-chan dashboard.View
	theme *Theme

	spinner    spinner.Model
	view       dashboard.View
	loaded     bool
	refreshing bool
	errText    string
	fatal      error
	quitting   bool
}

func newDashboardModel(agg *dashboard.Aggregator, ch *channel.Channel) dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipglossSpinnerStyle()
	return dashboardModel{
		agg:     agg,
		ch:      ch,
		views:   agg.Subscribe(),
		theme:   NewTheme(),
		spinner: sp,
	}
}

// RunDashboard drives the dashboard screen. Pushed score updates flow
// channel -> aggregator -> view subscription; the model itself never touches
// the raw event stream.
func RunDashboard(agg *dashboard.Aggregator, ch *channel.Channel) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go agg.Watch(ctx, ch.Events())

	m := newDashboardModel(agg, ch)
	out, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if final, ok := out.(dashboardModel); ok && final.fatal != nil {
		return final.fatal
	}
	return nil
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd(), m.waitViewCmd())
}

func (m dashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.agg.Refresh(context.Background())
		return dashboardRefreshedMsg{err: err}
	}
}

// waitViewCmd blocks on the next assembled view, whatever triggered it.
func (m dashboardModel) waitViewCmd() tea.Cmd {
	return func() tea.Msg {
		return dashboardViewMsg{view: <-m.views}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if !m.refreshing {
				m.refreshing = true
				return m, m.refreshCmd()
			}
		}
		return m, nil

	case dashboardRefreshedMsg:
		m.refreshing = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				m.fatal = msg.err
				return m, tea.Quit
			}
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
		}
		return m, nil

	case dashboardViewMsg:
		m.view = msg.view
		m.loaded = true
		return m, m.waitViewCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(fmt.Sprintf("%s Loading dashboard...", m.spinner.View()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.viewScore())
	b.WriteString("\n")
	b.WriteString(m.viewTrend())
	b.WriteString("\n")
	b.WriteString(m.viewPrediction())
	b.WriteString("\n")
	b.WriteString(m.viewCheckin())
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(m.theme.StatusWarning.Render("Some sections failed to refresh: " + m.errText))
		b.WriteString("\n")
	}
	if m.refreshing {
		b.WriteString(fmt.Sprintf("%s Refreshing...\n", m.spinner.View()))
	}
	b.WriteString(m.theme.Muted.Render("Updated " + m.view.RefreshedAt.Format(time.Kitchen)))
	b.WriteString("\n")
	b.WriteString(m.footerLine())
	b.WriteString("\n")
	return b.String()
}

func (m dashboardModel) viewHeader() string {
	title := m.theme.Title.Render("HealthPulse Dashboard")
	who := ""
	if p := m.view.Profile; p != nil {
		who = m.theme.Subtitle.Render(fmt.Sprintf("  %s", p.Username))
		if p.IsPremium {
			who += m.theme.Selected.Render(" ★")
		}
	}
	return title + who
}

func (m dashboardModel) viewScore() string {
	var card strings.Builder
	card.WriteString(m.theme.Label.Render("TODAY"))
	card.WriteString("\n")
	if latest := m.view.LatestScore(); latest != nil {
		card.WriteString(fmt.Sprintf("%s %.1f\n", m.theme.Value.Render("Score:"), latest.CompositeScore))
		card.WriteString(m.theme.Selected.Render(assessment.Badge(latest.CompositeScore)))
	} else {
		card.WriteString(m.theme.Muted.Render("No scores yet. Run: healthpulse assess"))
	}
	return m.theme.Card.Render(card.String())
}

func (m dashboardModel) viewTrend() string {
	var card strings.Builder
	card.WriteString(m.theme.Label.Render("TREND"))
	card.WriteString("\n")
	if len(m.view.History) == 0 {
		card.WriteString(m.theme.Muted.Render("No history yet."))
	} else {
		var bars strings.Builder
		for _, entry := range m.view.History {
			bars.WriteRune(trendGlyph(entry.CompositeScore))
		}
		card.WriteString(m.theme.Selected.Render(bars.String()))
		card.WriteString("\n")
		first := m.view.History[0]
		last := m.view.History[len(m.view.History)-1]
		card.WriteString(m.theme.Muted.Render(fmt.Sprintf("%s .. %s (%d days)", first.Date, last.Date, len(m.view.History))))
	}
	return m.theme.Card.Render(card.String())
}

func (m dashboardModel) viewPrediction() string {
	var card strings.Builder
	card.WriteString(m.theme.Label.Render("RISK"))
	card.WriteString("\n")
	if p := m.view.Prediction; p != nil {
		card.WriteString(fmt.Sprintf("%s: %.1f%% (%s)", p.PredictionType, p.RiskPercentage, p.RiskLevel))
	} else {
		card.WriteString(m.theme.Muted.Render("No prediction yet. Run: healthpulse predict"))
	}
	return m.theme.Card.Render(card.String())
}

func (m dashboardModel) viewCheckin() string {
	var card strings.Builder
	card.WriteString(m.theme.Label.Render("MENTAL CHECK-IN"))
	card.WriteString("\n")
	if c := m.view.Checkin; c != nil {
		card.WriteString(fmt.Sprintf("%s (%s)", c.Sentiment, c.EmotionalState))
	} else {
		card.WriteString(m.theme.Muted.Render("No check-in yet. Run: healthpulse checkin"))
	}
	return m.theme.Card.Render(card.String())
}

func (m dashboardModel) footerLine() string {
	status := m.theme.StatusError.Render("● offline")
	switch m.ch.State() {
	case channel.Connected:
		status = m.theme.StatusSuccess.Render("● live")
	case channel.Connecting:
		status = m.theme.StatusWarning.Render("● connecting")
	}

	keys := []string{
		m.theme.FooterKey.Render("r") + " " + m.theme.FooterLabel.Render("refresh"),
		m.theme.FooterKey.Render("q") + " " + m.theme.FooterLabel.Render("quit"),
	}
	var extra string
	if p := m.view.Profile; p != nil {
		extra = m.theme.FooterLabel.Render(fmt.Sprintf("  streak %d  •  %d pts", p.StreakDays, p.Points))
	}
	return status + "  " + strings.Join(keys, m.theme.FooterLabel.Render("  •  ")) + extra
}

// trendGlyph buckets a 0-100 score into one of eight bar heights.
func trendGlyph(score float64) rune {
	idx := int(score / 12.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(trendGlyphs) {
		idx = len(trendGlyphs) - 1
	}
	return trendGlyphs[idx]
}
