// Package assessment drives the daily gamified questionnaire: loading the
// day's question set, collecting answers, gating submission, and deriving
// the post-submission summary.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/healthpulse/companion/internal/api"
)

// Phase is the engine's workflow state. The rendering surface is a pure
// function of the phase plus its payload; view visibility is never the
// source of truth.
type Phase int

const (
	// PhaseLoading means today's question set has not arrived yet.
	PhaseLoading Phase = iota
	// PhaseAlreadyCompleted means today's assessment was finished earlier;
	// only the summary of the latest score entry is shown.
	PhaseAlreadyCompleted
	// PhaseInProgress means answers are being collected.
	PhaseInProgress
	// PhaseSubmitted means the server accepted the submission and returned
	// the authoritative scores.
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseAlreadyCompleted:
		return "already_completed"
	case PhaseInProgress:
		return "in_progress"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "loading"
	}
}

var (
	// ErrSubmitInFlight is returned when a submission is attempted while one
	// is already outstanding.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	// ErrIncomplete is returned when not every question has an answer yet.
	ErrIncomplete = errors.New("not all questions answered")
)

// Engine is the state machine for one day's assessment. Question set and
// answers live here for the duration of the workflow and are discarded when
// a new day's set loads.
type Engine struct {
	client *api.Client

	mu         sync.Mutex
	phase      Phase
	questions  []api.Question
	answers    map[string]string
	result     *api.ScoreResult
	summary    *api.ScoreEntry
	submitting bool
}

// NewEngine creates an engine in the Loading phase.
func NewEngine(client *api.Client) *Engine {
	return &Engine{
		client:  client,
		phase:   PhaseLoading,
		answers: make(map[string]string),
	}
}

// Start fetches today's question set and branches on completion status.
// A failed fetch leaves the engine in Loading with no partial state.
func (e *Engine) Start(ctx context.Context) error {
	set, err := e.client.TodayQuestions(ctx)
	if err != nil {
		return err
	}

	if set.AlreadyCompleted {
		e.mu.Lock()
		e.phase = PhaseAlreadyCompleted
		e.questions = nil
		e.answers = make(map[string]string)
		e.mu.Unlock()

		// One history entry backs the summary view. If it can't be fetched
		// the phase stands and the summary section degrades to a placeholder.
		entries, err := e.client.History(ctx, 1)
		if err != nil {
			return err
		}
		e.mu.Lock()
		if len(entries) > 0 {
			entry := entries[0]
			e.summary = &entry
		}
		e.mu.Unlock()
		return nil
	}

	e.mu.Lock()
	e.phase = PhaseInProgress
	e.questions = set.Questions
	e.answers = make(map[string]string)
	e.summary = nil
	e.result = nil
	e.mu.Unlock()
	return nil
}

// Phase returns the current workflow phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Questions returns the day's question list.
func (e *Engine) Questions() []api.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.questions
}

// Answer returns the selected label for a question, if any.
func (e *Engine) Answer(questionID string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	label, ok := e.answers[questionID]
	return label, ok
}

// Select records an answer. Selecting again for the same question replaces
// the prior choice; the answered count never grows past the question count.
func (e *Engine) Select(questionID, label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseInProgress {
		return fmt.Errorf("cannot answer while %s", e.phase)
	}
	if !e.hasQuestion(questionID) {
		return fmt.Errorf("unknown question %q", questionID)
	}
	e.answers[questionID] = label
	return nil
}

func (e *Engine) hasQuestion(questionID string) bool {
	for _, q := range e.questions {
		if q.QuestionID == questionID {
			return true
		}
	}
	return false
}

// Progress returns answered and total counts.
func (e *Engine) Progress() (answered, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.answers), len(e.questions)
}

// ProgressText renders the progress line shown under the question cards.
func (e *Engine) ProgressText() string {
	answered, total := e.Progress()
	return fmt.Sprintf("%d / %d answered", answered, total)
}

// CanSubmit reports whether every question has exactly one answer.
func (e *Engine) CanSubmit() bool {
	answered, total := e.Progress()
	return total > 0 && answered == total
}

// Submit sends the full answer set. It is single-flight: a second call while
// one is outstanding fails fast. On success the server's scores are taken as
// authoritative; on failure the answers stay intact for a retry.
func (e *Engine) Submit(ctx context.Context) (*api.ScoreResult, error) {
	e.mu.Lock()
	if e.phase != PhaseInProgress {
		e.mu.Unlock()
		return nil, fmt.Errorf("cannot submit while %s", e.phase)
	}
	if e.submitting {
		e.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if len(e.questions) == 0 || len(e.answers) != len(e.questions) {
		e.mu.Unlock()
		return nil, ErrIncomplete
	}
	answers := make(map[string]string, len(e.answers))
	for id, label := range e.answers {
		answers[id] = label
	}
	e.submitting = true
	e.mu.Unlock()

	result, err := e.client.SubmitAnswers(ctx, answers)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.submitting = false
	if err != nil {
		return nil, err
	}
	e.phase = PhaseSubmitted
	e.result = result
	return result, nil
}

// Result returns the submission outcome once in the Submitted phase.
func (e *Engine) Result() *api.ScoreResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Summary returns the latest score entry backing the AlreadyCompleted view,
// or nil when it could not be fetched.
func (e *Engine) Summary() *api.ScoreEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary
}
