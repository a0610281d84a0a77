package assessment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/session"
)

func TestBadgeThresholds(t *testing.T) {
	cases := []struct {
		score float64
		badge string
	}{
		{100, "Health Champion"},
		{85, "Health Champion"},
		{84, "Wellness Star"},
		{70, "Wellness Star"},
		{69, "Making Progress"},
		{55, "Making Progress"},
		{54, "Getting Started"},
		{40, "Getting Started"},
		{39, "Keep Going"},
		{0, "Keep Going"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.badge, Badge(tc.score), "score %.0f", tc.score)
	}
}

func TestMessageUsesSameThresholds(t *testing.T) {
	assert.Equal(t, Message(85), Message(92))
	assert.NotEqual(t, Message(84), Message(85))
	assert.NotEqual(t, Message(39), Message(40))
}

func fiveQuestions() []api.Question {
	ids := []string{"q_sleep", "q_diet", "q_activity", "q_mental", "q_location"}
	cats := []string{"sleep", "diet", "activity", "mental", "location"}
	questions := make([]api.Question, len(ids))
	for i, id := range ids {
		questions[i] = api.Question{
			QuestionID:   id,
			Category:     cats[i],
			QuestionText: "How did it go?",
			Options:      []api.Option{{Label: "Poorly"}, {Label: "Okay"}, {Label: "Great"}},
		}
	}
	return questions
}

// testEngine wires an engine to a stub backend.
func testEngine(t *testing.T, handler http.Handler) *Engine {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, store.Save(&session.Session{Token: "tok", Username: "ada"}))
	return NewEngine(api.NewClient(srv.URL, store))
}

func todayHandler(set api.DailySet) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/daily-questions/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(set)
	})
	return mux
}

func TestStartEntersInProgress(t *testing.T) {
	e := testEngine(t, todayHandler(api.DailySet{Date: "2026-08-31", Questions: fiveQuestions()}))
	require.NoError(t, e.Start(context.Background()))

	assert.Equal(t, PhaseInProgress, e.Phase())
	assert.Len(t, e.Questions(), 5)
	assert.Equal(t, "0 / 5 answered", e.ProgressText())
	assert.False(t, e.CanSubmit())
}

func TestStartFailureStaysLoading(t *testing.T) {
	e := testEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	err := e.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseLoading, e.Phase())
	assert.Empty(t, e.Questions())
}

func TestStartAlreadyCompletedFetchesSummary(t *testing.T) {
	var historyLimit string
	mux := http.NewServeMux()
	mux.HandleFunc("/daily-questions/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.DailySet{Date: "2026-08-31", AlreadyCompleted: true, Questions: fiveQuestions()})
	})
	mux.HandleFunc("/daily-questions/history", func(w http.ResponseWriter, r *http.Request) {
		historyLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode([]api.ScoreEntry{{Date: "2026-08-31", CompositeScore: 88}})
	})

	e := testEngine(t, mux)
	require.NoError(t, e.Start(context.Background()))

	assert.Equal(t, PhaseAlreadyCompleted, e.Phase())
	assert.Equal(t, "1", historyLimit)
	assert.Empty(t, e.Questions(), "no question cards in the completed state")
	require.NotNil(t, e.Summary())
	assert.Equal(t, 88.0, e.Summary().CompositeScore)
	assert.Equal(t, "Health Champion", Badge(e.Summary().CompositeScore))
}

func TestSelectOverwritesWithoutGrowingCount(t *testing.T) {
	e := testEngine(t, todayHandler(api.DailySet{Questions: fiveQuestions()}))
	require.NoError(t, e.Start(context.Background()))

	require.NoError(t, e.Select("q_sleep", "Okay"))
	require.NoError(t, e.Select("q_sleep", "Great"))

	answered, total := e.Progress()
	assert.Equal(t, 1, answered)
	assert.Equal(t, 5, total)
	label, ok := e.Answer("q_sleep")
	require.True(t, ok)
	assert.Equal(t, "Great", label)
}

func TestSelectUnknownQuestion(t *testing.T) {
	e := testEngine(t, todayHandler(api.DailySet{Questions: fiveQuestions()}))
	require.NoError(t, e.Start(context.Background()))
	assert.Error(t, e.Select("q_nonexistent", "Great"))
}

func answerAll(t *testing.T, e *Engine) {
	t.Helper()
	for _, q := range e.Questions() {
		require.NoError(t, e.Select(q.QuestionID, q.Options[0].Label))
	}
}

func TestCanSubmitOnlyWhenComplete(t *testing.T) {
	e := testEngine(t, todayHandler(api.DailySet{Questions: fiveQuestions()}))
	require.NoError(t, e.Start(context.Background()))

	questions := e.Questions()
	for i, q := range questions {
		assert.False(t, e.CanSubmit(), "after %d of %d answers", i, len(questions))
		require.NoError(t, e.Select(q.QuestionID, "Okay"))
	}
	assert.True(t, e.CanSubmit())
	assert.Equal(t, "5 / 5 answered", e.ProgressText())
}

func TestSubmitIncomplete(t *testing.T) {
	e := testEngine(t, todayHandler(api.DailySet{Questions: fiveQuestions()}))
	require.NoError(t, e.Start(context.Background()))

	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, PhaseInProgress, e.Phase())
}

func TestSubmitSuccess(t *testing.T) {
	var gotAnswers map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/daily-questions/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.DailySet{Questions: fiveQuestions()})
	})
	mux.HandleFunc("/daily-questions/submit", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Answers map[string]string `json:"answers"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAnswers = body.Answers
		json.NewEncoder(w).Encode(api.ScoreResult{CompositeScore: 76, Badge: "Wellness Star"})
	})

	e := testEngine(t, mux)
	require.NoError(t, e.Start(context.Background()))
	answerAll(t, e)

	result, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseSubmitted, e.Phase())
	assert.Len(t, gotAnswers, 5)
	// The server's result is authoritative; nothing is re-scored locally.
	assert.Equal(t, 76.0, result.CompositeScore)
	assert.Equal(t, result, e.Result())
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/daily-questions/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.DailySet{Questions: fiveQuestions()})
	})
	mux.HandleFunc("/daily-questions/submit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Submission failed"})
	})

	e := testEngine(t, mux)
	require.NoError(t, e.Start(context.Background()))
	answerAll(t, e)

	_, err := e.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Submission failed", err.Error())
	assert.Equal(t, PhaseInProgress, e.Phase())
	answered, total := e.Progress()
	assert.Equal(t, total, answered, "answers survive a failed submission")
	assert.True(t, e.CanSubmit(), "retry stays possible")
}

func TestSubmitSingleFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/daily-questions/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.DailySet{Questions: fiveQuestions()})
	})
	mux.HandleFunc("/daily-questions/submit", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		json.NewEncoder(w).Encode(api.ScoreResult{CompositeScore: 50})
	})

	e := testEngine(t, mux)
	require.NoError(t, e.Start(context.Background()))
	answerAll(t, e)

	firstDone := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		firstDone <- err
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the server")
	}

	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, PhaseSubmitted, e.Phase())
}
