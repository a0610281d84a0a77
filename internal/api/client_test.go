package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthpulse/companion/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
	return NewClient(srv.URL, store), store
}

func TestBearerAttachedWhenAuthenticated(t *testing.T) {
	var gotAuth, gotContentType string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(Profile{Username: "ada"})
	}))
	require.NoError(t, store.Save(&session.Session{Token: "tok-1", Username: "ada"}))

	profile, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Empty(t, gotContentType) // GET carries no body, so no content type
	assert.Equal(t, "ada", profile.Username)
}

func TestNoBearerWhenLoggedOut(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "fresh", Username: "ada"})
	}))

	resp, err := client.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "fresh", resp.AccessToken)
}

func TestJSONContentType(t *testing.T) {
	var gotContentType string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "t"})
	}))

	_, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
}

func TestRegisterSendsMultipartWithBoundary(t *testing.T) {
	var gotContentType, gotEmail string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotEmail = r.FormValue("email")
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "t", Username: r.FormValue("username")})
	}))

	resp, err := client.Register(context.Background(), RegisterParams{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "pw",
		Age:      30,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="))
	assert.Equal(t, "ada@example.com", gotEmail)
	assert.Equal(t, "ada", resp.Username)
}

func TestUnauthorizedTearsDownSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, store.Save(&session.Session{Token: "stale", Username: "ada"}))

	handlerFired := false
	client.SetAuthExpiredHandler(func() { handlerFired = true })

	_, err := client.Me(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, handlerFired)
	assert.Nil(t, store.Current())
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestLoginUnauthorizedIsNormalError(t *testing.T) {
	// A 401 on an unauthenticated call is a bad password, not an expired
	// session, and must not fire the teardown path.
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password."})
	}))

	handlerFired := false
	client.SetAuthExpiredHandler(func() { handlerFired = true })

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.False(t, handlerFired)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid email or password.", apiErr.Detail)
	assert.Nil(t, store.Current())
}

func TestServerDetailSurfacedVerbatim(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Submission failed"})
	}))
	require.NoError(t, store.Save(&session.Session{Token: "tok"}))

	_, err := client.SubmitAnswers(context.Background(), map[string]string{"q1": "Often"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Submission failed", apiErr.Detail)
}

func TestMissingDetailFallsBackToGenericMessage(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	require.NoError(t, store.Save(&session.Session{Token: "tok"}))

	_, err := client.TodayQuestions(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Could not load today's questions", apiErr.Detail)
}

func TestHistoryPassesLimit(t *testing.T) {
	var gotLimit string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode([]ScoreEntry{{Date: "2026-08-30", CompositeScore: 72}})
	}))
	require.NoError(t, store.Save(&session.Session{Token: "tok"}))

	entries, err := client.History(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, "14", gotLimit)
	require.Len(t, entries, 1)
	assert.Equal(t, 72.0, entries[0].CompositeScore)
}

func TestCreatePredictionRejectsUnknownType(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made for an invalid type")
	}))

	_, err := client.CreatePrediction(context.Background(), "telepathy")
	assert.Error(t, err)
}

func TestWSBaseURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8000", WSBaseURL("http://localhost:8000"))
	assert.Equal(t, "wss://api.healthpulse.app", WSBaseURL("https://api.healthpulse.app"))
}
