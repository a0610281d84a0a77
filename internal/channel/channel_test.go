package channel

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthpulse/companion/internal/session"
)

var upgrader = websocket.Upgrader{}

// newScoreServer runs a websocket endpoint that records the presented token
// and then streams the given raw frames to the client.
func newScoreServer(t *testing.T, frames []string, gotToken *string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotToken != nil {
			*gotToken = r.URL.Query().Get("token")
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, frame := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func authedStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, store.Save(&session.Session{Token: "tok-ws", Username: "ada"}))
	return store
}

func TestConnectRequiresSession(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
	ch := New("ws://localhost:1", store)
	assert.ErrorIs(t, ch.Connect(), ErrNotAuthenticated)
	assert.Equal(t, Disconnected, ch.State())
}

func TestTokenTravelsAsQueryParam(t *testing.T) {
	var gotToken string
	url := newScoreServer(t, nil, &gotToken)
	ch := New(url, authedStore(t))
	require.NoError(t, ch.Connect())
	defer ch.Close()

	assert.Equal(t, Connected, ch.State())
	assert.Equal(t, "tok-ws", gotToken)
}

func TestScoreUpdateDelivered(t *testing.T) {
	url := newScoreServer(t, []string{
		`{"event": "connected", "user_id": 7}`,
		`{"event": "score_update", "data": {"composite_score": 81.5}}`,
	}, nil)
	ch := New(url, authedStore(t))
	require.NoError(t, ch.Connect())
	defer ch.Close()

	select {
	case update := <-ch.Events():
		assert.Equal(t, 81.5, update.CompositeScore)
	case <-time.After(2 * time.Second):
		t.Fatal("no score update received")
	}
}

func TestMalformedMessagesAreDropped(t *testing.T) {
	url := newScoreServer(t, []string{
		`this is not json`,
		`{"event": "score_update", "data": "not an object"}`,
		`{"event": "mystery"}`,
		`{"event": "score_update", "data": {"composite_score": 60}}`,
	}, nil)
	ch := New(url, authedStore(t))
	require.NoError(t, ch.Connect())
	defer ch.Close()

	// Only the final, well-formed update comes through.
	select {
	case update := <-ch.Events():
		assert.Equal(t, 60.0, update.CompositeScore)
	case <-time.After(2 * time.Second):
		t.Fatal("channel should have survived the malformed frames")
	}
}

func TestRejectedCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	ch := New("ws"+strings.TrimPrefix(srv.URL, "http"), authedStore(t))
	err := ch.Connect()
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Equal(t, Disconnected, ch.State())
}

func TestCloseIsIdempotentAndSafeWithoutConnect(t *testing.T) {
	ch := New("ws://localhost:1", authedStore(t))
	ch.Close()
	ch.Close()
	assert.Equal(t, Disconnected, ch.State())
	assert.Error(t, ch.Connect()) // closed channels stay closed
}

func TestServerCloseEndsEventStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		conn.Close()
	}))
	t.Cleanup(srv.Close)

	ch := New("ws"+strings.TrimPrefix(srv.URL, "http"), authedStore(t))
	require.NoError(t, ch.Connect())

	select {
	case _, ok := <-ch.Events():
		assert.False(t, ok, "event stream should close when the server hangs up")
	case <-time.After(2 * time.Second):
		t.Fatal("event stream did not close")
	}
	assert.Eventually(t, func() bool { return ch.State() == Disconnected }, time.Second, 10*time.Millisecond)
}
