// Package channel maintains the long-lived push connection that delivers
// out-of-band score updates. Events are advisory: consumers refetch state
// instead of trusting the pushed payload.
package channel

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/healthpulse/companion/internal/session"
)

// keepAliveInterval is how often a ping payload is written while connected.
// The backend answers with a pong event, which is ignored like any other
// non-score message.
const keepAliveInterval = 30 * time.Second

// ErrAuthenticationFailed indicates the connection was rejected due to a bad
// or expired credential.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrNotAuthenticated indicates there is no session to connect with.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the connection lifecycle state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// event is the wire shape of an inbound push message.
type event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ScoreUpdate is delivered when the backend announces a new health score.
type ScoreUpdate struct {
	CompositeScore float64 `json:"composite_score"`
}

// Channel is the push connection to the backend. One per session; opened
// after authentication and torn down with it. It never reconnects on its
// own; reconnection policy belongs to the caller.
type Channel struct {
	wsBaseURL string
	store     *session.Store

	mutex    sync.RWMutex
	conn     *websocket.Conn
	state    State
	stopChan chan struct{}

	events     chan ScoreUpdate
	eventsOnce sync.Once
	closeOnce  sync.Once
	verbose    bool
}

// New creates a channel bound to a session store. wsBaseURL is the ws(s)://
// form of the backend URL.
func New(wsBaseURL string, store *session.Store) *Channel {
	return &Channel{
		wsBaseURL: wsBaseURL,
		store:     store,
		events:    make(chan ScoreUpdate, 8),
		stopChan:  make(chan struct{}),
	}
}

// SetVerbose enables connection logging.
func (c *Channel) SetVerbose(v bool) {
	c.verbose = v
}

// Events returns the stream of score updates. The channel is closed when the
// connection ends for good.
func (c *Channel) Events() <-chan ScoreUpdate {
	return c.events
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.state
}

// Connect dials the push endpoint. The credential travels as a query
// parameter because the connection is established before any request/response
// exchange can carry a header.
func (c *Channel) Connect() error {
	select {
	case <-c.stopChan:
		return fmt.Errorf("channel closed")
	default:
	}

	token := c.store.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	c.mutex.Lock()
	if c.state != Disconnected {
		c.mutex.Unlock()
		return fmt.Errorf("channel already %s", c.state)
	}
	c.state = Connecting
	c.mutex.Unlock()

	wsURL := fmt.Sprintf("%s/ws/scores?token=%s", c.wsBaseURL, url.QueryEscape(token))

	if c.verbose {
		log.Printf("[Channel] connecting to %s/ws/scores", c.wsBaseURL)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		c.mutex.Lock()
		c.state = Disconnected
		c.mutex.Unlock()
		if resp != nil && (resp.StatusCode == 401 || resp.StatusCode == 403) {
			return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mutex.Lock()
	c.conn = conn
	c.state = Connected
	c.mutex.Unlock()

	go c.readLoop(conn)
	go c.keepAliveLoop(conn)

	return nil
}

// readLoop consumes inbound messages until the connection dies. Malformed or
// unrecognized frames are dropped; they never bring the channel down.
func (c *Channel) readLoop(conn *websocket.Conn) {
	defer func() {
		c.mutex.Lock()
		c.state = Disconnected
		c.conn = nil
		c.mutex.Unlock()
		conn.Close()
		c.eventsOnce.Do(func() { close(c.events) })
		if c.verbose {
			log.Printf("[Channel] disconnected")
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}

		switch ev.Event {
		case "score_update":
			var update ScoreUpdate
			if err := json.Unmarshal(ev.Data, &update); err != nil {
				continue
			}
			select {
			case c.events <- update:
			default:
				// Consumer is behind; events only mean "refetch", so
				// dropping one loses nothing.
			}
		case "connected", "pong":
			// Handshake and keep-alive echoes.
		default:
			if c.verbose {
				log.Printf("[Channel] ignoring event %q", ev.Event)
			}
		}
	}
}

// keepAliveLoop writes a ping payload on a fixed interval so the idle
// connection isn't closed. Delivery failures are ignored; the read loop is
// the one that notices a dead connection.
func (c *Channel) keepAliveLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = conn.WriteMessage(websocket.TextMessage, []byte("ping"))
		case <-c.stopChan:
			return
		}
	}
}

// Close tears the connection down, best effort. Safe to call multiple times
// and without a prior Connect.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.stopChan)
	})

	c.mutex.Lock()
	conn := c.conn
	c.conn = nil
	c.state = Disconnected
	c.mutex.Unlock()

	if conn != nil {
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		_ = conn.Close()
	}
}
