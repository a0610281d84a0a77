// Package dashboard composes profile, score history, the latest prediction,
// and the latest mental check-in into one view model, refreshed on demand
// and on pushed score updates.
package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/channel"
)

// historyLimit caps how many past score entries back the trend display.
const historyLimit = 14

// View is the assembled dashboard state. It is derived and non-authoritative:
// every refresh rebuilds it whole, never merging stale fields with fresh ones.
// A nil section means its fetch failed and the display degrades to a
// placeholder there.
type View struct {
	Profile     *api.Profile
	History     []api.ScoreEntry // chronological, oldest first
	Prediction  *api.Prediction
	Checkin     *api.MentalCheckin
	RefreshedAt time.Time
}

// LatestScore returns the most recent score entry, if any.
func (v View) LatestScore() *api.ScoreEntry {
	if len(v.History) == 0 {
		return nil
	}
	return &v.History[len(v.History)-1]
}

// Aggregator owns the dashboard view model.
type Aggregator struct {
	client *api.Client

	mu   sync.RWMutex
	view View
	subs []chan View
}

// New creates an aggregator bound to the API client.
func New(client *api.Client) *Aggregator {
	return &Aggregator{client: client}
}

// Refresh issues the four sub-fetches concurrently and assembles a view from
// whichever succeeded. The returned error joins the individual failures so
// the caller can log them; a partially failed refresh still yields a view.
func (a *Aggregator) Refresh(ctx context.Context) (View, error) {
	var (
		profile    *api.Profile
		history    []api.ScoreEntry
		prediction *api.Prediction
		checkin    *api.MentalCheckin

		profileErr, historyErr, predErr, checkinErr error
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		profile, profileErr = a.client.Me(ctx)
	}()
	go func() {
		defer wg.Done()
		history, historyErr = a.client.History(ctx, historyLimit)
	}()
	go func() {
		defer wg.Done()
		var preds []api.Prediction
		preds, predErr = a.client.Predictions(ctx, 1)
		if predErr == nil && len(preds) > 0 {
			prediction = &preds[0]
		}
	}()
	go func() {
		defer wg.Done()
		var checkins []api.MentalCheckin
		checkins, checkinErr = a.client.Checkins(ctx, 1)
		if checkinErr == nil && len(checkins) > 0 {
			checkin = &checkins[0]
		}
	}()
	wg.Wait()

	view := View{
		Profile:     profile,
		History:     reverse(history),
		Prediction:  prediction,
		Checkin:     checkin,
		RefreshedAt: time.Now(),
	}

	a.mu.Lock()
	a.view = view
	subs := a.subs
	a.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub <- view:
		default:
			// A slow subscriber misses an intermediate view, never blocks
			// the refresh.
		}
	}

	return view, errors.Join(profileErr, historyErr, predErr, checkinErr)
}

// Subscribe returns a stream of assembled views, one per refresh. The
// rendering surface consumes this instead of raw push events.
func (a *Aggregator) Subscribe() <-chan View {
	sub := make(chan View, 4)
	a.mu.Lock()
	a.subs = append(a.subs, sub)
	a.mu.Unlock()
	return sub
}

// View returns the last assembled view model.
func (a *Aggregator) View() View {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view
}

// Watch refreshes the dashboard on every pushed score update until the
// context ends or the event stream closes. The event payload itself is never
// merged into state; an event only means "refetch".
func (a *Aggregator) Watch(ctx context.Context, events <-chan channel.ScoreUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if _, err := a.Refresh(ctx); err != nil {
				if errors.Is(err, api.ErrSessionExpired) {
					return
				}
				log.Printf("[Dashboard] refresh after score update: %v", err)
			}
		}
	}
}

// reverse returns the entries oldest-first. The backend hands history back
// newest-first; chronological displays want the other order.
func reverse(entries []api.ScoreEntry) []api.ScoreEntry {
	if entries == nil {
		return nil
	}
	out := make([]api.ScoreEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
