// Package pubsub fans draft and simulation events out to SSE clients.
// Locally it is a channel fan-out; with an upstream broker attached
// (NATS, embedded or external) events round-trip through the broker
// so every server instance sees every pick.
package pubsub

import (
	"sync"

	"github.com/obaflips/court-reads/internal/logger"
)

// Event types published over the course of a session.
const (
	EventDraftStart    = "draft:start"
	EventDraftPick     = "draft:pick"
	EventDraftComplete = "draft:complete"
	EventSimResult     = "sim:result"
	EventTeamSaved     = "team:saved"
)

// Event is one wire-level notification.
type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// DraftPickEvent announces one completed pick.
func DraftPickEvent(sessionID, teamName, characterID, characterName string, round, pickNumber int) Event {
	return Event{
		Type: EventDraftPick,
		Payload: map[string]interface{}{
			"sessionId":     sessionID,
			"team":          teamName,
			"characterId":   characterID,
			"characterName": characterName,
			"round":         round,
			"pick":          pickNumber,
		},
	}
}

// DraftStartEvent announces a draft moving to the drafting phase.
func DraftStartEvent(sessionID string, teams int, rounds int) Event {
	return Event{
		Type: EventDraftStart,
		Payload: map[string]interface{}{
			"sessionId": sessionID,
			"teams":     teams,
			"rounds":    rounds,
		},
	}
}

// DraftCompleteEvent announces a finished draft.
func DraftCompleteEvent(sessionID string) Event {
	return Event{
		Type:    EventDraftComplete,
		Payload: map[string]interface{}{"sessionId": sessionID},
	}
}

// SimResultEvent announces a simulated final score.
func SimResultEvent(sessionID string, userScore, hofScore int, userWon bool) Event {
	return Event{
		Type: EventSimResult,
		Payload: map[string]interface{}{
			"sessionId": sessionID,
			"userScore": userScore,
			"hofScore":  hofScore,
			"userWon":   userWon,
		},
	}
}

// Upstream is a broker the local fan-out bridges through.
type Upstream interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// PubSub is the in-process fan-out that SSE handlers subscribe to.
type PubSub struct {
	mu          sync.RWMutex
	subscribers []chan Event
	upstream    Upstream
}

// New creates a local-only PubSub.
func New() *PubSub {
	return &PubSub{subscribers: []chan Event{}}
}

// NewWithUpstream creates a PubSub bridged through a broker. Publishes
// go to the upstream; events coming back from it (including our own)
// are forwarded to local subscribers.
func NewWithUpstream(upstream Upstream) *PubSub {
	ps := &PubSub{
		subscribers: []chan Event{},
		upstream:    upstream,
	}

	go func() {
		ch := upstream.Subscribe()
		for event := range ch {
			ps.publishLocal(event)
		}
		logger.Debug("PubSub: upstream channel closed")
	}()

	return ps
}

// Subscribe adds a subscriber and returns its event channel.
func (ps *PubSub) Subscribe() chan Event {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan Event, 10)
	ps.subscribers = append(ps.subscribers, ch)
	logger.Debug("PubSub: subscriber added", "totalSubscribers", len(ps.subscribers))
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (ps *PubSub) Unsubscribe(ch chan Event) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i, sub := range ps.subscribers {
		if sub == ch {
			close(ch)
			ps.subscribers = append(ps.subscribers[:i], ps.subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers an event to every subscriber. With an upstream
// configured the event routes through the broker first so other
// instances receive it too.
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		ps.upstream.Publish(event)
		return
	}
	ps.publishLocal(event)
}

func (ps *PubSub) publishLocal(event Event) {
	ps.mu.RLock()
	subs := make([]chan Event, len(ps.subscribers))
	copy(subs, ps.subscribers)
	ps.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop rather than block the draft.
		}
	}
}
