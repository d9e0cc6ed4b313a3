package pubsub

import (
	"testing"
	"time"

	"github.com/obaflips/court-reads/internal/logger"
)

func init() {
	logger.Init("error")
}

func waitForEvent(t *testing.T, ch chan Event, wantType string) Event {
	t.Helper()
	select {
	case event := <-ch:
		if event.Type != wantType {
			t.Fatalf("got event type %q, want %q", event.Type, wantType)
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q event", wantType)
		return Event{}
	}
}

func TestLocalPublishFanOut(t *testing.T) {
	ps := New()
	first := ps.Subscribe()
	second := ps.Subscribe()
	defer ps.Unsubscribe(first)
	defer ps.Unsubscribe(second)

	ps.Publish(DraftStartEvent("sess-1", 3, 5))

	for _, ch := range []chan Event{first, second} {
		event := waitForEvent(t, ch, EventDraftStart)
		if event.Payload["sessionId"] != "sess-1" {
			t.Errorf("payload sessionId = %v", event.Payload["sessionId"])
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()
	ps.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	ps.Publish(DraftCompleteEvent("sess-1"))
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()
	defer ps.Unsubscribe(ch)

	// Overflow the buffered channel; extra events are dropped rather
	// than blocking the publisher.
	for i := 0; i < 50; i++ {
		ps.Publish(DraftCompleteEvent("sess-1"))
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			if received == 0 || received > 10 {
				t.Errorf("received %d events, want 1-10 (channel capacity)", received)
			}
			return
		}
	}
}

func TestUpstreamBridging(t *testing.T) {
	upstream := NewMockNATSPubSub("courtreads.events")
	defer upstream.Close()

	ps := NewWithUpstream(upstream)
	ch := ps.Subscribe()
	defer ps.Unsubscribe(ch)

	// Give the bridge goroutine time to attach to the upstream.
	time.Sleep(50 * time.Millisecond)

	ps.Publish(DraftPickEvent("sess-1", "The Iron Wolves", "c1", "Vin", 1, 1))

	event := waitForEvent(t, ch, EventDraftPick)
	if event.Payload["characterName"] != "Vin" {
		t.Errorf("payload = %+v", event.Payload)
	}
	if upstream.GetMessageCount() != 1 {
		t.Errorf("upstream stored %d messages, want 1", upstream.GetMessageCount())
	}
}

func TestMockReplay(t *testing.T) {
	upstream := NewMockNATSPubSub("courtreads.events")
	defer upstream.Close()

	for i := 0; i < 5; i++ {
		upstream.Publish(DraftCompleteEvent("sess-1"))
	}

	ch := make(chan Event, 10)
	upstream.ReplayMessages(ch, 3)
	if got := len(ch); got != 3 {
		t.Errorf("replayed %d events, want 3", got)
	}
}

func TestEventConstructors(t *testing.T) {
	pick := DraftPickEvent("s", "team", "c9", "Kaz", 2, 7)
	if pick.Type != EventDraftPick || pick.Payload["round"] != 2 || pick.Payload["pick"] != 7 {
		t.Errorf("pick event = %+v", pick)
	}

	sim := SimResultEvent("s", 118, 110, true)
	if sim.Type != EventSimResult || sim.Payload["userWon"] != true {
		t.Errorf("sim event = %+v", sim)
	}
}
