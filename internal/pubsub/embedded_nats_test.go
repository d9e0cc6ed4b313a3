package pubsub

import (
	"testing"
	"time"
)

func startEmbedded(t *testing.T) *EmbeddedNATSPubSub {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping embedded NATS test in short mode")
	}

	ps, err := NewEmbeddedNATSPubSub(DefaultEmbeddedNATSOptions())
	if err != nil {
		t.Fatalf("start embedded NATS: %v", err)
	}
	t.Cleanup(ps.Close)
	return ps
}

func TestEmbeddedNATSRoundTrip(t *testing.T) {
	ps := startEmbedded(t)

	ch := ps.Subscribe()
	defer ps.Unsubscribe(ch)

	// Let the JetStream consumer attach before publishing.
	time.Sleep(100 * time.Millisecond)

	ps.Publish(DraftPickEvent("sess-1", "The Ember Guard", "c3", "Kvothe", 1, 2))

	event := waitForEvent(t, ch, EventDraftPick)
	if event.Payload["characterId"] != "c3" {
		t.Errorf("payload = %+v", event.Payload)
	}
}

func TestEmbeddedNATSMultipleSubscribers(t *testing.T) {
	ps := startEmbedded(t)

	first := ps.Subscribe()
	second := ps.Subscribe()
	defer ps.Unsubscribe(first)
	defer ps.Unsubscribe(second)

	if got := ps.GetSubscriberCount(); got != 2 {
		t.Fatalf("subscriber count = %d, want 2", got)
	}

	time.Sleep(100 * time.Millisecond)
	ps.Publish(DraftCompleteEvent("sess-9"))

	for _, ch := range []chan Event{first, second} {
		event := waitForEvent(t, ch, EventDraftComplete)
		if event.Payload["sessionId"] != "sess-9" {
			t.Errorf("payload = %+v", event.Payload)
		}
	}
}

func TestEmbeddedNATSBehindPubSub(t *testing.T) {
	embedded := startEmbedded(t)

	ps := NewWithUpstream(embedded)
	ch := ps.Subscribe()
	defer ps.Unsubscribe(ch)

	time.Sleep(100 * time.Millisecond)
	ps.Publish(SimResultEvent("sess-2", 121, 109, true))

	event := waitForEvent(t, ch, EventSimResult)
	if event.Payload["userWon"] != true {
		t.Errorf("payload = %+v", event.Payload)
	}
}
