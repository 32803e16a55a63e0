package events

import (
	"context"
	"testing"
)

func TestLocalBusRoutesByStream(t *testing.T) {
	bus := NewLocalBus()
	ctx := context.Background()

	var campaign []Event
	var other []Event
	if err := bus.Subscribe(ctx, StreamCampaign, func(e Event) { campaign = append(campaign, e) }); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if err := bus.Subscribe(ctx, "other", func(e Event) { other = append(other, e) }); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	events := []Event{
		{Type: EventCampaignLog, Payload: map[string]any{"campaign_id": "c1", "message": "started"}},
		{Type: EventCampaignProgress, Payload: map[string]any{"campaign_id": "c1", "progress": 20}},
		{Type: EventCampaignStatusChanged, Payload: map[string]any{"campaign_id": "c1", "status": "completed"}},
	}
	for _, e := range events {
		if err := bus.Publish(ctx, StreamCampaign, e); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}

	if len(campaign) != len(events) {
		t.Fatalf("campaign stream delivered %d events, want %d", len(campaign), len(events))
	}
	for i, e := range campaign {
		if e.Type != events[i].Type {
			t.Errorf("event %d type = %q, want %q", i, e.Type, events[i].Type)
		}
	}
	if len(other) != 0 {
		t.Errorf("unrelated stream received %d events", len(other))
	}
}

func TestLocalBusMultipleHandlers(t *testing.T) {
	bus := NewLocalBus()
	ctx := context.Background()

	first, second := 0, 0
	_ = bus.Subscribe(ctx, StreamCampaign, func(Event) { first++ })
	_ = bus.Subscribe(ctx, StreamCampaign, func(Event) { second++ })

	_ = bus.Publish(ctx, StreamCampaign, Event{Type: EventCampaignLog})

	if first != 1 || second != 1 {
		t.Errorf("handler calls = (%d, %d), want (1, 1)", first, second)
	}
}

func TestLocalBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewLocalBus()

	if err := bus.Publish(context.Background(), "empty", Event{Type: EventCampaignLog}); err != nil {
		t.Errorf("Publish() to empty stream error = %v", err)
	}
}
