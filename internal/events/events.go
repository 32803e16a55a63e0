package events

import "context"

// Event types
const (
	EventCampaignLog           = "campaign_log"
	EventCampaignStatusChanged = "campaign_status_changed"
	EventCampaignProgress      = "campaign_progress"
)

// StreamCampaign carries every campaign event; payloads include campaign_id
// so subscribers can route per campaign.
const StreamCampaign = "events:campaign"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
