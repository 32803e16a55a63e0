package workflow

import (
	"context"
	"time"

	"github.com/creative-automation/backend/internal/events"
	"github.com/creative-automation/backend/internal/models"
	"github.com/creative-automation/backend/internal/status"
	"go.uber.org/zap"
)

// LogSink receives ordered, human-readable progress lines for one campaign
// run. The workflow only writes records; transport is the sink's job.
type LogSink interface {
	Log(message string)
}

// campaignSink appends log records to the campaign's status entry and fans
// them out on the event bus for live subscribers.
type campaignSink struct {
	ctx        context.Context
	campaignID string
	store      status.Store
	publisher  events.Publisher
	log        *zap.Logger
}

func (s *campaignSink) Log(message string) {
	record := models.LogRecord{Timestamp: time.Now().UTC(), Message: message}
	if err := s.store.Update(s.ctx, s.campaignID, func(r *models.CampaignResult) {
		r.Logs = append(r.Logs, record)
	}); err != nil {
		s.log.Warn("failed to append campaign log", zap.String("campaign_id", s.campaignID), zap.Error(err))
	}

	_ = s.publisher.Publish(s.ctx, events.StreamCampaign, events.Event{
		Type: events.EventCampaignLog,
		Payload: map[string]any{
			"campaign_id": s.campaignID,
			"timestamp":   record.Timestamp,
			"message":     message,
		},
	})

	s.log.Debug("campaign log", zap.String("campaign_id", s.campaignID), zap.String("message", message))
}
