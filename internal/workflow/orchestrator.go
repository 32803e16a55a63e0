package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/creative-automation/backend/internal/compliance"
	"github.com/creative-automation/backend/internal/events"
	"github.com/creative-automation/backend/internal/models"
	"github.com/creative-automation/backend/internal/status"
	"go.uber.org/zap"
)

// Fan-out spans progress 50 to 90; the phases before and after get the rest.
const (
	progressCompliance = 20
	progressFanoutBase = 50
	progressFanoutSpan = 40
	progressFinalizing = 95
)

// Orchestrator runs the four-phase campaign workflow: validate the brief,
// clear compliance, fan out creatives, finalize. Each campaign run is one
// independent unit of work, single-threaded internally; once started it
// proceeds to a terminal state with no cancellation primitive.
type Orchestrator struct {
	agent     *compliance.Agent
	fanout    *Fanout
	store     status.Store
	publisher events.Publisher
	log       *zap.Logger
}

func NewOrchestrator(agent *compliance.Agent, fanout *Fanout, store status.Store, publisher events.Publisher, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		agent:     agent,
		fanout:    fanout,
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Submit registers the campaign and starts the workflow in the background,
// returning the campaign id for status polling.
func (o *Orchestrator) Submit(ctx context.Context, brief *models.CampaignBrief, locale, abVariant string) (string, error) {
	result := models.NewCampaignResult(brief.CampaignID, locale, abVariant)
	if err := o.store.Create(ctx, result); err != nil {
		return "", fmt.Errorf("failed to register campaign: %w", err)
	}

	// The run outlives the submitting request and cannot be aborted.
	go o.Execute(context.Background(), brief, locale, abVariant)

	return brief.CampaignID, nil
}

// Execute runs the workflow to a terminal state and returns the final result.
// Panics in any phase are converted into a failed result, returned like any
// other terminal outcome; they never reach the caller.
func (o *Orchestrator) Execute(ctx context.Context, brief *models.CampaignBrief, locale, abVariant string) (result *models.CampaignResult) {
	campaignID := brief.CampaignID
	sink := &campaignSink{ctx: ctx, campaignID: campaignID, store: o.store, publisher: o.publisher, log: o.log}

	defer func() {
		if rec := recover(); rec != nil {
			o.log.Error("campaign run panicked", zap.String("campaign_id", campaignID), zap.Any("panic", rec))
			result = o.finalize(ctx, campaignID, models.StatusFailed, 0, fmt.Sprintf("Unexpected error: %v", rec))
		}
	}()

	sink.Log(fmt.Sprintf("Campaign: %s", campaignID))

	// Phase 1: validate
	sink.Log("[Step 1/4] Validating campaign brief...")
	if err := brief.Validate(); err != nil {
		sink.Log(err.Error())
		return o.finalize(ctx, campaignID, models.StatusFailed, 0, err.Error())
	}
	sink.Log(fmt.Sprintf("Campaign brief validated (%d products)", len(brief.Products)))

	// Phase 2: compliance
	sink.Log("[Step 2/4] Running compliance checks with auto-fix...")
	o.setProgress(ctx, campaignID, progressCompliance)

	message := brief.ResolveMessage(locale, abVariant)
	outcome, fixedBrief := o.agent.ValidateCampaign(ctx, brief.WithMessage(message), true, locale, sink)
	if !outcome.Compliant {
		msg := fmt.Sprintf("Compliance check failed: %s", outcome.Reason)
		sink.Log(msg)
		return o.finalize(ctx, campaignID, models.StatusFailed, 0, msg)
	}
	if fixedBrief != nil {
		message = fixedBrief.CampaignMessage
		_ = o.store.Update(ctx, campaignID, func(r *models.CampaignResult) {
			r.Fixes = append(r.Fixes, outcome.Fixes...)
		})
		for _, fix := range outcome.Fixes {
			sink.Log(fmt.Sprintf("Fix %d: %s", fix.Attempt, fix.Explanation))
		}
		sink.Log(fmt.Sprintf("Final message: %q", message))
	} else {
		sink.Log("Compliance checks passed")
	}

	// Phase 3: fan-out
	sink.Log("[Step 3/4] Processing products and generating creatives...")
	o.setProgress(ctx, campaignID, progressFanoutBase)
	if locale != "" {
		sink.Log(fmt.Sprintf("Using locale: %s", locale))
	}
	if abVariant != "" {
		sink.Log(fmt.Sprintf("Using A/B variant: %s", abVariant))
	}
	sink.Log(fmt.Sprintf("Campaign message: %q", message))

	total := len(brief.Products)
	for idx, product := range brief.Products {
		sink.Log(fmt.Sprintf("Product %d/%d: %s", idx+1, total, product.Name))

		productResult, errs := o.fanout.ProcessProduct(ctx, campaignID, product, message, locale, sink)

		_ = o.store.Update(ctx, campaignID, func(r *models.CampaignResult) {
			r.OutputPaths[product.Name] = productResult
			r.Errors = append(r.Errors, errs...)
		})
		o.setProgress(ctx, campaignID, progressFanoutBase+(idx+1)*progressFanoutSpan/total)

		sink.Log(fmt.Sprintf("Completed %s (%d creatives)", product.Name, len(productResult.Creatives)))
	}

	// Phase 4: finalize
	sink.Log("[Step 4/4] Finalizing campaign...")
	o.setProgress(ctx, campaignID, progressFinalizing)

	final, err := o.store.Get(ctx, campaignID)
	if err != nil {
		return o.finalize(ctx, campaignID, models.StatusFailed, 0, fmt.Sprintf("Unexpected error: %v", err))
	}

	if final.TotalCreatives() == 0 {
		sink.Log("No creatives were generated")
		return o.finalize(ctx, campaignID, models.StatusFailed, 0, "No creatives were generated")
	}

	sink.Log(fmt.Sprintf("Campaign completed successfully! Generated %d total creatives", final.TotalCreatives()))
	return o.finalize(ctx, campaignID, models.StatusCompleted, 100, "")
}

// setProgress raises the campaign progress; it never moves backward within a
// running campaign. Each actual raise is announced to live subscribers.
func (o *Orchestrator) setProgress(ctx context.Context, campaignID string, progress int) {
	raised := false
	_ = o.store.Update(ctx, campaignID, func(r *models.CampaignResult) {
		if progress > r.Progress {
			r.Progress = progress
			raised = true
		}
	})
	if !raised {
		return
	}

	_ = o.publisher.Publish(ctx, events.StreamCampaign, events.Event{
		Type: events.EventCampaignProgress,
		Payload: map[string]any{
			"campaign_id": campaignID,
			"progress":    progress,
		},
	})
}

// finalize moves the campaign to a terminal state. A total failure resets
// progress to zero; this is the one sanctioned backward move.
func (o *Orchestrator) finalize(ctx context.Context, campaignID, terminalStatus string, progress int, errMsg string) *models.CampaignResult {
	now := time.Now().UTC()
	_ = o.store.Update(ctx, campaignID, func(r *models.CampaignResult) {
		r.Status = terminalStatus
		r.Progress = progress
		r.CompletedAt = &now
		if errMsg != "" {
			r.Errors = append(r.Errors, errMsg)
		}
	})

	_ = o.publisher.Publish(ctx, events.StreamCampaign, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": campaignID,
			"status":      terminalStatus,
			"progress":    progress,
		},
	})

	result, err := o.store.Get(ctx, campaignID)
	if err != nil {
		o.log.Error("failed to read final campaign state", zap.String("campaign_id", campaignID), zap.Error(err))
		return nil
	}
	return result
}
