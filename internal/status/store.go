package status

import (
	"context"
	"errors"

	"github.com/creative-automation/backend/internal/models"
)

// ErrNotFound is returned when no campaign exists under an id.
var ErrNotFound = errors.New("campaign not found")

// Store holds the externally visible state of campaign runs, keyed by
// campaign id. Update applies a mutation atomically with respect to other
// updates on the same key within this process; overlapping writers to the
// same campaign id across processes must be serialized by the caller.
type Store interface {
	Create(ctx context.Context, result *models.CampaignResult) error
	Get(ctx context.Context, campaignID string) (*models.CampaignResult, error)
	Update(ctx context.Context, campaignID string, fn func(*models.CampaignResult)) error
}
