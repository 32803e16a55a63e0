package handlers

import (
	"errors"

	"github.com/creative-automation/backend/internal/http/dto"
	"github.com/creative-automation/backend/internal/models"
	"github.com/creative-automation/backend/internal/status"
	"github.com/creative-automation/backend/internal/storage"
	"github.com/creative-automation/backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	orchestrator *workflow.Orchestrator
	statusStore  status.Store
	store        storage.Storage
	log          *zap.Logger
}

func NewCampaignHandler(orchestrator *workflow.Orchestrator, statusStore status.Store, store storage.Storage, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		orchestrator: orchestrator,
		statusStore:  statusStore,
		store:        store,
		log:          log,
	}
}

func (h *CampaignHandler) GenerateCampaign(c *fiber.Ctx) error {
	var req dto.GenerateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	brief := req.ToBrief()
	if brief.CampaignID == "" {
		brief.CampaignID = uuid.New().String()
	}
	if err := brief.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	locale := c.Query("locale")
	abVariant := c.Query("ab_variant")

	campaignID, err := h.orchestrator.Submit(c.Context(), brief, locale, abVariant)
	if err != nil {
		h.log.Error("campaign submission failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "campaign submission failed"})
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.GenerateCampaignResponse{
		CampaignID: campaignID,
		Status:     models.StatusProcessing,
		Message:    "Campaign generation started. Use /api/v1/campaigns/" + campaignID + "/status for updates.",
	})
}

func (h *CampaignHandler) GetStatus(c *fiber.Ctx) error {
	campaignID := c.Params("id")

	result, err := h.statusStore.Get(c.Context(), campaignID)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
		}
		h.log.Error("status lookup failed", zap.String("campaign_id", campaignID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(result)
}

func (h *CampaignHandler) ListOutputs(c *fiber.Ctx) error {
	campaignID := c.Params("id")

	outputs, err := h.store.List(c.Context(), campaignID)
	if err != nil {
		h.log.Error("output listing failed", zap.String("campaign_id", campaignID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list outputs"})
	}

	return c.JSON(dto.OutputsResponse{
		CampaignID:  campaignID,
		OutputCount: len(outputs),
		Outputs:     outputs,
	})
}

func (h *CampaignHandler) ParseBrief(c *fiber.Ctx) error {
	var req dto.GenerateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	brief := req.ToBrief()
	return c.JSON(dto.ParseBriefResponse{
		Locales:        brief.AvailableLocales(),
		ABVariants:     brief.AvailableVariants(),
		DefaultMessage: brief.CampaignMessage,
	})
}
