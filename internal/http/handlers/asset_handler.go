package handlers

import (
	"path/filepath"
	"strings"

	"github.com/creative-automation/backend/internal/http/dto"
	"github.com/creative-automation/backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AssetHandler struct {
	store storage.Storage
	log   *zap.Logger
}

func NewAssetHandler(store storage.Storage, log *zap.Logger) *AssetHandler {
	return &AssetHandler{store: store, log: log}
}

// UploadAssets accepts multipart image files and stores each under a key
// derived from its filename stem, so briefs can reference it as an
// asset_filename.
func (h *AssetHandler) UploadAssets(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "multipart form required"})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "no files provided"})
	}

	var saved []string
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			h.log.Warn("failed to open uploaded file", zap.String("file", file.Filename), zap.Error(err))
			continue
		}

		name := filepath.Base(file.Filename)
		key := strings.TrimSuffix(name, filepath.Ext(name))
		location, err := h.store.SaveAsset(c.Context(), key, name, src)
		src.Close()
		if err != nil {
			h.log.Warn("failed to save uploaded asset", zap.String("file", name), zap.Error(err))
			continue
		}
		saved = append(saved, location)
	}

	return c.JSON(dto.UploadAssetsResponse{
		UploadedCount: len(saved),
		Files:         saved,
	})
}
