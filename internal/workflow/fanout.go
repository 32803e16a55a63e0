package workflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/creative-automation/backend/internal/ai"
	"github.com/creative-automation/backend/internal/creative"
	"github.com/creative-automation/backend/internal/models"
	"github.com/creative-automation/backend/internal/storage"
	"go.uber.org/zap"

	_ "image/jpeg"
	_ "image/png"
)

// Fanout produces the per-product, per-aspect-ratio creatives. Products are
// processed independently; a failed ratio is recorded and its siblings
// continue, so a product can legitimately contribute 0-3 creatives.
type Fanout struct {
	engine *creative.Engine
	images ai.ImageOracle
	store  storage.Storage
	log    *zap.Logger
}

func NewFanout(engine *creative.Engine, images ai.ImageOracle, store storage.Storage, log *zap.Logger) *Fanout {
	return &Fanout{engine: engine, images: images, store: store, log: log}
}

// RatioSlug converts an aspect ratio into its path segment ("1:1" -> "1x1").
func RatioSlug(aspectRatio string) string {
	return strings.ReplaceAll(aspectRatio, ":", "x")
}

// ProcessProduct obtains a base image for the product (reused asset when one
// exists, freshly generated otherwise) and renders one creative per aspect
// ratio. Returned errors are non-fatal to the campaign.
func (f *Fanout) ProcessProduct(ctx context.Context, campaignID string, product models.Product, message, locale string, sink LogSink) (models.ProductResult, []string) {
	result := models.ProductResult{Creatives: make(map[string]models.CreativeOutput)}
	var errs []string

	sink.Log(fmt.Sprintf("Searching for existing asset: %s", product.AssetKey()))
	bases := make(map[string]image.Image)

	base, err := f.store.FindAsset(ctx, product.AssetKey())
	switch {
	case err == nil:
		sink.Log("Using existing asset")
		result.AssetSource = models.AssetReused
		for _, ratio := range creative.AspectRatios {
			bases[ratio] = base
		}
	default:
		sink.Log("No existing asset found, generating new images...")
		result.AssetSource = models.AssetGenerated

		generated, genErr := f.generateBaseImages(ctx, product, locale, sink)
		if genErr != nil {
			// No partial generated set is used as a base: the whole product
			// generation attempt fails together.
			errs = append(errs, fmt.Sprintf("Error generating images: %v", genErr))
			sink.Log(fmt.Sprintf("Error generating images: %v", genErr))
			return result, errs
		}
		bases = generated
	}

	for _, ratio := range creative.AspectRatios {
		baseImg, ok := bases[ratio]
		if !ok {
			continue
		}
		sink.Log(fmt.Sprintf("Processing %s...", ratio))

		final, err := f.engine.ProcessCreative(baseImg, ratio, message, product.Name)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Error processing %s: %v", ratio, err))
			sink.Log(fmt.Sprintf("Error processing %s: %v", ratio, err))
			continue
		}

		pathKey := fmt.Sprintf("%s/%s/%s.jpg", campaignID, product.Slug(), RatioSlug(ratio))
		location, err := f.store.Store(ctx, pathKey, final)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Error processing %s: %v", ratio, err))
			sink.Log(fmt.Sprintf("Error processing %s: %v", ratio, err))
			continue
		}

		result.Creatives[ratio] = models.CreativeOutput{
			ProductName: product.Name,
			AspectRatio: ratio,
			Location:    location,
			Source:      result.AssetSource,
		}
		sink.Log(fmt.Sprintf("Saved %s creative", ratio))
	}

	return result, errs
}

// generateBaseImages requests one base image per aspect ratio from the image
// oracle; any single failure aborts the whole set.
func (f *Fanout) generateBaseImages(ctx context.Context, product models.Product, locale string, sink LogSink) (map[string]image.Image, error) {
	prompt := buildImagePrompt(product, locale)
	bases := make(map[string]image.Image, len(creative.AspectRatios))

	for _, ratio := range creative.AspectRatios {
		sink.Log(fmt.Sprintf("Generating image for %s at %s...", product.Name, ratio))
		data, err := f.images.GenerateImage(ctx, prompt, ratio)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s image for %s: %w", ratio, product.Name, err)
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode generated %s image for %s: %w", ratio, product.Name, err)
		}
		bases[ratio] = img
	}

	return bases, nil
}

func buildImagePrompt(product models.Product, locale string) string {
	var languageContext string
	if name := models.LanguageName(locale); name != "" {
		languageContext = fmt.Sprintf("Marketing materials for %s-speaking audience. ", name)
	}
	return fmt.Sprintf(
		"Professional product photography of %s. %s. %sHigh-quality commercial advertising style. Clean background. Studio lighting. Photorealistic. Professional composition.",
		product.Name, product.Description, languageContext,
	)
}
