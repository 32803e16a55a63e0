package dto

import "github.com/creative-automation/backend/internal/models"

type ProductRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AssetFilename string `json:"asset_filename"`
}

type LocaleMessageRequest struct {
	Language string `json:"language"`
	Region   string `json:"region"`
	Message  string `json:"message"`
}

type ABVariantRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ABTestRequest struct {
	Enabled  bool               `json:"enabled"`
	Variants []ABVariantRequest `json:"variants"`
}

// GenerateCampaignRequest is the brief submitted for generation; the same
// shape is accepted by the parse-brief endpoint.
type GenerateCampaignRequest struct {
	CampaignID      string                 `json:"campaign_id"`
	TargetRegion    string                 `json:"target_region"`
	TargetAudience  string                 `json:"target_audience"`
	CampaignMessage string                 `json:"campaign_message"`
	Products        []ProductRequest       `json:"products"`
	Locales         []LocaleMessageRequest `json:"locales"`
	ABTesting       *ABTestRequest         `json:"ab_testing"`
}

func (r *GenerateCampaignRequest) ToBrief() *models.CampaignBrief {
	brief := &models.CampaignBrief{
		CampaignID:      r.CampaignID,
		TargetRegion:    r.TargetRegion,
		TargetAudience:  r.TargetAudience,
		CampaignMessage: r.CampaignMessage,
	}
	for _, p := range r.Products {
		brief.Products = append(brief.Products, models.Product{
			Name:          p.Name,
			Description:   p.Description,
			AssetFilename: p.AssetFilename,
		})
	}
	for _, l := range r.Locales {
		brief.Locales = append(brief.Locales, models.LocaleMessage{
			Language: l.Language,
			Region:   l.Region,
			Message:  l.Message,
		})
	}
	if r.ABTesting != nil {
		ab := &models.ABTestConfig{Enabled: r.ABTesting.Enabled}
		for _, v := range r.ABTesting.Variants {
			ab.Variants = append(ab.Variants, models.ABVariant{Name: v.Name, Message: v.Message})
		}
		brief.ABTesting = ab
	}
	return brief
}
