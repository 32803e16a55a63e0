package models

import (
	"fmt"
	"strings"
)

// MaxMessageLength bounds the campaign message accepted in a brief.
const MaxMessageLength = 200

// MinProducts is the smallest product list a brief may carry.
const MinProducts = 2

// CampaignBrief is the immutable campaign input. The workflow derives a copy
// when compliance rewrites the message; it never mutates an accepted brief.
type CampaignBrief struct {
	CampaignID      string          `json:"campaign_id"`
	TargetRegion    string          `json:"target_region"`
	TargetAudience  string          `json:"target_audience"`
	CampaignMessage string          `json:"campaign_message"`
	Products        []Product       `json:"products"`
	Locales         []LocaleMessage `json:"locales,omitempty"`
	ABTesting       *ABTestConfig   `json:"ab_testing,omitempty"`
}

type Product struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AssetFilename string `json:"asset_filename"`
}

// LocaleMessage overrides the campaign message for one locale, keyed by
// "language_region" (e.g. "es_ES").
type LocaleMessage struct {
	Language string `json:"language"`
	Region   string `json:"region"`
	Message  string `json:"message"`
}

func (l LocaleMessage) Code() string {
	return l.Language + "_" + l.Region
}

type ABTestConfig struct {
	Enabled  bool        `json:"enabled"`
	Variants []ABVariant `json:"variants,omitempty"`
}

type ABVariant struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Validate checks the brief has every required field and enough products.
func (b *CampaignBrief) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"campaign_id", b.CampaignID},
		{"target_region", b.TargetRegion},
		{"target_audience", b.TargetAudience},
		{"campaign_message", b.CampaignMessage},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("missing required field: %s", f.name)
		}
	}
	if len(b.Products) == 0 {
		return fmt.Errorf("missing required field: products")
	}
	if len(b.Products) < MinProducts {
		return fmt.Errorf("at least %d products required, found %d", MinProducts, len(b.Products))
	}
	if len(b.CampaignMessage) > MaxMessageLength {
		return fmt.Errorf("campaign_message exceeds %d characters", MaxMessageLength)
	}
	return nil
}

// ResolveMessage returns the effective message for the given locale and A/B
// variant. Precedence is variant > locale > default; an unknown variant or
// locale falls through silently to the next level.
func (b *CampaignBrief) ResolveMessage(locale, abVariant string) string {
	if abVariant != "" && b.ABTesting != nil && b.ABTesting.Enabled {
		for _, v := range b.ABTesting.Variants {
			if v.Name == abVariant && v.Message != "" {
				return v.Message
			}
		}
	}

	if locale != "" {
		language := strings.SplitN(locale, "_", 2)[0]
		for _, l := range b.Locales {
			if l.Code() == locale || l.Language == language {
				if l.Message != "" {
					return l.Message
				}
			}
		}
	}

	return b.CampaignMessage
}

// AvailableLocales lists the locale codes configured on the brief.
func (b *CampaignBrief) AvailableLocales() []string {
	codes := make([]string, 0, len(b.Locales))
	for _, l := range b.Locales {
		codes = append(codes, l.Code())
	}
	return codes
}

// AvailableVariants lists A/B variant names, empty when testing is disabled.
func (b *CampaignBrief) AvailableVariants() []string {
	if b.ABTesting == nil || !b.ABTesting.Enabled {
		return []string{}
	}
	names := make([]string, 0, len(b.ABTesting.Variants))
	for _, v := range b.ABTesting.Variants {
		if v.Name != "" {
			names = append(names, v.Name)
		}
	}
	return names
}

// WithMessage returns a deep copy of the brief carrying a replacement message.
func (b *CampaignBrief) WithMessage(message string) *CampaignBrief {
	clone := *b
	clone.CampaignMessage = message
	clone.Products = append([]Product(nil), b.Products...)
	clone.Locales = append([]LocaleMessage(nil), b.Locales...)
	if b.ABTesting != nil {
		ab := *b.ABTesting
		ab.Variants = append([]ABVariant(nil), b.ABTesting.Variants...)
		clone.ABTesting = &ab
	}
	return &clone
}

// AssetKey is the storage lookup key for the product's pre-existing photo.
func (p Product) AssetKey() string {
	if p.AssetFilename != "" {
		return p.AssetFilename
	}
	return Slugify(p.Name)
}

// Slug is the path segment used for the product's output folder.
func (p Product) Slug() string {
	return Slugify(p.Name)
}

// Slugify lower-cases a name and joins spaces with underscores.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
