package models

import (
	"strings"
	"testing"
)

func testBrief() *CampaignBrief {
	return &CampaignBrief{
		CampaignID:      "summer_launch",
		TargetRegion:    "EU",
		TargetAudience:  "outdoor enthusiasts",
		CampaignMessage: "D",
		Products: []Product{
			{Name: "Trail Jacket", Description: "waterproof shell", AssetFilename: "trail_jacket"},
			{Name: "Summit Pack", Description: "35L pack"},
		},
		Locales: []LocaleMessage{
			{Language: "es", Region: "ES", Message: "ES"},
			{Language: "fr", Region: "FR", Message: "FR"},
		},
		ABTesting: &ABTestConfig{
			Enabled: true,
			Variants: []ABVariant{
				{Name: "a", Message: "A"},
				{Name: "b", Message: "B"},
			},
		},
	}
}

func TestResolveMessage(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		variant  string
		expected string
	}{
		{"default", "", "", "D"},
		{"exact locale", "es_ES", "", "ES"},
		{"language only fallback", "es", "", "ES"},
		{"language prefix of unknown region", "es_MX", "", "ES"},
		{"variant", "", "b", "B"},
		{"variant wins over locale", "es_ES", "b", "B"},
		{"unknown variant falls through", "", "nonexistent", "D"},
		{"unknown variant falls through to locale", "fr_FR", "nonexistent", "FR"},
		{"unknown locale falls through", "de_DE", "", "D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testBrief().ResolveMessage(tt.locale, tt.variant)
			if got != tt.expected {
				t.Errorf("ResolveMessage(%q, %q) = %q, want %q", tt.locale, tt.variant, got, tt.expected)
			}
		})
	}
}

func TestResolveMessageABDisabled(t *testing.T) {
	brief := testBrief()
	brief.ABTesting.Enabled = false
	if got := brief.ResolveMessage("", "b"); got != "D" {
		t.Errorf("ResolveMessage with disabled A/B testing = %q, want %q", got, "D")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CampaignBrief)
		wantErr string
	}{
		{"valid", func(b *CampaignBrief) {}, ""},
		{"missing campaign_id", func(b *CampaignBrief) { b.CampaignID = "" }, "campaign_id"},
		{"missing target_region", func(b *CampaignBrief) { b.TargetRegion = "" }, "target_region"},
		{"missing target_audience", func(b *CampaignBrief) { b.TargetAudience = "" }, "target_audience"},
		{"missing campaign_message", func(b *CampaignBrief) { b.CampaignMessage = "" }, "campaign_message"},
		{"no products", func(b *CampaignBrief) { b.Products = nil }, "products"},
		{"single product", func(b *CampaignBrief) { b.Products = b.Products[:1] }, "at least 2"},
		{"message too long", func(b *CampaignBrief) { b.CampaignMessage = strings.Repeat("x", 201) }, "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brief := testBrief()
			tt.mutate(brief)
			err := brief.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestAvailableLocalesAndVariants(t *testing.T) {
	brief := testBrief()

	locales := brief.AvailableLocales()
	if len(locales) != 2 || locales[0] != "es_ES" || locales[1] != "fr_FR" {
		t.Errorf("AvailableLocales() = %v", locales)
	}

	variants := brief.AvailableVariants()
	if len(variants) != 2 || variants[0] != "a" || variants[1] != "b" {
		t.Errorf("AvailableVariants() = %v", variants)
	}

	brief.ABTesting.Enabled = false
	if got := brief.AvailableVariants(); len(got) != 0 {
		t.Errorf("AvailableVariants() with disabled A/B = %v, want empty", got)
	}

	brief.ABTesting = nil
	if got := brief.AvailableVariants(); len(got) != 0 {
		t.Errorf("AvailableVariants() with nil config = %v, want empty", got)
	}
}

func TestWithMessageDoesNotAliasOriginal(t *testing.T) {
	original := testBrief()
	clone := original.WithMessage("fixed")

	if clone.CampaignMessage != "fixed" {
		t.Fatalf("clone message = %q", clone.CampaignMessage)
	}
	if original.CampaignMessage != "D" {
		t.Fatalf("original message mutated to %q", original.CampaignMessage)
	}

	clone.Products[0].Name = "changed"
	clone.Locales[0].Message = "changed"
	clone.ABTesting.Variants[0].Message = "changed"

	if original.Products[0].Name == "changed" ||
		original.Locales[0].Message == "changed" ||
		original.ABTesting.Variants[0].Message == "changed" {
		t.Error("WithMessage clone shares backing arrays with the original")
	}
}

func TestAssetKeyAndSlug(t *testing.T) {
	tests := []struct {
		product  Product
		assetKey string
		slug     string
	}{
		{Product{Name: "Trail Jacket", AssetFilename: "trail_jacket_v2"}, "trail_jacket_v2", "trail_jacket"},
		{Product{Name: "Summit Pack"}, "summit_pack", "summit_pack"},
		{Product{Name: "Eco Tee Shirt"}, "eco_tee_shirt", "eco_tee_shirt"},
	}

	for _, tt := range tests {
		t.Run(tt.product.Name, func(t *testing.T) {
			if got := tt.product.AssetKey(); got != tt.assetKey {
				t.Errorf("AssetKey() = %q, want %q", got, tt.assetKey)
			}
			if got := tt.product.Slug(); got != tt.slug {
				t.Errorf("Slug() = %q, want %q", got, tt.slug)
			}
		})
	}
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		locale   string
		expected string
	}{
		{"en_US", "English"},
		{"es_ES", "Spanish"},
		{"es", "Spanish"},
		{"ja_JP", "Japanese"},
		{"xx_YY", "XX"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := LanguageName(tt.locale); got != tt.expected {
				t.Errorf("LanguageName(%q) = %q, want %q", tt.locale, got, tt.expected)
			}
		})
	}
}
