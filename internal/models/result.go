package models

import "time"

// Campaign statuses
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Asset sources
const (
	AssetReused    = "reused"
	AssetGenerated = "generated"
)

// Violation kinds recorded on a compliance fix
const (
	ViolationLegal = "legal"
	ViolationBrand = "brand"
)

// FixRecord documents one accepted auto-fix of the campaign message.
type FixRecord struct {
	Attempt     int    `json:"attempt"`
	Type        string `json:"type"`
	Original    string `json:"original"`
	Fixed       string `json:"fixed"`
	Explanation string `json:"explanation"`
}

// ComplianceOutcome is the terminal result of a compliance validation run.
type ComplianceOutcome struct {
	Compliant bool        `json:"compliant"`
	Reason    string      `json:"reason"`
	Fixes     []FixRecord `json:"fixes,omitempty"`
}

// CreativeOutput is one finished, ratio-specific creative.
type CreativeOutput struct {
	ProductName string `json:"product_name"`
	AspectRatio string `json:"aspect_ratio"`
	Location    string `json:"location"`
	Source      string `json:"source"`
}

// ProductResult groups a product's creatives with how its base image was
// obtained. A product legitimately holds 0-3 creatives when ratios failed.
type ProductResult struct {
	AssetSource string                    `json:"asset_source"`
	Creatives   map[string]CreativeOutput `json:"creatives"`
}

type LogRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// CampaignResult is the externally visible state of one campaign run. It is
// created at submission, mutated in place through the status store while the
// run is processing, and read-only once the status leaves "processing".
type CampaignResult struct {
	CampaignID  string                   `json:"campaign_id"`
	Status      string                   `json:"status"`
	Locale      string                   `json:"locale,omitempty"`
	ABVariant   string                   `json:"ab_variant,omitempty"`
	Progress    int                      `json:"progress"`
	Logs        []LogRecord              `json:"logs"`
	OutputPaths map[string]ProductResult `json:"output_paths"`
	Errors      []string                 `json:"errors"`
	Fixes       []FixRecord              `json:"compliance_fixes,omitempty"`
	StartedAt   time.Time                `json:"started_at"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
}

func NewCampaignResult(campaignID, locale, abVariant string) *CampaignResult {
	return &CampaignResult{
		CampaignID:  campaignID,
		Status:      StatusProcessing,
		Locale:      locale,
		ABVariant:   abVariant,
		Logs:        []LogRecord{},
		OutputPaths: make(map[string]ProductResult),
		Errors:      []string{},
		StartedAt:   time.Now().UTC(),
	}
}

// Clone returns a deep copy safe to hand to readers while the run mutates
// the original through the status store.
func (r *CampaignResult) Clone() *CampaignResult {
	clone := *r
	clone.Logs = append([]LogRecord(nil), r.Logs...)
	clone.Errors = append([]string(nil), r.Errors...)
	clone.Fixes = append([]FixRecord(nil), r.Fixes...)
	clone.OutputPaths = make(map[string]ProductResult, len(r.OutputPaths))
	for name, p := range r.OutputPaths {
		creatives := make(map[string]CreativeOutput, len(p.Creatives))
		for ratio, c := range p.Creatives {
			creatives[ratio] = c
		}
		clone.OutputPaths[name] = ProductResult{AssetSource: p.AssetSource, Creatives: creatives}
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		clone.CompletedAt = &t
	}
	return &clone
}

// TotalCreatives counts finished creatives across all products.
func (r *CampaignResult) TotalCreatives() int {
	total := 0
	for _, p := range r.OutputPaths {
		total += len(p.Creatives)
	}
	return total
}
