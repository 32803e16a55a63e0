package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type GenerateCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

type OutputsResponse struct {
	CampaignID  string   `json:"campaign_id"`
	OutputCount int      `json:"output_count"`
	Outputs     []string `json:"outputs"`
}

type ParseBriefResponse struct {
	Locales        []string `json:"locales"`
	ABVariants     []string `json:"ab_variants"`
	DefaultMessage string   `json:"default_message"`
}

type UploadAssetsResponse struct {
	UploadedCount int      `json:"uploaded_count"`
	Files         []string `json:"files"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	StorageMode      string `json:"storage_mode"`
	OracleConfigured bool   `json:"gemini_api_configured"`
}
