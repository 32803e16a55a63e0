package config

// BrandGuidelines drive the brand compliance prompt. The defaults describe the
// Patagonia brand the pipeline was built for; swap them out per tenant.
type BrandGuidelines struct {
	BrandName       string
	CoreValues      map[string]string
	ForbiddenTerms  []string
	VoicePrinciples []string
}

func (c *Config) Guidelines() BrandGuidelines {
	return BrandGuidelines{
		BrandName: getEnv("BRAND_NAME", "Patagonia"),
		CoreValues: map[string]string{
			"quality":                 "Build the best product, provide the best service, and constantly improve everything we do. The best product is useful, versatile, long-lasting, repairable, and recyclable.",
			"integrity":               "Examine our practices openly and honestly, learn from our mistakes, and meet our commitments.",
			"environmentalism":        "Protect our home planet. We're all part of nature. We work to reduce our impact, share solutions, and embrace regenerative practices.",
			"justice":                 "Be just, equitable, and antiracist as a company and in our community.",
			"not_bound_by_convention": "Do it our way. Our success lies in developing new ways to do things.",
		},
		ForbiddenTerms: []string{
			"get rich quick",
			"guaranteed",
			"miracle cure",
			"100% effective",
			"buy now",
			"limited time only",
			"act now",
			"don't miss out",
			"scam or false claims",
			"overly aggressive sales language",
		},
		VoicePrinciples: []string{
			"Focus on quality, durability, and environmental mission",
			"Authentic and transparent communication",
			"Avoid hyperbolic or exaggerated claims",
			"Emphasize repair, reuse, and responsibility",
			"Support social and environmental justice",
		},
	}
}
