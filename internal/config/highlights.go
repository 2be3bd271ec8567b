package config

// HighlightsConfig controls the highlight clip lookups.
type HighlightsConfig struct {
	BaseURL           string
	RequestsPerMinute int
	Timeout           Duration
}

func loadHighlights() HighlightsConfig {
	return HighlightsConfig{
		BaseURL:           envOrDefault(envHighlightsBaseURL, defaultHighlightsBaseURL),
		RequestsPerMinute: intEnvOrDefault(envHighlightsRPM, defaultHighlightsRPM),
		Timeout:           durationEnvOrDefault(envHighlightsTimeout, defaultHighlightsTimeout),
	}
}
