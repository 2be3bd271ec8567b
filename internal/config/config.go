package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	TeamsFile   string
	CORSOrigins []string
	Feed        FeedConfig
	Rotation    RotationConfig
	Highlights  HighlightsConfig
	Metrics     MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		LogLevel:    envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:   envOrDefault(envLogFormat, defaultLogFormat),
		TeamsFile:   envOrDefault(envTeamsFile, ""),
		CORSOrigins: listEnvOrDefault(envCORSOrigins, []string{defaultCORSOrigin}),
		Feed:        loadFeed(),
		Rotation:    loadRotation(),
		Highlights:  loadHighlights(),
		Metrics:     loadMetrics(),
	}
}
