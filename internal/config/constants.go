package config

import "time"

const (
	envPort                = "PORT"
	envLogLevel            = "LOG_LEVEL"
	envLogFormat           = "LOG_FORMAT"
	envTeamsFile           = "TEAMS_FILE"
	envCORSOrigins         = "CORS_ORIGINS"
	envFeedSource          = "FEED_SOURCE"
	envFeedURL             = "FEED_URL"
	envFeedPollInterval    = "FEED_POLL_INTERVAL"
	envFeedClassification  = "FEED_CLASSIFICATION"
	envFeedBackoffInitial  = "FEED_BACKOFF_INITIAL"
	envFeedBackoffMax      = "FEED_BACKOFF_MAX"
	envRedisAddr           = "REDIS_ADDR"
	envRedisChannel        = "REDIS_CHANNEL"
	envRotationPageSize    = "ROTATION_PAGE_SIZE"
	envRotationSetInterval = "ROTATION_SET_INTERVAL"
	envRotationFeatured    = "ROTATION_FEATURED_INTERVAL"
	envRotationFadeDelay   = "ROTATION_FADE_DELAY"
	envFeaturedGames       = "FEATURED_GAMES"
	envHighlightsBaseURL   = "HIGHLIGHTS_BASE_URL"
	envHighlightsRPM       = "HIGHLIGHTS_RPM"
	envHighlightsTimeout   = "HIGHLIGHTS_TIMEOUT"
	envMetricsPort         = "METRICS_PORT"
	envMetricsOn           = "METRICS_ENABLED"
	envOtelEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService         = "OTEL_SERVICE_NAME"
	envOtelInsecure        = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort               = "4000"
	defaultLogLevel           = "info"
	defaultLogFormat          = "text"
	defaultCORSOrigin         = "*"
	defaultFeedSource         = "fixture"
	defaultFeedURL            = "wss://saturday-stats-ws.onrender.com"
	defaultFeedPollInterval   = 30 * Duration(time.Second)
	defaultFeedClassification = "fbs"
	defaultBackoffInitial     = 500 * Duration(time.Millisecond)
	defaultBackoffMax         = 30 * Duration(time.Second)
	defaultRedisChannel       = "scoreboard"
	defaultPageSize           = 9
	defaultSetInterval        = 15 * Duration(time.Second)
	defaultFeaturedInterval   = 33 * Duration(time.Second)
	defaultFadeDelay          = 500 * Duration(time.Millisecond)
	defaultHighlightsBaseURL  = "https://site.api.espn.com/apis/site/v2/sports/football/college-football"
	defaultHighlightsRPM      = 60
	defaultHighlightsTimeout  = 10 * Duration(time.Second)
	defaultMetricsPort        = "9090"
	defaultServiceName        = "saturday-stats"
)
