package config

// FeedConfig selects the upstream scoreboard channel.
type FeedConfig struct {
	Source         string
	URL            string
	PollInterval   Duration
	Classification string
	RedisAddr      string
	RedisChannel   string
	BackoffInitial Duration
	BackoffMax     Duration
}

func loadFeed() FeedConfig {
	return FeedConfig{
		Source:         envOrDefault(envFeedSource, defaultFeedSource),
		URL:            envOrDefault(envFeedURL, defaultFeedURL),
		PollInterval:   durationEnvOrDefault(envFeedPollInterval, defaultFeedPollInterval),
		Classification: envOrDefault(envFeedClassification, defaultFeedClassification),
		RedisAddr:      envOrDefault(envRedisAddr, ""),
		RedisChannel:   envOrDefault(envRedisChannel, defaultRedisChannel),
		BackoffInitial: durationEnvOrDefault(envFeedBackoffInitial, defaultBackoffInitial),
		BackoffMax:     durationEnvOrDefault(envFeedBackoffMax, defaultBackoffMax),
	}
}
