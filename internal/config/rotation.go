package config

// RotationConfig drives the set and featured-game rotation timers.
type RotationConfig struct {
	PageSize         int
	SetInterval      Duration
	FeaturedInterval Duration
	FadeDelay        Duration
	FeaturedGames    []string
}

func loadRotation() RotationConfig {
	return RotationConfig{
		PageSize:         intEnvOrDefault(envRotationPageSize, defaultPageSize),
		SetInterval:      durationEnvOrDefault(envRotationSetInterval, defaultSetInterval),
		FeaturedInterval: durationEnvOrDefault(envRotationFeatured, defaultFeaturedInterval),
		FadeDelay:        durationEnvOrDefault(envRotationFadeDelay, defaultFadeDelay),
		FeaturedGames:    listEnvOrDefault(envFeaturedGames, nil),
	}
}
