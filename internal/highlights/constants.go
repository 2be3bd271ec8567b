package highlights

import "time"

const (
	defaultBaseURL           = "https://site.api.espn.com/apis/site/v2/sports/football/college-football"
	defaultHTTPTimeout       = 10 * time.Second
	defaultRequestsPerMinute = 60
	maxSummaryBytes          = 4 << 20
	sourceName               = "highlights"
)
