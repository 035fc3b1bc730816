package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ISODateFormat is the calendar-date layout used for period boundaries in
// the dashboard API.
const ISODateFormat = "2006-01-02"

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseISODate parses an ISO calendar date (YYYY-MM-DD).
func ParseISODate(value string) (time.Time, error) {
	return time.Parse(ISODateFormat, value)
}
