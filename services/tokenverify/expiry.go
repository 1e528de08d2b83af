package tokenverify

import (
	"time"
)

// isExpired reports whether expiry falls before now+lookahead.
// An absent expiry always counts as expired.
func isExpired(expiry *time.Time, lookahead time.Duration, now time.Time) bool {
	if expiry == nil {
		return true
	}

	return expiry.Before(now.Add(lookahead))
}
