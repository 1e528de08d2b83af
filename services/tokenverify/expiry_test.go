package tokenverify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/sessionguard/lib/mytime"
)

func TestIsExpired(t *testing.T) {
	now := mytime.ExampleTime

	tests := []struct {
		name      string
		expiry    *time.Time
		lookahead time.Duration
		expired   bool
	}{
		{name: "nil expiry", expiry: nil, lookahead: 0, expired: true},
		{name: "expired a second ago", expiry: timePtr(now.Add(-time.Second)), lookahead: 0, expired: true},
		{name: "expires exactly now", expiry: timePtr(now), lookahead: 0, expired: false},
		{name: "expires in an hour", expiry: timePtr(now.Add(time.Hour)), lookahead: 0, expired: false},
		{name: "within lookahead window", expiry: timePtr(now.Add(100 * time.Second)), lookahead: 300 * time.Second, expired: true},
		{name: "beyond lookahead window", expiry: timePtr(now.Add(1000 * time.Second)), lookahead: 300 * time.Second, expired: false},
		{name: "expires exactly at window edge", expiry: timePtr(now.Add(300 * time.Second)), lookahead: 300 * time.Second, expired: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expired, isExpired(tc.expiry, tc.lookahead, now))
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
