package settings

import (
	"time"
)

const (
	verifierSettingsUID = "verifierSettings"

	// DefaultRefreshBeforeSeconds applies when no settings record has been stored yet.
	DefaultRefreshBeforeSeconds = 300
)

type VerifierSettings struct {
	RefreshBeforeSeconds int `form:"refreshBeforeSeconds"`
	LastModified         *time.Time
}

func (s VerifierSettings) RefreshWindow() time.Duration {
	return time.Duration(s.RefreshBeforeSeconds) * time.Second
}
