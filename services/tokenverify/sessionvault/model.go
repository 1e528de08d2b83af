package sessionvault

import "time"

const (
	CurrentSession = "currentSession"
)

// Session is the persisted credential record. The verifier only ever replaces
// AccessToken (and LastModified); everything else is owned by the login flow.
type Session struct {
	ClientID     string
	AccessToken  string
	CreatedAt    time.Time
	LastModified *time.Time
}
