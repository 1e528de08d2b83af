package tokenverify

import (
	"errors"
	"time"
)

// Sentinel error kinds for the verify flow. They are wrapped in myerrors
// http-status wrappers by the service so callers can use errors.Is while the
// web layer maps them to a status code.
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenExpired        = errors.New("token expired")
	ErrSettingsUnavailable = errors.New("verifier settings unavailable")
	ErrExchangeTransport   = errors.New("token exchange unreachable")
	ErrExchangeRejected    = errors.New("token exchange rejected")
)

type VerifyRequest struct {
	Token    string `form:"token"`
	ClientID string `form:"clientID"`
}

type VerifyResponse struct {
	AccessToken string
}

type TokenStatus struct {
	ClientID     string
	ExpiresAt    *time.Time
	Expired      bool
	LastModified *time.Time
}
