package tokenverify

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// decodeExpiry extracts the exp claim without verifying the signature: the
// token was signed by the identity provider and is only inspected here.
func decodeExpiry(rawToken string) (*time.Time, error) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(rawToken, claims)
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %s", err)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("error reading exp claim: %s", err)
	}
	if expiry == nil {
		return nil, fmt.Errorf("token has no exp claim")
	}

	expiresAt := expiry.Time

	return &expiresAt, nil
}
