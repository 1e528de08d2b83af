package tokenverify

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/sessionguard/lib/mytime"
)

func TestDecodeExpiry(t *testing.T) {

	t.Run("Token with exp claim", func(t *testing.T) {
		// given
		expiresAt := mytime.ExampleTime.Add(time.Hour)
		token := signedToken(t, jwt.MapClaims{
			"sub": "d3f4ult",
			"exp": expiresAt.Unix(),
		})

		// when
		expiry, err := decodeExpiry(token)

		// then
		assert.NoError(t, err)
		assert.NotNil(t, expiry)
		assert.True(t, expiry.Equal(expiresAt))
	})

	t.Run("Token without exp claim", func(t *testing.T) {
		// given
		token := signedToken(t, jwt.MapClaims{
			"sub": "d3f4ult",
		})

		// when
		expiry, err := decodeExpiry(token)

		// then
		assert.Error(t, err)
		assert.Nil(t, expiry)
		assert.Contains(t, err.Error(), "no exp claim")
	})

	t.Run("Token with non-numeric exp claim", func(t *testing.T) {
		// given
		token := signedToken(t, jwt.MapClaims{
			"exp": "tomorrow",
		})

		// when
		expiry, err := decodeExpiry(token)

		// then
		assert.Error(t, err)
		assert.Nil(t, expiry)
	})

	t.Run("Garbage token", func(t *testing.T) {
		// when
		expiry, err := decodeExpiry("this.is.not-a-jwt")

		// then
		assert.Error(t, err)
		assert.Nil(t, expiry)
	})
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	assert.NoError(t, err)
	return token
}
