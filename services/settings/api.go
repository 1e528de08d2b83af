package settings

import (
	"context"
)

//go:generate mockgen -source=api.go -package settings -destination provider_mock.go Provider
type Provider interface {
	Get(c context.Context) (VerifierSettings, error)
}
