package settings

import (
	"context"
	"fmt"

	"github.com/MarcGrol/sessionguard/lib/myerrors"
	"github.com/MarcGrol/sessionguard/lib/mylog"
	"github.com/MarcGrol/sessionguard/lib/mystore"
	"github.com/MarcGrol/sessionguard/lib/mytime"
)

type service struct {
	settingsStore mystore.Store[VerifierSettings]
	nower         mytime.Nower
	logger        mylog.Logger
}

func newService(settingsStore mystore.Store[VerifierSettings], nower mytime.Nower) *service {
	return &service{
		settingsStore: settingsStore,
		nower:         nower,
		logger:        mylog.New("settings"),
	}
}

// Get returns the stored verifier settings or the defaults when nothing was stored yet.
func (s *service) Get(c context.Context) (VerifierSettings, error) {
	settings, exists, err := s.settingsStore.Get(c, verifierSettingsUID)
	if err != nil {
		return VerifierSettings{}, myerrors.NewUnavailableError(fmt.Errorf("error fetching verifier settings: %s", err))
	}
	if !exists {
		return VerifierSettings{
			RefreshBeforeSeconds: DefaultRefreshBeforeSeconds,
		}, nil
	}

	return settings, nil
}

func (s *service) update(c context.Context, settings VerifierSettings) (VerifierSettings, error) {
	if settings.RefreshBeforeSeconds < 0 {
		return VerifierSettings{}, myerrors.NewInvalidInputError(
			fmt.Errorf("refreshBeforeSeconds must not be negative: %d", settings.RefreshBeforeSeconds))
	}

	s.logger.Log(c, verifierSettingsUID, mylog.SeverityInfo,
		"Update verifier settings: refresh %d secs before expiry", settings.RefreshBeforeSeconds)

	now := s.nower.Now()
	settings.LastModified = &now

	err := s.settingsStore.RunInTransaction(c, func(c context.Context) error {
		return s.settingsStore.Put(c, verifierSettingsUID, settings)
	})
	if err != nil {
		return VerifierSettings{}, myerrors.NewInternalError(fmt.Errorf("error storing verifier settings: %s", err))
	}

	return settings, nil
}
