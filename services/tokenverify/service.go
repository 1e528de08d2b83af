package tokenverify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/sessionguard/lib/myerrors"
	"github.com/MarcGrol/sessionguard/lib/mylog"
	"github.com/MarcGrol/sessionguard/lib/mypublisher"
	"github.com/MarcGrol/sessionguard/lib/mytime"
	"github.com/MarcGrol/sessionguard/lib/myuuid"
	"github.com/MarcGrol/sessionguard/lib/myvault"
	"github.com/MarcGrol/sessionguard/services/settings"
	"github.com/MarcGrol/sessionguard/services/tokenverify/exchangeclient"
	"github.com/MarcGrol/sessionguard/services/tokenverify/sessionvault"
	"github.com/MarcGrol/sessionguard/services/tokenverify/verifyevents"
)

type service struct {
	sessionVault     myvault.VaultReadWriter[sessionvault.Session]
	settingsProvider settings.Provider
	exchanger        exchangeclient.ExchangeClient
	nower            mytime.Nower
	uuider           myuuid.UUIDer
	publisher        mypublisher.Publisher
	logger           mylog.Logger
}

func newService(sessionVault myvault.VaultReadWriter[sessionvault.Session], settingsProvider settings.Provider, exchanger exchangeclient.ExchangeClient, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *service {
	return &service{
		sessionVault:     sessionVault,
		settingsProvider: settingsProvider,
		exchanger:        exchanger,
		nower:            nower,
		uuider:           uuider,
		publisher:        pub,
		logger:           mylog.New("tokenverify"),
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, verifyevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", verifyevents.TopicName, err)
	}

	return nil
}

func (s *service) verifyFromRequest(c context.Context, req VerifyRequest) (string, error) {
	token := req.Token
	clientID := req.ClientID

	if token == "" {
		// No token in the request: fall back to the stored session.
		session, exists, err := s.sessionVault.Get(c, sessionvault.CurrentSession)
		if err != nil {
			return "", myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
		}
		if exists {
			token = session.AccessToken
			if clientID == "" {
				clientID = session.ClientID
			}
		}
	}

	return s.verify(c, token, clientID)
}

// verify decides whether the token is usable: reject dead or unreadable
// tokens, pass fresh ones through untouched and exchange near-expiry ones for
// a newly issued token. The new token is persisted before it is returned.
func (s *service) verify(c context.Context, currentToken string, clientID string) (string, error) {
	if currentToken == "" {
		return "", myerrors.NewUnauthenticatedError(fmt.Errorf("%w: no token available", ErrNotAuthenticated))
	}

	expiry, err := decodeExpiry(currentToken)
	if err != nil {
		return "", myerrors.NewUnauthenticatedError(fmt.Errorf("%w: %s", ErrTokenMalformed, err))
	}

	now := s.nower.Now()
	if isExpired(expiry, 0, now) {
		return "", myerrors.NewUnauthenticatedError(fmt.Errorf("%w at %s", ErrTokenExpired, expiry.Format("2006-01-02T15:04:05Z07:00")))
	}

	verifierSettings, err := s.settingsProvider.Get(c)
	if err != nil {
		return "", myerrors.NewUnavailableError(fmt.Errorf("%w: %s", ErrSettingsUnavailable, err))
	}

	if !isExpired(expiry, verifierSettings.RefreshWindow(), now) {
		// Plenty of lifetime left: hand the token back untouched.
		return currentToken, nil
	}

	s.logger.Log(c, clientID, mylog.SeverityInfo, "Token expires at %s, refreshing", expiry)

	newToken, err := s.refreshToken(c, currentToken, clientID)
	if err != nil {
		s.publishRefreshFailed(c, clientID, err)
		return "", err
	}

	return newToken, nil
}

func (s *service) refreshToken(c context.Context, currentToken string, clientID string) (string, error) {
	// The exchange runs outside the store transaction: a store-level retry
	// must never repeat the network call.
	resp, err := s.exchanger.Exchange(c, exchangeclient.ExchangeRequest{
		ClientID: clientID,
		IDToken:  currentToken,
	})
	if err != nil {
		if myerrors.GetHTTPStatus(err) == http.StatusForbidden {
			return "", myerrors.NewAuthenticationError(fmt.Errorf("%w: %s", ErrExchangeRejected, resp.ErrorDescription))
		}
		return "", myerrors.NewBadGatewayError(fmt.Errorf("%w: %s", ErrExchangeTransport, err))
	}

	now := s.nower.Now()
	err = s.sessionVault.RunInTransaction(c, func(c context.Context) error {
		session, exists, err := s.sessionVault.Get(c, sessionvault.CurrentSession)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
		}
		if !exists {
			session = sessionvault.Session{
				ClientID:  clientID,
				CreatedAt: now,
			}
		}
		session.AccessToken = resp.IDToken
		session.LastModified = &now

		err = s.sessionVault.Put(c, sessionvault.CurrentSession, session)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing session: %s", err))
		}

		return s.publisher.Publish(c, verifyevents.TopicName, verifyevents.TokenRefreshCompleted{
			UID:      s.uuider.Create(),
			ClientID: clientID,
		})
	})
	if err != nil {
		return "", err
	}

	return resp.IDToken, nil
}

// publishRefreshFailed is best effort: it must never mask the verify error.
func (s *service) publishRefreshFailed(c context.Context, clientID string, cause error) {
	err := s.publisher.Publish(c, verifyevents.TopicName, verifyevents.TokenRefreshFailed{
		UID:          s.uuider.Create(),
		ClientID:     clientID,
		ErrorMessage: cause.Error(),
	})
	if err != nil {
		s.logger.Log(c, clientID, mylog.SeverityWarn, "Error publishing refresh-failed event: %s", err)
	}
}

func (s *service) getTokenStatus(c context.Context) (TokenStatus, error) {
	session, exists, err := s.sessionVault.Get(c, sessionvault.CurrentSession)
	if err != nil {
		return TokenStatus{}, myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	if !exists {
		return TokenStatus{}, myerrors.NewNotFoundError(fmt.Errorf("no session stored"))
	}

	status := TokenStatus{
		ClientID:     session.ClientID,
		LastModified: session.LastModified,
	}

	expiry, err := decodeExpiry(session.AccessToken)
	if err == nil {
		status.ExpiresAt = expiry
	}
	status.Expired = isExpired(status.ExpiresAt, 0, s.nower.Now())

	return status, nil
}
