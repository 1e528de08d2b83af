package verifyevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/sessionguard/lib/myerrors"
	"github.com/MarcGrol/sessionguard/lib/myevents"
)

const (
	TopicName                 = "tokenverify"
	tokenRefreshCompletedName = TopicName + ".tokenRefresh.completed"
	tokenRefreshFailedName    = TopicName + ".tokenRefresh.failed"
)

type TokenVerifyEventService interface {
	Subscribe(c context.Context) error
	OnTokenRefreshCompleted(c context.Context, topic string, event TokenRefreshCompleted) error
	OnTokenRefreshFailed(c context.Context, topic string, event TokenRefreshFailed) error
}

func DispatchEvent(c context.Context, reader io.Reader, service TokenVerifyEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case tokenRefreshCompletedName:
		{
			event := TokenRefreshCompleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnTokenRefreshCompleted(c, envelope.Topic, event)
		}
	case tokenRefreshFailedName:
		{
			event := TokenRefreshFailed{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnTokenRefreshFailed(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type TokenRefreshCompleted struct {
	UID      string
	ClientID string
}

func (e TokenRefreshCompleted) GetEventTypeName() string {
	return tokenRefreshCompletedName
}

func (e TokenRefreshCompleted) GetAggregateName() string {
	return e.ClientID
}

type TokenRefreshFailed struct {
	UID          string
	ClientID     string
	ErrorMessage string
}

func (e TokenRefreshFailed) GetEventTypeName() string {
	return tokenRefreshFailedName
}

func (e TokenRefreshFailed) GetAggregateName() string {
	return e.ClientID
}
