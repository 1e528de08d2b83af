package verifyevents

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/sessionguard/lib/myerrors"
	"github.com/MarcGrol/sessionguard/lib/myevents"
)

func TestDispatchEvent(t *testing.T) {
	c := context.TODO()

	t.Run("Dispatch token-refresh completed", func(t *testing.T) {
		// given
		handler := &fakeEventService{}
		event := TokenRefreshCompleted{UID: "abcdef", ClientID: "myClientID"}

		// when
		err := DispatchEvent(c, pushRequestReader(t, event), handler)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []TokenRefreshCompleted{event}, handler.completed)
	})

	t.Run("Dispatch token-refresh failed", func(t *testing.T) {
		// given
		handler := &fakeEventService{}
		event := TokenRefreshFailed{UID: "abcdef", ClientID: "myClientID", ErrorMessage: "token exchange unreachable"}

		// when
		err := DispatchEvent(c, pushRequestReader(t, event), handler)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []TokenRefreshFailed{event}, handler.failed)
	})

	t.Run("Dispatch unknown event type", func(t *testing.T) {
		// given
		handler := &fakeEventService{}
		envelope := myevents.EventEnvelope{
			Topic:         TopicName,
			EventTypeName: "tokenverify.somethingElse.happened",
		}

		// when
		err := DispatchEvent(c, envelopeReader(t, envelope), handler)

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotImplemented, myerrors.GetHTTPStatus(err))
	})

	t.Run("Dispatch garbage payload", func(t *testing.T) {
		// when
		err := DispatchEvent(c, strings.NewReader("not json"), &fakeEventService{})

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
	})
}

type envelopeable interface {
	GetEventTypeName() string
	GetAggregateName() string
}

func pushRequestReader(t *testing.T, event envelopeable) *strings.Reader {
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	return envelopeReader(t, myevents.EventEnvelope{
		Topic:         TopicName,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	})
}

func envelopeReader(t *testing.T, envelope myevents.EventEnvelope) *strings.Reader {
	envelopeJSON, err := json.Marshal(envelope)
	assert.NoError(t, err)
	pushRequestJSON, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: envelopeJSON,
		},
	})
	assert.NoError(t, err)

	return strings.NewReader(string(pushRequestJSON))
}

type fakeEventService struct {
	completed []TokenRefreshCompleted
	failed    []TokenRefreshFailed
}

func (s *fakeEventService) Subscribe(c context.Context) error {
	return nil
}

func (s *fakeEventService) OnTokenRefreshCompleted(c context.Context, topic string, event TokenRefreshCompleted) error {
	s.completed = append(s.completed, event)
	return nil
}

func (s *fakeEventService) OnTokenRefreshFailed(c context.Context, topic string, event TokenRefreshFailed) error {
	s.failed = append(s.failed, event)
	return nil
}
