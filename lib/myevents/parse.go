package myevents

import (
	"encoding/json"
	"fmt"
	"io"
)

// PushRequest is the envelope that Google pub/sub wraps around a pushed message.
type PushRequest struct {
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

type PushMessage struct {
	Attributes map[string]string `json:"attributes"`
	Data       []byte            `json:"data"`
	ID         string            `json:"message_id"`
}

func ParseEventEnvelope(reader io.Reader) (EventEnvelope, error) {
	pushRequest := PushRequest{}
	err := json.NewDecoder(reader).Decode(&pushRequest)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("error parsing push-request: %s", err)
	}

	envelope := EventEnvelope{}
	err = json.Unmarshal(pushRequest.Message.Data, &envelope)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("error parsing event-envelope: %s", err)
	}

	return envelope, nil
}
