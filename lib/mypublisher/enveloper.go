package mypublisher

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

func (e enveloper) do(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	jsonPayload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error marshalling event-payload: %s", err)
	}

	envelope := myevents.EventEnvelope{
		CreatedAt:     e.nower.Now(),
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(jsonPayload),
		Published:     false,
	}

	// In order to be idempotent, we do NOT use an uuid to identify the event
	envelope.UID, err = checksum(envelope)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error checksumming event-payload: %s", err)
	}

	return envelope, nil
}

func checksum(envelope myevents.EventEnvelope) (string, error) {
	hashable := struct {
		Topic         string
		AggregateUID  string
		EventTypeName string
		EventPayload  string
	}{
		Topic:         envelope.Topic,
		AggregateUID:  envelope.AggregateUID,
		EventTypeName: envelope.EventTypeName,
		EventPayload:  envelope.EventPayload,
	}

	jsonBytes, err := json.Marshal(hashable)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)

	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}
