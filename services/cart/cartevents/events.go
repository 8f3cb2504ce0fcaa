package cartevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
)

const (
	TopicName        = "cart"
	cartModifiedName = TopicName + ".modified"
)

type CartEventService interface {
	Subscribe(c context.Context) error
	OnCartModified(c context.Context, topic string, event CartModified) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CartEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case cartModifiedName:
		{
			event := CartModified{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartModified(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event %s", envelope.EventTypeName))
	}
}

// CartModified is published after every successful mutating cart operation.
type CartModified struct {
	CartUID         string
	Operation       string
	TotalItems      int
	CartFingerprint string
}

func (e CartModified) GetEventTypeName() string {
	return cartModifiedName
}

func (e CartModified) GetAggregateName() string {
	return e.CartUID
}
