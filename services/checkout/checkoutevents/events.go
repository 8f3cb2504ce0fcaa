package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
)

const (
	TopicName           = "checkout"
	checkoutStartedName = TopicName + ".started"
	orderCapturedName   = TopicName + ".orderCaptured"
	checkoutFailedName  = TopicName + ".failed"
)

type CheckoutEventService interface {
	Subscribe(c context.Context) error
	OnCheckoutStarted(c context.Context, topic string, event CheckoutStarted) error
	OnOrderCaptured(c context.Context, topic string, event OrderCaptured) error
	OnCheckoutFailed(c context.Context, topic string, event CheckoutFailed) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutStartedName:
		{
			event := CheckoutStarted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutStarted(c, envelope.Topic, event)
		}
	case orderCapturedName:
		{
			event := OrderCaptured{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderCaptured(c, envelope.Topic, event)
		}
	case checkoutFailedName:
		{
			event := CheckoutFailed{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutFailed(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event %s", envelope.EventTypeName))
	}
}

type CheckoutStarted struct {
	CheckoutUID     string
	CartUID         string
	AmountInCents   int64
	AmountFormatted string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.CheckoutUID
}

// OrderCaptured signals that the gateway finalized payment. The cart service
// reacts by replacing the captured cart with a fresh empty one.
type OrderCaptured struct {
	CheckoutUID    string
	CartUID        string
	OrderUID       string
	OrderReference string
}

func (e OrderCaptured) GetEventTypeName() string {
	return orderCapturedName
}

func (e OrderCaptured) GetAggregateName() string {
	return e.CheckoutUID
}

type CheckoutFailed struct {
	CheckoutUID string
	CartUID     string
	Stage       string
	Reason      string
}

func (e CheckoutFailed) GetEventTypeName() string {
	return checkoutFailedName
}

func (e CheckoutFailed) GetAggregateName() string {
	return e.CheckoutUID
}
