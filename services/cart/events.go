package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/checkout/checkoutevents"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, cartevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", cartevents.TopicName, err)
	}

	return nil
}

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.Subscribe(c, checkoutevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/cart/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

func (s *service) OnCheckoutStarted(c context.Context, topic string, event checkoutevents.CheckoutStarted) error {
	return nil
}

// OnOrderCaptured replaces the captured cart with a fresh empty one, so the
// shopper can continue browsing after the receipt page.
func (s *service) OnOrderCaptured(c context.Context, topic string, event checkoutevents.OrderCaptured) error {
	s.logger.Log(c, event.CartUID, mylog.SeverityInfo, "Webhook: order %s captured for cart %s", event.OrderUID, event.CartUID)

	// must be idempotent
	current, found, err := s.cartStore.Get(c, currentCartKey)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	if !found || current.Cart.UID != event.CartUID {
		// cart was already replaced
		return nil
	}

	_, err = s.applyMutation(c, OperationRefresh, func(cartUID string) (commerceapi.Cart, error) {
		return s.gateway.RefreshCart(c, cartUID)
	})
	if err != nil {
		// busy or unavailable: let pubsub redeliver
		return err
	}

	return nil
}

func (s *service) OnCheckoutFailed(c context.Context, topic string, event checkoutevents.CheckoutFailed) error {
	return nil
}
