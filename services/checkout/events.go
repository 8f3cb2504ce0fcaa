package checkout

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/checkout/checkoutevents"
)

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.Subscribe(c, cartevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/checkout/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", cartevents.TopicName, err)
	}

	return nil
}

// OnCartModified flags the running checkout when the cart diverges from the
// snapshot the token was issued against. Submit double-checks the fingerprint
// itself; the flag just lets the stale token be detected without waiting for
// the shopper to press confirm.
func (s *service) OnCartModified(c context.Context, topic string, event cartevents.CartModified) error {
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		ctx, found, err := s.checkoutStore.Get(c, currentCheckoutKey)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found || ctx.State.IsFinal() || ctx.Token.UID == "" {
			return nil
		}
		if event.CartFingerprint == ctx.CartFingerprint {
			return nil
		}

		s.logger.Log(c, ctx.UID, mylog.SeverityInfo, "Cart %s changed after token issuance (%s)", event.CartUID, event.Operation)

		now := s.nower.Now()
		ctx.CartChangedSinceToken = true
		ctx.LastModified = &now

		return s.persist(c, &ctx)
	})

	return err
}
