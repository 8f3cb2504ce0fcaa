package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

func (s *service) retrieveOrCreateCart(c context.Context) (commerceapi.Cart, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Retrieve or create cart")

	return s.applyMutation(c, OperationRetrieve, func(cartUID string) (commerceapi.Cart, error) {
		return s.gateway.GetOrCreateCart(c, cartUID)
	})
}

func (s *service) addItem(c context.Context, productUID string, quantity int) (commerceapi.Cart, error) {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Add %d x product %s to cart", quantity, productUID)

	if productUID == "" {
		return commerceapi.Cart{}, myerrors.NewInvalidInputErrorf("missing product uid")
	}
	if quantity < 1 {
		return commerceapi.Cart{}, myerrors.NewInvalidInputErrorf("quantity must be at least 1")
	}

	return s.applyMutation(c, OperationAdd, func(cartUID string) (commerceapi.Cart, error) {
		if cartUID == "" {
			return commerceapi.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("no active cart"))
		}
		return s.gateway.AddLineItem(c, cartUID, productUID, quantity)
	})
}

// adjustItemQuantity sets the quantity of an existing line. A quantity below 1
// removes the line entirely, matching what the storefront UI promises.
func (s *service) adjustItemQuantity(c context.Context, lineItemUID string, quantity int) (commerceapi.Cart, error) {
	s.logger.Log(c, lineItemUID, mylog.SeverityInfo, "Set quantity of line %s to %d", lineItemUID, quantity)

	if quantity < 1 {
		return s.removeItem(c, lineItemUID)
	}

	return s.applyMutation(c, OperationUpdate, func(cartUID string) (commerceapi.Cart, error) {
		if cartUID == "" {
			return commerceapi.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("no active cart"))
		}
		return s.gateway.UpdateLineItem(c, cartUID, lineItemUID, quantity)
	})
}

func (s *service) removeItem(c context.Context, lineItemUID string) (commerceapi.Cart, error) {
	s.logger.Log(c, lineItemUID, mylog.SeverityInfo, "Remove line %s from cart", lineItemUID)

	return s.applyMutation(c, OperationRemove, func(cartUID string) (commerceapi.Cart, error) {
		if cartUID == "" {
			return commerceapi.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("no active cart"))
		}
		return s.gateway.RemoveLineItem(c, cartUID, lineItemUID)
	})
}

func (s *service) emptyCart(c context.Context) (commerceapi.Cart, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Empty cart")

	return s.applyMutation(c, OperationEmpty, func(cartUID string) (commerceapi.Cart, error) {
		if cartUID == "" {
			return commerceapi.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("no active cart"))
		}
		return s.gateway.EmptyCart(c, cartUID)
	})
}

// refreshCart abandons the current cart and starts over with a fresh empty one.
func (s *service) refreshCart(c context.Context) (commerceapi.Cart, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Refresh cart")

	return s.applyMutation(c, OperationRefresh, func(cartUID string) (commerceapi.Cart, error) {
		if cartUID == "" {
			return commerceapi.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("no active cart"))
		}
		return s.gateway.RefreshCart(c, cartUID)
	})
}

// CurrentCart exposes the mirrored cart without touching the gateway. Used by
// the checkout service when a checkout is entered.
func (s *service) CurrentCart(c context.Context) (commerceapi.Cart, error) {
	current, found, err := s.cartStore.Get(c, currentCartKey)
	if err != nil {
		return commerceapi.Cart{}, myerrors.NewInternalError(err)
	}
	if !found {
		return commerceapi.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("no active cart"))
	}

	return current.Cart, nil
}

// applyMutation performs a single gateway call and, on success, replaces the
// local mirror wholesale with what the gateway returned. On failure the mirror
// keeps its previous value. Overlapping mutations are rejected as busy rather
// than queued, so the caller can retry against fresh state.
func (s *service) applyMutation(c context.Context, operation string, call func(cartUID string) (commerceapi.Cart, error)) (commerceapi.Cart, error) {
	if !s.inFlight.TryLock() {
		return commerceapi.Cart{}, OperationError{
			Operation: operation,
			Cause:     myerrors.NewBusyError(fmt.Errorf("another cart operation is in progress")),
		}
	}
	defer s.inFlight.Unlock()

	current, found, err := s.cartStore.Get(c, currentCartKey)
	if err != nil {
		return commerceapi.Cart{}, OperationError{Operation: operation, Cause: myerrors.NewInternalError(err)}
	}

	cartUID := ""
	if found {
		cartUID = current.Cart.UID
	}

	updated, err := call(cartUID)
	if err != nil {
		return commerceapi.Cart{}, OperationError{Operation: operation, Cause: err}
	}

	now := s.nower.Now()

	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		mirror := SessionCart{
			Cart:         updated,
			CreatedAt:    now,
			LastModified: &now,
		}
		if found {
			mirror.CreatedAt = current.CreatedAt
		}

		err := s.cartStore.Put(c, currentCartKey, mirror)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, cartevents.TopicName, cartevents.CartModified{
			CartUID:         updated.UID,
			Operation:       operation,
			TotalItems:      updated.TotalItems,
			CartFingerprint: updated.Fingerprint(),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return commerceapi.Cart{}, OperationError{Operation: operation, Cause: err}
	}

	return updated, nil
}
