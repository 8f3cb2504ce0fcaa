package checkout

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/checkout/checkoutevents"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

const defaultCountry = "US"

// enterCheckout starts a fresh checkout for the current cart: generates a
// checkout-token and walks the locale chain (countries, subdivisions, shipping
// options). A previous captured or failed checkout is replaced.
func (s *service) enterCheckout(c context.Context) (CheckoutContext, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Enter checkout")

	cart, err := s.cart.CurrentCart(c)
	if err != nil {
		return CheckoutContext{}, err
	}
	if cart.IsEmpty() {
		return CheckoutContext{}, myerrors.NewInvalidInputErrorf("cannot start checkout on an empty cart")
	}

	now := s.nower.Now()
	ctx := CheckoutContext{
		UID:             s.uuider.Create(),
		CreatedAt:       now,
		State:           StateIdle,
		CartUID:         cart.UID,
		CartFingerprint: cart.Fingerprint(),
	}
	err = ctx.transitionTo(StateTokenPending, now)
	if err != nil {
		return CheckoutContext{}, err
	}

	token, err := s.gateway.GenerateCheckoutToken(c, cart.UID)
	if err != nil {
		return CheckoutContext{}, s.markFailed(c, &ctx, "token", err)
	}

	ctx.Token = token
	err = ctx.transitionTo(StateTokenReady, s.nower.Now())
	if err != nil {
		return CheckoutContext{}, err
	}

	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		err := s.persist(c, &ctx)
		if err != nil {
			return err
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			CheckoutUID:     ctx.UID,
			CartUID:         cart.UID,
			AmountInCents:   token.Total.ValueInCents,
			AmountFormatted: token.Total.FormattedWithSymbol,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return CheckoutContext{}, err
	}

	return s.loadLocaleData(c, ctx)
}

func (s *service) getStatus(c context.Context) (CheckoutContext, error) {
	return s.load(c)
}

// selectCountry records the new destination country, invalidates the locale
// data derived from the old one and fetches subdivisions and shipping options
// for the new one.
func (s *service) selectCountry(c context.Context, countryCode string) (CheckoutContext, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Select country %s", countryCode)

	var ctx CheckoutContext
	var epoch int
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		ctx, err = s.load(c)
		if err != nil {
			return err
		}
		if !ctx.hasCountry(countryCode) {
			return myerrors.NewInvalidInputErrorf("country %s is not available for shipping", countryCode)
		}

		ctx.LocaleEpoch++
		epoch = ctx.LocaleEpoch
		ctx.SelectedCountry = countryCode
		ctx.SelectedSubdivision = ""
		ctx.Subdivisions = nil
		ctx.ShippingOptions = nil

		err = ctx.transitionTo(StateLocaleLoading, s.nower.Now())
		if err != nil {
			return err
		}

		return s.persist(c, &ctx)
	})
	if err != nil {
		return CheckoutContext{}, err
	}

	subdivisions, err := s.gateway.ListSubdivisions(c, countryCode)
	if err != nil {
		return CheckoutContext{}, s.failLocaleFetch(c, epoch, "subdivisions", err)
	}
	subdivisionCode := pickCode(commerceapi.CodeNamesFromMap(subdivisions), "")

	options, err := s.gateway.GetShippingOptions(c, ctx.Token.UID, countryCode, subdivisionCode)
	if err != nil {
		return CheckoutContext{}, s.failLocaleFetch(c, epoch, "shipping options", err)
	}

	return s.applyLocaleResult(c, epoch, func(ctx *CheckoutContext) {
		ctx.Subdivisions = commerceapi.CodeNamesFromMap(subdivisions)
		ctx.SelectedSubdivision = subdivisionCode
		ctx.ShippingOptions = options
	})
}

// selectSubdivision records the new subdivision and refreshes the shipping
// options that depend on it.
func (s *service) selectSubdivision(c context.Context, subdivisionCode string) (CheckoutContext, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Select subdivision %s", subdivisionCode)

	var ctx CheckoutContext
	var epoch int
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		ctx, err = s.load(c)
		if err != nil {
			return err
		}
		if !ctx.hasSubdivision(subdivisionCode) {
			return myerrors.NewInvalidInputErrorf("subdivision %s is not available for shipping", subdivisionCode)
		}

		ctx.LocaleEpoch++
		epoch = ctx.LocaleEpoch
		ctx.SelectedSubdivision = subdivisionCode
		ctx.ShippingOptions = nil

		err = ctx.transitionTo(StateLocaleLoading, s.nower.Now())
		if err != nil {
			return err
		}

		return s.persist(c, &ctx)
	})
	if err != nil {
		return CheckoutContext{}, err
	}

	options, err := s.gateway.GetShippingOptions(c, ctx.Token.UID, ctx.SelectedCountry, subdivisionCode)
	if err != nil {
		return CheckoutContext{}, s.failLocaleFetch(c, epoch, "shipping options", err)
	}

	return s.applyLocaleResult(c, epoch, func(ctx *CheckoutContext) {
		ctx.ShippingOptions = options
	})
}

func (s *service) selectShippingOption(c context.Context, optionUID string) (CheckoutContext, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Select shipping option %s", optionUID)

	var ctx CheckoutContext
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		ctx, err = s.load(c)
		if err != nil {
			return err
		}
		if ctx.State != StateLocaleReady {
			return myerrors.NewConflictError(fmt.Errorf("cannot select a shipping option in state %s", ctx.State))
		}
		if !ctx.hasShippingOption(optionUID) {
			return myerrors.NewInvalidInputErrorf("shipping option %s is not available for the selected destination", optionUID)
		}

		now := s.nower.Now()
		ctx.SelectedShippingOption = optionUID
		ctx.LastModified = &now

		return s.persist(c, &ctx)
	})
	if err != nil {
		return CheckoutContext{}, err
	}

	return ctx, nil
}

// submit validates the order form, verifies that the cart has not changed
// since the token was issued and asks the gateway to capture the order. On
// success the order is handed to the receipt store and the cart service is
// notified through the OrderCaptured event.
func (s *service) submit(c context.Context, form commerceapi.OrderForm) (commerceapi.Order, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Submit checkout")

	ctx, err := s.load(c)
	if err != nil {
		return commerceapi.Order{}, err
	}
	if ctx.State != StateLocaleReady {
		return commerceapi.Order{}, myerrors.NewConflictError(fmt.Errorf("cannot submit in state %s", ctx.State))
	}

	err = form.Validate()
	if err != nil {
		return commerceapi.Order{}, err
	}
	if !ctx.hasShippingOption(form.Fulfillment.ShippingOptionUID) {
		return commerceapi.Order{}, myerrors.NewInvalidInputErrorf("shipping option %s is not available for the selected destination", form.Fulfillment.ShippingOptionUID)
	}

	err = ctx.transitionTo(StateSubmitting, s.nower.Now())
	if err != nil {
		return commerceapi.Order{}, err
	}
	err = s.persist(c, &ctx)
	if err != nil {
		return commerceapi.Order{}, err
	}

	cart, err := s.cart.CurrentCart(c)
	if err != nil {
		return commerceapi.Order{}, err
	}
	if ctx.CartChangedSinceToken || cart.Fingerprint() != ctx.CartFingerprint {
		return commerceapi.Order{}, s.regenerateToken(c, ctx, cart)
	}

	order, err := s.gateway.CaptureOrder(c, ctx.Token.UID, form.ToOrderPayload(ctx.Token))
	if err != nil {
		if myerrors.IsConflict(err) {
			// the gateway noticed the token no longer matches its cart
			return commerceapi.Order{}, s.regenerateToken(c, ctx, cart)
		}

		return commerceapi.Order{}, s.markFailed(c, &ctx, "capture", err)
	}

	// The order is captured at the gateway from here on: record that fact
	// before any local bookkeeping that could still fail
	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		err := ctx.transitionTo(StateCaptured, s.nower.Now())
		if err != nil {
			return err
		}
		err = s.persist(c, &ctx)
		if err != nil {
			return err
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.OrderCaptured{
			CheckoutUID:    ctx.UID,
			CartUID:        ctx.CartUID,
			OrderUID:       order.UID,
			OrderReference: order.CustomerReference,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		s.logger.Log(c, ctx.UID, mylog.SeverityError, "Error recording capture of order %s: %s", order.UID, err)
	}

	err = s.receipts.Save(c, order)
	if err != nil {
		s.logger.Log(c, ctx.UID, mylog.SeverityError, "Error storing receipt for captured order %s: %s", order.UID, err)
	}

	return order, nil
}

// regenerateToken is the stale-cart recovery path: the checkout falls back to
// TokenPending, gets a fresh token for the changed cart, reloads the locale
// data and reports a conflict so the shopper can confirm the new totals.
func (s *service) regenerateToken(c context.Context, ctx CheckoutContext, cart commerceapi.Cart) error {
	s.logger.Log(c, ctx.UID, mylog.SeverityWarn, "Cart changed since token was issued, regenerating token for cart %s", cart.UID)

	err := ctx.transitionTo(StateTokenPending, s.nower.Now())
	if err != nil {
		return err
	}
	ctx.CartUID = cart.UID
	ctx.CartFingerprint = cart.Fingerprint()
	ctx.CartChangedSinceToken = false
	err = s.persist(c, &ctx)
	if err != nil {
		return err
	}

	token, err := s.gateway.GenerateCheckoutToken(c, cart.UID)
	if err != nil {
		return s.markFailed(c, &ctx, "token", err)
	}

	ctx.Token = token
	err = ctx.transitionTo(StateTokenReady, s.nower.Now())
	if err != nil {
		return err
	}
	err = s.persist(c, &ctx)
	if err != nil {
		return err
	}

	_, err = s.loadLocaleData(c, ctx)
	if err != nil {
		return err
	}

	return myerrors.NewConflictError(fmt.Errorf("cart changed since checkout started; totals were refreshed, please confirm again"))
}

// loadLocaleData walks the dependent locale chain: shipping countries for the
// token, subdivisions for the selected country, shipping options for the
// (country, subdivision) pair. Existing selections are kept when still valid.
func (s *service) loadLocaleData(c context.Context, ctx CheckoutContext) (CheckoutContext, error) {
	epoch := ctx.LocaleEpoch

	err := ctx.transitionTo(StateLocaleLoading, s.nower.Now())
	if err != nil {
		return CheckoutContext{}, err
	}
	err = s.persist(c, &ctx)
	if err != nil {
		return CheckoutContext{}, err
	}

	countryMap, err := s.gateway.ListShippingCountries(c, ctx.Token.UID)
	if err != nil {
		return CheckoutContext{}, s.failLocaleFetch(c, epoch, "countries", err)
	}
	countries := commerceapi.CodeNamesFromMap(countryMap)
	countryCode := pickCode(countries, ctx.SelectedCountry)

	subdivisionMap, err := s.gateway.ListSubdivisions(c, countryCode)
	if err != nil {
		return CheckoutContext{}, s.failLocaleFetch(c, epoch, "subdivisions", err)
	}
	subdivisions := commerceapi.CodeNamesFromMap(subdivisionMap)
	subdivisionCode := pickCode(subdivisions, ctx.SelectedSubdivision)

	options, err := s.gateway.GetShippingOptions(c, ctx.Token.UID, countryCode, subdivisionCode)
	if err != nil {
		return CheckoutContext{}, s.failLocaleFetch(c, epoch, "shipping options", err)
	}

	return s.applyLocaleResult(c, epoch, func(ctx *CheckoutContext) {
		ctx.Countries = countries
		ctx.SelectedCountry = countryCode
		ctx.Subdivisions = subdivisions
		ctx.SelectedSubdivision = subdivisionCode
		ctx.ShippingOptions = options
	})
}

// applyLocaleResult stores the outcome of a locale fetch, but only when no
// newer country/subdivision selection superseded it in the meantime. A
// selected shipping option that vanished from the refreshed list is cleared,
// never silently kept.
func (s *service) applyLocaleResult(c context.Context, epoch int, apply func(ctx *CheckoutContext)) (CheckoutContext, error) {
	var ctx CheckoutContext
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		ctx, err = s.load(c)
		if err != nil {
			return err
		}
		if ctx.LocaleEpoch != epoch {
			s.logger.Log(c, ctx.UID, mylog.SeverityInfo, "Discarding stale locale fetch result (epoch %d, current %d)", epoch, ctx.LocaleEpoch)
			return nil
		}

		apply(&ctx)
		if !ctx.hasShippingOption(ctx.SelectedShippingOption) {
			ctx.SelectedShippingOption = ""
		}

		err = ctx.transitionTo(StateLocaleReady, s.nower.Now())
		if err != nil {
			return err
		}

		return s.persist(c, &ctx)
	})
	if err != nil {
		return CheckoutContext{}, err
	}

	return ctx, nil
}

// failLocaleFetch marks the checkout failed unless the fetch was already
// superseded by a newer selection.
func (s *service) failLocaleFetch(c context.Context, epoch int, stage string, cause error) error {
	transactionErr := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		ctx, err := s.load(c)
		if err != nil {
			return err
		}
		if ctx.LocaleEpoch != epoch {
			return nil
		}

		return s.markFailed(c, &ctx, stage, cause)
	})
	if transactionErr != nil && transactionErr != cause {
		s.logger.Log(c, "", mylog.SeverityError, "Error recording locale failure: %s", transactionErr)
	}

	return cause
}

// markFailed transitions to the terminal Failed state and publishes a
// CheckoutFailed event. Returns the original cause so callers can propagate it.
func (s *service) markFailed(c context.Context, ctx *CheckoutContext, stage string, cause error) error {
	s.logger.Log(c, ctx.UID, mylog.SeverityWarn, "Checkout failed during %s: %s", stage, cause)

	err := ctx.transitionTo(StateFailed, s.nower.Now())
	if err != nil {
		return err
	}
	ctx.LastError = cause.Error()

	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		err := s.persist(c, ctx)
		if err != nil {
			return err
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutFailed{
			CheckoutUID: ctx.UID,
			CartUID:     ctx.CartUID,
			Stage:       stage,
			Reason:      cause.Error(),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return cause
}

func (s *service) load(c context.Context) (CheckoutContext, error) {
	ctx, found, err := s.checkoutStore.Get(c, currentCheckoutKey)
	if err != nil {
		return CheckoutContext{}, myerrors.NewInternalError(err)
	}
	if !found {
		return CheckoutContext{}, myerrors.NewNotFoundError(fmt.Errorf("no active checkout"))
	}

	return ctx, nil
}

func (s *service) persist(c context.Context, ctx *CheckoutContext) error {
	err := s.checkoutStore.Put(c, currentCheckoutKey, *ctx)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

// pickCode keeps the preferred code when still present, otherwise falls back
// to the default country or the first available entry.
func pickCode(available []commerceapi.CodeName, preferred string) string {
	if preferred != "" {
		for _, entry := range available {
			if entry.Code == preferred {
				return preferred
			}
		}
	}
	for _, entry := range available {
		if entry.Code == defaultCountry {
			return entry.Code
		}
	}
	if len(available) > 0 {
		return available[0].Code
	}

	return ""
}
