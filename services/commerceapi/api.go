package commerceapi

import "context"

// CommerceGateway abstracts the hosted commerce API that owns all the hard
// parts: pricing, tax, inventory and payment capture. Implementations must
// classify failures with myerrors so callers can distinguish network
// failures from validation errors.
//
//go:generate mockgen -source=api.go -package commerceapi -destination gateway_mock.go CommerceGateway
type CommerceGateway interface {
	GetMerchantInfo(c context.Context) (Merchant, error)
	ListProducts(c context.Context) ([]Product, error)

	// GetOrCreateCart retrieves the cart with the given uid, or creates a
	// fresh one when the uid is empty or no longer known to the gateway.
	GetOrCreateCart(c context.Context, cartUID string) (Cart, error)
	AddLineItem(c context.Context, cartUID string, productUID string, quantity int) (Cart, error)
	UpdateLineItem(c context.Context, cartUID string, lineItemUID string, quantity int) (Cart, error)
	RemoveLineItem(c context.Context, cartUID string, lineItemUID string) (Cart, error)
	EmptyCart(c context.Context, cartUID string) (Cart, error)

	// RefreshCart abandons the given cart and returns a fresh empty one.
	RefreshCart(c context.Context, cartUID string) (Cart, error)

	GenerateCheckoutToken(c context.Context, cartUID string) (CheckoutToken, error)
	ListShippingCountries(c context.Context, checkoutTokenUID string) (map[string]string, error)
	ListSubdivisions(c context.Context, countryCode string) (map[string]string, error)
	GetShippingOptions(c context.Context, checkoutTokenUID string, country string, subdivision string) ([]ShippingOption, error)
	CaptureOrder(c context.Context, checkoutTokenUID string, payload OrderPayload) (Order, error)
}
