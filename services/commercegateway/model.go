package commercegateway

import "github.com/MarcGrol/storefront/services/commerceapi"

// Wire envelopes used by the hosted commerce API. Cart mutations return the
// resulting cart wrapped in a "cart" field; locale lookups wrap their maps
// the same way.

type cartResponse struct {
	Cart commerceapi.Cart `json:"cart"`
}

type productListResponse struct {
	Data []commerceapi.Product `json:"data"`
}

type countriesResponse struct {
	Countries map[string]string `json:"countries"`
}

type subdivisionsResponse struct {
	Subdivisions map[string]string `json:"subdivisions"`
}

type shippingOptionsResponse struct {
	Options []commerceapi.ShippingOption `json:"options"`
}

type addLineItemRequest struct {
	ProductUID string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

type updateLineItemRequest struct {
	Quantity int `json:"quantity"`
}

type generateTokenRequest struct {
	Type string `json:"type"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
