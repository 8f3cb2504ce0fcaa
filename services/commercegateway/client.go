package commercegateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/myvault"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

type Config struct {
	BaseURL string
}

type client struct {
	baseURL    string
	httpClient myhttpclient.HTTPSender
	vault      myvault.VaultReader
	logger     mylog.Logger
}

// New returns a CommerceGateway that talks to the hosted commerce API.
// The API key is read from the vault on every call so that a rotated key
// is picked up without a restart.
func New(cfg Config, httpClient myhttpclient.HTTPSender, vault myvault.VaultReader) commerceapi.CommerceGateway {
	return &client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		vault:      vault,
		logger:     mylog.New("commercegateway"),
	}
}

func (g *client) GetMerchantInfo(c context.Context) (commerceapi.Merchant, error) {
	merchant := commerceapi.Merchant{}
	err := g.call(c, http.MethodGet, "/v1/merchant", nil, &merchant)

	return merchant, err
}

func (g *client) ListProducts(c context.Context) ([]commerceapi.Product, error) {
	resp := productListResponse{}
	err := g.call(c, http.MethodGet, "/v1/products", nil, &resp)

	return resp.Data, err
}

func (g *client) GetOrCreateCart(c context.Context, cartUID string) (commerceapi.Cart, error) {
	cart := commerceapi.Cart{}

	if cartUID == "" {
		err := g.call(c, http.MethodPost, "/v1/carts", nil, &cart)
		return cart, err
	}

	err := g.call(c, http.MethodGet, "/v1/carts/"+url.PathEscape(cartUID), nil, &cart)
	if err != nil && myerrors.IsNotFound(err) {
		// Cart expired on the gateway side: start over with a fresh one
		err = g.call(c, http.MethodPost, "/v1/carts", nil, &cart)
	}

	return cart, err
}

func (g *client) AddLineItem(c context.Context, cartUID string, productUID string, quantity int) (commerceapi.Cart, error) {
	resp := cartResponse{}
	err := g.call(c, http.MethodPost, "/v1/carts/"+url.PathEscape(cartUID)+"/items",
		addLineItemRequest{ProductUID: productUID, Quantity: quantity}, &resp)

	return resp.Cart, err
}

func (g *client) UpdateLineItem(c context.Context, cartUID string, lineItemUID string, quantity int) (commerceapi.Cart, error) {
	resp := cartResponse{}
	err := g.call(c, http.MethodPut, "/v1/carts/"+url.PathEscape(cartUID)+"/items/"+url.PathEscape(lineItemUID),
		updateLineItemRequest{Quantity: quantity}, &resp)

	return resp.Cart, err
}

func (g *client) RemoveLineItem(c context.Context, cartUID string, lineItemUID string) (commerceapi.Cart, error) {
	resp := cartResponse{}
	err := g.call(c, http.MethodDelete, "/v1/carts/"+url.PathEscape(cartUID)+"/items/"+url.PathEscape(lineItemUID), nil, &resp)

	return resp.Cart, err
}

func (g *client) EmptyCart(c context.Context, cartUID string) (commerceapi.Cart, error) {
	resp := cartResponse{}
	err := g.call(c, http.MethodDelete, "/v1/carts/"+url.PathEscape(cartUID)+"/items", nil, &resp)

	return resp.Cart, err
}

func (g *client) RefreshCart(c context.Context, cartUID string) (commerceapi.Cart, error) {
	cart := commerceapi.Cart{}
	err := g.call(c, http.MethodPost, "/v1/carts/"+url.PathEscape(cartUID)+"/refresh", nil, &cart)

	return cart, err
}

func (g *client) GenerateCheckoutToken(c context.Context, cartUID string) (commerceapi.CheckoutToken, error) {
	token := commerceapi.CheckoutToken{}
	err := g.call(c, http.MethodPost, "/v1/checkouts/"+url.PathEscape(cartUID),
		generateTokenRequest{Type: "cart"}, &token)

	return token, err
}

func (g *client) ListShippingCountries(c context.Context, checkoutTokenUID string) (map[string]string, error) {
	resp := countriesResponse{}
	err := g.call(c, http.MethodGet, "/v1/services/locale/"+url.PathEscape(checkoutTokenUID)+"/countries", nil, &resp)

	return resp.Countries, err
}

func (g *client) ListSubdivisions(c context.Context, countryCode string) (map[string]string, error) {
	resp := subdivisionsResponse{}
	err := g.call(c, http.MethodGet, "/v1/services/locale/"+url.PathEscape(countryCode)+"/subdivisions", nil, &resp)

	return resp.Subdivisions, err
}

func (g *client) GetShippingOptions(c context.Context, checkoutTokenUID string, country string, subdivision string) ([]commerceapi.ShippingOption, error) {
	resp := shippingOptionsResponse{}
	params := url.Values{}
	params.Set("country", country)
	params.Set("region", subdivision)
	err := g.call(c, http.MethodGet, "/v1/checkouts/"+url.PathEscape(checkoutTokenUID)+"/shipping_options?"+params.Encode(), nil, &resp)

	return resp.Options, err
}

func (g *client) CaptureOrder(c context.Context, checkoutTokenUID string, payload commerceapi.OrderPayload) (commerceapi.Order, error) {
	order := commerceapi.Order{}
	err := g.call(c, http.MethodPost, "/v1/checkouts/"+url.PathEscape(checkoutTokenUID)+"/capture", payload, &order)

	return order, err
}

func (g *client) call(c context.Context, method string, path string, reqBody any, respBody any) error {
	var payload []byte
	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error marshalling request for %s %s: %s", method, path, err))
		}
	}

	headers := map[string]string{}
	credential, found, err := g.vault.Get(c, myvault.CurrentAPIKey)
	if err != nil {
		// proceed unauthenticated, but leave a trail so a later 401 can be explained
		g.logger.Log(c, "", mylog.SeverityWarn, "Error reading gateway credential from vault: %s", err)
	} else if found {
		headers["X-Authorization"] = credential.APIKey
	}

	status, respPayload, err := g.httpClient.Send(c, method, g.baseURL+path, headers, payload)
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error calling %s %s: %s", method, path, err))
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return g.classify(method, path, status, respPayload)
	}

	if respBody != nil {
		err = json.Unmarshal(respPayload, respBody)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error parsing response of %s %s: %s", method, path, err))
		}
	}

	return nil
}

func (g *client) classify(method string, path string, status int, respPayload []byte) error {
	message := fmt.Sprintf("%s %s returned status %d", method, path, status)

	errResp := errorResponse{}
	if json.Unmarshal(respPayload, &errResp) == nil && errResp.Error.Message != "" {
		message = fmt.Sprintf("%s: %s", message, errResp.Error.Message)
	}

	switch {
	case status == http.StatusNotFound:
		return myerrors.NewNotFoundError(fmt.Errorf("%s", message))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return myerrors.NewAuthenticationError(fmt.Errorf("%s", message))
	case status == http.StatusConflict:
		return myerrors.NewConflictError(fmt.Errorf("%s", message))
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return myerrors.NewInvalidInputErrorf("%s", message)
	default:
		return myerrors.NewUnavailableError(fmt.Errorf("%s", message))
	}
}
