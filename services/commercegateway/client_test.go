package commercegateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/myvault"
)

func setup(t *testing.T, handler http.HandlerFunc) (context.Context, *httptest.Server, func()) {
	c := context.TODO()

	server := httptest.NewServer(handler)

	return c, server, server.Close
}

func newClientForServer(c context.Context, t *testing.T, server *httptest.Server) *client {
	vault, _, err := myvault.New(c)
	assert.NoError(t, err)
	err = vault.Put(c, myvault.CurrentAPIKey, myvault.Credential{APIKey: "pk_test_123"})
	assert.NoError(t, err)

	return New(Config{BaseURL: server.URL}, myhttpclient.New(), vault).(*client)
}

type brokenVault struct{}

func (v brokenVault) Get(c context.Context, uid string) (myvault.Credential, bool, error) {
	return myvault.Credential{}, false, fmt.Errorf("vault unreachable")
}

func TestClient(t *testing.T) {
	t.Run("Get merchant", func(t *testing.T) {
		// given
		var gotAuth string
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("X-Authorization")
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/merchant", r.URL.Path)
			w.Write([]byte(`{"id":"merch_1","business_name":"Eva's shop","country":"US","currency":"USD"}`))
		})
		defer cleanup()
		sut := newClientForServer(c, t, server)

		// when
		merchant, err := sut.GetMerchantInfo(c)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "pk_test_123", gotAuth)
		assert.Equal(t, "Eva's shop", merchant.BusinessName)
	})

	t.Run("Add line item unwraps cart envelope", func(t *testing.T) {
		// given
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/carts/cart_1/items", r.URL.Path)
			w.Write([]byte(`{"cart":{"id":"cart_1","total_items":2,"line_items":[{"id":"item_1","product_id":"prod_1","quantity":2}]}}`))
		})
		defer cleanup()
		sut := newClientForServer(c, t, server)

		// when
		cart, err := sut.AddLineItem(c, "cart_1", "prod_1", 2)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "cart_1", cart.UID)
		assert.Equal(t, 2, cart.TotalItems)
		assert.Len(t, cart.LineItems, 1)
	})

	t.Run("Expired cart falls back to create", func(t *testing.T) {
		// given
		requests := 0
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			if r.Method == http.MethodGet {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/carts", r.URL.Path)
			w.Write([]byte(`{"id":"cart_2","total_items":0}`))
		})
		defer cleanup()
		sut := newClientForServer(c, t, server)

		// when
		cart, err := sut.GetOrCreateCart(c, "cart_gone")

		// then
		assert.NoError(t, err)
		assert.Equal(t, 2, requests)
		assert.Equal(t, "cart_2", cart.UID)
	})

	t.Run("Server error classified as unavailable", func(t *testing.T) {
		// given
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		defer cleanup()
		sut := newClientForServer(c, t, server)

		// when
		_, err := sut.ListProducts(c)

		// then
		assert.Error(t, err)
		assert.True(t, myerrors.IsUnavailable(err))
	})

	t.Run("Unprocessable input classified as invalid input", func(t *testing.T) {
		// given
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":{"message":"quantity exceeds stock"}}`))
		})
		defer cleanup()
		sut := newClientForServer(c, t, server)

		// when
		_, err := sut.AddLineItem(c, "cart_1", "prod_1", 9999)

		// then
		assert.Error(t, err)
		assert.True(t, myerrors.IsInvalidInput(err))
		assert.Contains(t, err.Error(), "quantity exceeds stock")
	})

	t.Run("Unreachable gateway classified as unavailable", func(t *testing.T) {
		// given
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {})
		cleanup() // server down before the call

		sut := newClientForServer(c, t, server)

		// when
		_, err := sut.GetMerchantInfo(c)

		// then
		assert.Error(t, err)
		assert.True(t, myerrors.IsUnavailable(err))
	})

	t.Run("Vault failure proceeds unauthenticated", func(t *testing.T) {
		// given
		var gotAuth string
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("X-Authorization")
			w.Write([]byte(`{"id":"merch_1","business_name":"Eva's shop"}`))
		})
		defer cleanup()
		sut := New(Config{BaseURL: server.URL}, myhttpclient.New(), brokenVault{}).(*client)

		// when
		merchant, err := sut.GetMerchantInfo(c)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "", gotAuth)
		assert.Equal(t, "Eva's shop", merchant.BusinessName)
	})

	t.Run("Shipping options pass country and region", func(t *testing.T) {
		// given
		c, server, cleanup := setup(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/checkouts/tok_1/shipping_options", r.URL.Path)
			assert.Equal(t, "US", r.URL.Query().Get("country"))
			assert.Equal(t, "CA", r.URL.Query().Get("region"))
			w.Write([]byte(`{"options":[{"id":"ship_1","description":"Ground"}]}`))
		})
		defer cleanup()
		sut := newClientForServer(c, t, server)

		// when
		options, err := sut.GetShippingOptions(c, "tok_1", "US", "CA")

		// then
		assert.NoError(t, err)
		assert.Len(t, options, 1)
		assert.Equal(t, "ship_1", options[0].UID)
	})
}
