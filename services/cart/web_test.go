package cart

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/checkout/checkoutevents"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

var (
	emptyCart = commerceapi.Cart{
		UID:        "cart_1",
		TotalItems: 0,
		LineItems:  []commerceapi.LineItem{},
	}
	cartWithOneItem = commerceapi.Cart{
		UID:        "cart_1",
		TotalItems: 2,
		LineItems: []commerceapi.LineItem{
			{UID: "item_1", ProductUID: "prod_1", Quantity: 2},
		},
	}
)

func TestCartService(t *testing.T) {
	t.Run("Get cart creates one when none exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, gateway, nower, publisher := setup(t, ctrl)

		// given
		gateway.EXPECT().GetOrCreateCart(gomock.Any(), "").Return(emptyCart, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/cart", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "cart_1")
		mirror, exists, _ := storer.Get(c, currentCartKey)
		assert.True(t, exists)
		assert.Equal(t, emptyCart, mirror.Cart)
	})

	t.Run("Add item replaces mirror with gateway response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, gateway, nower, publisher := setup(t, ctrl)

		// given
		storer.Put(c, currentCartKey, SessionCart{Cart: emptyCart, CreatedAt: mytime.ExampleTime})
		gateway.EXPECT().AddLineItem(gomock.Any(), "cart_1", "prod_1", 2).Return(cartWithOneItem, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartModified{
			CartUID:         "cart_1",
			Operation:       OperationAdd,
			TotalItems:      2,
			CartFingerprint: cartWithOneItem.Fingerprint(),
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader("productUid=prod_1&quantity=2"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		mirror, exists, _ := storer.Get(c, currentCartKey)
		assert.True(t, exists)
		assert.Equal(t, cartWithOneItem, mirror.Cart)
	})

	t.Run("Failed mutation leaves mirror untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, gateway, _, _ := setup(t, ctrl)

		// given
		storer.Put(c, currentCartKey, SessionCart{Cart: cartWithOneItem, CreatedAt: mytime.ExampleTime})
		gateway.EXPECT().EmptyCart(gomock.Any(), "cart_1").
			Return(commerceapi.Cart{}, myerrors.NewUnavailableError(fmt.Errorf("gateway down")))

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/cart/items", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 503, response.Code)
		mirror, exists, _ := storer.Get(c, currentCartKey)
		assert.True(t, exists)
		assert.Equal(t, cartWithOneItem, mirror.Cart)
	})

	t.Run("Add item without active cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader("productUid=prod_1"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Add item with invalid quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader("productUid=prod_1&quantity=lots"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Adjusting quantity to zero removes the line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, gateway, nower, publisher := setup(t, ctrl)

		// given
		storer.Put(c, currentCartKey, SessionCart{Cart: cartWithOneItem, CreatedAt: mytime.ExampleTime})
		gateway.EXPECT().RemoveLineItem(gomock.Any(), "cart_1", "item_1").Return(emptyCart, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/cart/items/item_1", strings.NewReader("quantity=0"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		mirror, _, _ := storer.Get(c, currentCartKey)
		assert.Equal(t, emptyCart, mirror.Cart)
	})

	t.Run("Order captured event refreshes the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, gateway, nower, publisher := setup(t, ctrl)

		// given
		freshCart := commerceapi.Cart{UID: "cart_2", TotalItems: 0}
		storer.Put(c, currentCartKey, SessionCart{Cart: cartWithOneItem, CreatedAt: mytime.ExampleTime})
		gateway.EXPECT().RefreshCart(gomock.Any(), "cart_1").Return(freshCart, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

		// when
		body := mypublisher.CreatePubsubMessage(checkoutevents.TopicName, checkoutevents.OrderCaptured{
			CheckoutUID: "checkout_1",
			CartUID:     "cart_1",
			OrderUID:    "order_1",
		})
		request, err := http.NewRequest(http.MethodPost, "/api/cart/event", strings.NewReader(body))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		mirror, _, _ := storer.Get(c, currentCartKey)
		assert.Equal(t, freshCart, mirror.Cart)
	})

	t.Run("Order captured event for replaced cart is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, _, _, _ := setup(t, ctrl)

		// given
		storer.Put(c, currentCartKey, SessionCart{Cart: commerceapi.Cart{UID: "cart_9"}, CreatedAt: mytime.ExampleTime})

		// when
		body := mypublisher.CreatePubsubMessage(checkoutevents.TopicName, checkoutevents.OrderCaptured{
			CheckoutUID: "checkout_1",
			CartUID:     "cart_1",
			OrderUID:    "order_1",
		})
		request, err := http.NewRequest(http.MethodPost, "/api/cart/event", strings.NewReader(body))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		mirror, _, _ := storer.Get(c, currentCartKey)
		assert.Equal(t, "cart_9", mirror.Cart.UID)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[SessionCart], *commerceapi.MockCommerceGateway, *mytime.MockNower, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, _ := mystore.New[SessionCart](c)
	gateway := commerceapi.NewMockCommerceGateway(ctrl)
	nower := mytime.NewMockNower(ctrl)
	subscriber := mypubsub.NewMockPubSub(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	sut := NewWebService(gateway, storer, nower, subscriber, publisher)
	router := mux.NewRouter()

	// These are called by the following call to RegisterEndpoints()
	publisher.EXPECT().CreateTopic(c, cartevents.TopicName).Return(nil)
	subscriber.EXPECT().Subscribe(c, checkoutevents.TopicName, "http://localhost:8080/api/cart/event").Return(nil)

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, gateway, nower, publisher
}
