package receipt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

var order = commerceapi.Order{
	UID:               "order_1",
	CustomerReference: "SPF-0001",
	Status:            "fulfilled",
}

func TestReceiptService(t *testing.T) {
	t.Run("No receipt available", func(t *testing.T) {
		// setup
		_, router, _ := setup(t)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/receipt", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Save and load", func(t *testing.T) {
		// setup
		c, router, sut := setup(t)

		// given
		err := sut.Save(c, order)
		assert.NoError(t, err)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/receipt", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "SPF-0001")
		assert.Contains(t, response.Body.String(), `"status":"fulfilled"`)
	})

	t.Run("Save overwrites previous receipt", func(t *testing.T) {
		// setup
		c, router, sut := setup(t)

		// given
		err := sut.Save(c, order)
		assert.NoError(t, err)
		err = sut.Save(c, commerceapi.Order{UID: "order_2", CustomerReference: "SPF-0002"})
		assert.NoError(t, err)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/receipt", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "SPF-0002")
		assert.NotContains(t, response.Body.String(), "SPF-0001")
	})

	t.Run("Clear", func(t *testing.T) {
		// setup
		c, router, sut := setup(t)

		// given
		err := sut.Save(c, order)
		assert.NoError(t, err)

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/receipt", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)

		request, err = http.NewRequest(http.MethodGet, "/api/receipt", nil)
		assert.NoError(t, err)
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)
		assert.Equal(t, 404, response.Code)
	})
}

func setup(t *testing.T) (context.Context, *mux.Router, *webService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	c := context.TODO()
	storer, _, _ := mystore.New[OrderReceipt](c)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	sut := NewWebService(storer, nower)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, sut
}
