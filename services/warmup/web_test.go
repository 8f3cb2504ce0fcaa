package warmup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myvault"
)

type fakePrimer struct {
	called int
	err    error
}

func (f *fakePrimer) Prime(c context.Context) error {
	f.called++
	return f.err
}

func TestWarmup(t *testing.T) {
	t.Run("All primers run", func(t *testing.T) {
		// given
		c := context.TODO()
		vault, _, err := myvault.New(c)
		assert.NoError(t, err)
		first := &fakePrimer{}
		second := &fakePrimer{}

		sut := NewWebService(vault, first, second)
		router := mux.NewRouter()
		sut.RegisterEndpoints(c, router)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, 1, first.called)
		assert.Equal(t, 1, second.called)
	})

	t.Run("Failing primer does not take the instance down", func(t *testing.T) {
		// given
		c := context.TODO()
		vault, _, err := myvault.New(c)
		assert.NoError(t, err)
		failing := &fakePrimer{err: fmt.Errorf("gateway down")}
		healthy := &fakePrimer{}

		sut := NewWebService(vault, failing, healthy)
		router := mux.NewRouter()
		sut.RegisterEndpoints(c, router)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, 1, healthy.called)
	})
}
