package catalog

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(gateway commerceapi.CommerceGateway, cacheStore mystore.Store[CatalogCache], nower mytime.Nower) *webService {
	logger := mylog.New("catalog")

	return &webService{
		logger:  logger,
		service: newService(gateway, cacheStore, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/merchant", s.getMerchantPage()).Methods("GET")
	router.HandleFunc("/api/products", s.listProductsPage()).Methods("GET")

	return nil
}

// Prime warms the catalog cache. Called on instance startup.
func (s *webService) Prime(c context.Context) error {
	_, err := s.service.getMerchant(c)
	if err != nil {
		return err
	}

	_, err = s.service.listProducts(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) getMerchantPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		merchant, err := s.service.getMerchant(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, merchant)
	}
}

func (s *webService) listProductsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}
