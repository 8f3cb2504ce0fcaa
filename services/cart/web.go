package cart

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/checkout/checkoutevents"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(gateway commerceapi.CommerceGateway, cartStore mystore.Store[SessionCart], nower mytime.Nower, subscriber mypubsub.PubSub, publisher mypublisher.Publisher) *webService {
	logger := mylog.New("cart")

	return &webService{
		logger:  logger,
		service: newService(gateway, cartStore, nower, logger, subscriber, publisher),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.getCartPage()).Methods("GET")
	router.HandleFunc("/api/cart/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/cart/items", s.emptyCartPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/items/{lineItemUID}", s.adjustItemPage()).Methods("PUT")
	router.HandleFunc("/api/cart/items/{lineItemUID}", s.removeItemPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/refresh", s.refreshCartPage()).Methods("POST")

	// Events from the checkout service arrive here
	router.HandleFunc("/api/cart/event", s.handleEventEnvelope()).Methods("POST")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	err = s.service.Subscribe(c)
	if err != nil {
		return err
	}

	return nil
}

// CurrentCart exposes the mirrored cart to sibling services.
func (s *webService) CurrentCart(c context.Context) (commerceapi.Cart, error) {
	return s.service.CurrentCart(c)
}

// Prime gets-or-creates the session cart. Called on instance startup.
func (s *webService) Prime(c context.Context) error {
	_, err := s.service.retrieveOrCreateCart(c)

	return err
}

func (s *webService) getCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.retrieveOrCreateCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err)))
			return
		}

		quantity, err := parseQuantity(r.FormValue("quantity"), 1)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		cart, err := s.service.addItem(c, r.FormValue("productUid"), quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) adjustItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		lineItemUID := mux.Vars(r)["lineItemUID"]

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err)))
			return
		}

		quantity, err := parseQuantity(r.FormValue("quantity"), 0)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		cart, err := s.service.adjustItemQuantity(c, lineItemUID, quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.removeItem(c, mux.Vars(r)["lineItemUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) emptyCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.emptyCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) refreshCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.refreshCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := checkoutevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Successfully processed event"})
	}
}

func parseQuantity(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}

	quantity, err := strconv.Atoi(value)
	if err != nil {
		return 0, myerrors.NewInvalidInputError(fmt.Errorf("invalid quantity %s: %s", value, err))
	}

	return quantity, nil
}
