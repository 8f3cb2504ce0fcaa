package receipt

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
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
func NewWebService(receiptStore mystore.Store[OrderReceipt], nower mytime.Nower) *webService {
	logger := mylog.New("receipt")

	return &webService{
		logger:  logger,
		service: newService(receiptStore, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/receipt", s.getReceiptPage()).Methods("GET")
	router.HandleFunc("/api/receipt", s.clearReceiptPage()).Methods("DELETE")

	return nil
}

// Save stores the receipt of a captured order. Called by the checkout service.
func (s *webService) Save(c context.Context, order commerceapi.Order) error {
	return s.service.Save(c, order)
}

// Prime checks whether a receipt survived a restart. Called on instance startup.
func (s *webService) Prime(c context.Context) error {
	_, err := s.service.Load(c)
	if err != nil && myerrors.IsNotFound(err) {
		return nil
	}

	return err
}

func (s *webService) getReceiptPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		receipt, err := s.service.Load(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, receipt)
	}
}

func (s *webService) clearReceiptPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.Clear(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Receipt cleared"})
	}
}
