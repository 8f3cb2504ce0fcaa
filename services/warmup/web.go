package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/myvault"
)

// Primer warms a service's caches or session state on instance startup.
type Primer interface {
	Prime(c context.Context) error
}

type webService struct {
	logger  mylog.Logger
	vault   myvault.VaultReader
	primers []Primer
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(vault myvault.VaultReader, primers ...Primer) *webService {
	logger := mylog.New("warmup")

	return &webService{
		logger:  logger,
		vault:   vault,
		primers: primers,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, _, err := s.vault.Get(c, myvault.CurrentAPIKey)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		for _, primer := range s.primers {
			err = primer.Prime(c)
			if err != nil {
				// warmup is best effort: log and keep the instance serving
				s.logger.Log(c, "", mylog.SeverityWarn, "Error priming: %s", err)
			}
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
