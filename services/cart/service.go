package cart

import (
	"sync"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

type service struct {
	gateway    commerceapi.CommerceGateway
	cartStore  mystore.Store[SessionCart]
	nower      mytime.Nower
	subscriber mypubsub.PubSub
	publisher  mypublisher.Publisher
	logger     mylog.Logger

	// Serializes mutating operations on the session cart. The storefront owns
	// a single cart, so one lock suffices.
	inFlight sync.Mutex
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(gateway commerceapi.CommerceGateway, cartStore mystore.Store[SessionCart], nower mytime.Nower, logger mylog.Logger, subscriber mypubsub.PubSub, publisher mypublisher.Publisher) *service {
	return &service{
		gateway:    gateway,
		cartStore:  cartStore,
		nower:      nower,
		subscriber: subscriber,
		publisher:  publisher,
		logger:     logger,
	}
}
