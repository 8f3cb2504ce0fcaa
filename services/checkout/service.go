package checkout

import (
	"context"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

// CartSnapshot provides the current cart mirror without a gateway round-trip.
// Implemented by the cart service.
type CartSnapshot interface {
	CurrentCart(c context.Context) (commerceapi.Cart, error)
}

// ReceiptStorer persists a captured order. Implemented by the receipt service.
type ReceiptStorer interface {
	Save(c context.Context, order commerceapi.Order) error
}

type service struct {
	gateway       commerceapi.CommerceGateway
	checkoutStore mystore.Store[CheckoutContext]
	cart          CartSnapshot
	receipts      ReceiptStorer
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	subscriber    mypubsub.PubSub
	publisher     mypublisher.Publisher
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(gateway commerceapi.CommerceGateway, checkoutStore mystore.Store[CheckoutContext], cart CartSnapshot, receipts ReceiptStorer, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, subscriber mypubsub.PubSub, publisher mypublisher.Publisher) *service {
	return &service{
		gateway:       gateway,
		checkoutStore: checkoutStore,
		cart:          cart,
		receipts:      receipts,
		nower:         nower,
		uuider:        uuider,
		subscriber:    subscriber,
		publisher:     publisher,
		logger:        logger,
	}
}
