package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

// receiptKey is the single slot under which the latest receipt is stored.
// Saving a new receipt overwrites the previous one.
const receiptKey = "order_receipt"

type OrderReceipt struct {
	Order   commerceapi.Order
	SavedAt time.Time
}

type service struct {
	receiptStore mystore.Store[OrderReceipt]
	nower        mytime.Nower
	logger       mylog.Logger
}

func newService(receiptStore mystore.Store[OrderReceipt], nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		receiptStore: receiptStore,
		nower:        nower,
		logger:       logger,
	}
}

// Save overwrites the receipt slot with the given captured order.
func (s *service) Save(c context.Context, order commerceapi.Order) error {
	s.logger.Log(c, order.UID, mylog.SeverityInfo, "Save receipt for order %s (%s)", order.UID, order.CustomerReference)

	err := s.receiptStore.Put(c, receiptKey, OrderReceipt{
		Order:   order,
		SavedAt: s.nower.Now(),
	})
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

func (s *service) Load(c context.Context) (OrderReceipt, error) {
	receipt, found, err := s.receiptStore.Get(c, receiptKey)
	if err != nil {
		return OrderReceipt{}, myerrors.NewInternalError(err)
	}
	if !found {
		return OrderReceipt{}, myerrors.NewNotFoundError(fmt.Errorf("no receipt available"))
	}

	return receipt, nil
}

// Clear resets the slot. Loading afterwards reports not-found again.
func (s *service) Clear(c context.Context) error {
	s.logger.Log(c, "", mylog.SeverityInfo, "Clear receipt")

	err := s.receiptStore.Delete(c, receiptKey)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}
