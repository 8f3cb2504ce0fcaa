package catalog

import (
	"context"
	"time"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/commerceapi"
)

const (
	merchantKey = "merchant"
	productsKey = "products"
)

// CatalogCache holds the last successful gateway response. When the gateway
// is unreachable the storefront keeps rendering this snapshot.
type CatalogCache struct {
	Merchant  commerceapi.Merchant
	Products  []commerceapi.Product
	FetchedAt time.Time
}

type service struct {
	gateway    commerceapi.CommerceGateway
	cacheStore mystore.Store[CatalogCache]
	nower      mytime.Nower
	logger     mylog.Logger
}

func newService(gateway commerceapi.CommerceGateway, cacheStore mystore.Store[CatalogCache], nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		gateway:    gateway,
		cacheStore: cacheStore,
		nower:      nower,
		logger:     logger,
	}
}

func (s *service) getMerchant(c context.Context) (commerceapi.Merchant, error) {
	merchant, err := s.gateway.GetMerchantInfo(c)
	if err != nil {
		cached, found, storeErr := s.cacheStore.Get(c, merchantKey)
		if storeErr == nil && found {
			s.logger.Log(c, "", mylog.SeverityWarn, "Gateway unreachable, serving cached merchant: %s", err)
			return cached.Merchant, nil
		}

		return commerceapi.Merchant{}, err
	}

	storeErr := s.cacheStore.Put(c, merchantKey, CatalogCache{Merchant: merchant, FetchedAt: s.nower.Now()})
	if storeErr != nil {
		return commerceapi.Merchant{}, myerrors.NewInternalError(storeErr)
	}

	return merchant, nil
}

func (s *service) listProducts(c context.Context) ([]commerceapi.Product, error) {
	products, err := s.gateway.ListProducts(c)
	if err != nil {
		cached, found, storeErr := s.cacheStore.Get(c, productsKey)
		if storeErr == nil && found {
			s.logger.Log(c, "", mylog.SeverityWarn, "Gateway unreachable, serving cached products: %s", err)
			return cached.Products, nil
		}

		return nil, err
	}

	storeErr := s.cacheStore.Put(c, productsKey, CatalogCache{Products: products, FetchedAt: s.nower.Now()})
	if storeErr != nil {
		return nil, myerrors.NewInternalError(storeErr)
	}

	return products, nil
}
