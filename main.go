package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"

	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/lib/myvault"
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/checkout"
	"github.com/MarcGrol/storefront/services/commercegateway"
	"github.com/MarcGrol/storefront/services/receipt"
	"github.com/MarcGrol/storefront/services/warmup"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	GatewayBaseURL string `envconfig:"COMMERCE_GATEWAY_BASE_URL" default:"https://api.chec.io"`
	GatewayAPIKey  string `envconfig:"COMMERCE_GATEWAY_API_KEY"`
}

func main() {
	c := context.Background()

	cfg := Config{}
	err := envconfig.Process("", &cfg)
	if err != nil {
		log.Fatalf("Error processing configuration: %s", err)
	}

	router := mux.NewRouter()
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	vault, vaultCleanup, err := myvault.New(c)
	if err != nil {
		log.Fatalf("Error creating vault: %s", err)
	}
	defer vaultCleanup()

	if cfg.GatewayAPIKey != "" {
		err = vault.Put(c, myvault.CurrentAPIKey, myvault.Credential{APIKey: cfg.GatewayAPIKey})
		if err != nil {
			log.Fatalf("Error storing gateway api-key: %s", err)
		}
	}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	gateway := commercegateway.New(commercegateway.Config{BaseURL: cfg.GatewayBaseURL}, myhttpclient.New(), vault)

	catalogStore, catalogStoreCleanup, err := mystore.New[catalog.CatalogCache](c)
	if err != nil {
		log.Fatalf("Error creating catalog store: %s", err)
	}
	defer catalogStoreCleanup()
	catalogService := catalog.NewWebService(gateway, catalogStore, nower)
	err = catalogService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering catalog service: %s", err)
	}

	cartStore, cartStoreCleanup, err := mystore.New[cart.SessionCart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()
	cartService := cart.NewWebService(gateway, cartStore, nower, pubsub, publisher)
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering cart service: %s", err)
	}

	receiptStore, receiptStoreCleanup, err := mystore.New[receipt.OrderReceipt](c)
	if err != nil {
		log.Fatalf("Error creating receipt store: %s", err)
	}
	defer receiptStoreCleanup()
	receiptService := receipt.NewWebService(receiptStore, nower)
	err = receiptService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering receipt service: %s", err)
	}

	checkoutStore, checkoutStoreCleanup, err := mystore.New[checkout.CheckoutContext](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}
	defer checkoutStoreCleanup()
	checkoutService := checkout.NewWebService(gateway, checkoutStore, cartService, receiptService, nower, uuider, pubsub, publisher)
	err = checkoutService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering checkout service: %s", err)
	}

	warmupService := warmup.NewWebService(vault, catalogService, cartService, receiptService)
	warmupService.RegisterEndpoints(c, router)

	startWebServerBlocking(router, cfg.Port)
}

func startWebServerBlocking(router *mux.Router, port int) {
	log.Printf("Starting webserver on port %d (try http://localhost:%d)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %d: %s", port, err)
	}
}
