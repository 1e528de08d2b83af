package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/sessionguard/lib/mypublisher"
	"github.com/MarcGrol/sessionguard/lib/mypubsub"
	"github.com/MarcGrol/sessionguard/lib/myqueue"
	"github.com/MarcGrol/sessionguard/lib/mystore"
	"github.com/MarcGrol/sessionguard/lib/mytime"
	"github.com/MarcGrol/sessionguard/lib/myuuid"
	"github.com/MarcGrol/sessionguard/lib/myvault"
	"github.com/MarcGrol/sessionguard/services/settings"
	"github.com/MarcGrol/sessionguard/services/tokenverify"
	"github.com/MarcGrol/sessionguard/services/tokenverify/exchangeclient"
	"github.com/MarcGrol/sessionguard/services/tokenverify/sessionvault"
)

const (
	defaultIdentityProviderURL = "https://samples.auth0.com"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
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

	settingsStore, settingsStoreCleanup, err := mystore.New[settings.VerifierSettings](c)
	if err != nil {
		log.Fatalf("Error creating settings store: %s", err)
	}
	defer settingsStoreCleanup()

	settingsService := settings.NewService(settingsStore, nower)
	err = settingsService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering settings endpoints: %s", err)
	}

	sessionVault, vaultCleanup, err := myvault.New[sessionvault.Session](c)
	if err != nil {
		log.Fatalf("Error creating session vault: %s", err)
	}
	defer vaultCleanup()

	identityProviderURL := os.Getenv("AUTH0_URL")
	if identityProviderURL == "" {
		identityProviderURL = defaultIdentityProviderURL
	}
	exchanger := exchangeclient.NewExchangeClient(identityProviderURL)

	tokenVerifyService := tokenverify.NewService(sessionVault, settingsService, exchanger, nower, uuider, publisher)
	err = tokenVerifyService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering tokenverify endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
