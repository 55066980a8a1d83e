package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ovenside/bakery-admin/internal/console/client"
	"github.com/ovenside/bakery-admin/internal/console/editor"
	"github.com/ovenside/bakery-admin/internal/console/forms"
	"github.com/ovenside/bakery-admin/internal/console/orders"
	"github.com/ovenside/bakery-admin/internal/console/session"
	"github.com/ovenside/bakery-admin/internal/console/state"
	"github.com/ovenside/bakery-admin/internal/console/web"
	"github.com/ovenside/bakery-admin/internal/platform/config"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

func main() {
	cfg := config.LoadConsoleConfig()

	logger.Info("Starting Admin Console...")

	api := client.NewStorefrontClient(cfg.StorefrontURL)
	store := state.NewTableStore()
	synchronizer := state.NewSynchronizer(api, store)

	// Warm the table before serving; a failure leaves the store in its
	// failed phase and the page offers a retry.
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := synchronizer.Load(loadCtx); err != nil {
		logger.Error("Initial product load failed", err, nil)
	}
	cancel()

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	handlers, err := web.NewHandlers(
		api,
		store,
		synchronizer,
		editor.NewController(store, api),
		forms.NewController(store, api),
		sessions,
		orders.NewCache(),
	)
	if err != nil {
		logger.Error("Failed to build console handlers", err, nil)
		os.Exit(1)
	}

	router := gin.Default()
	router.RedirectTrailingSlash = false
	handlers.RegisterRoutes(router)

	logger.Info("Admin Console running on port " + cfg.Server.Port)
	logger.Info("Talking to storefront at " + cfg.StorefrontURL)
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Error("Failed to run Admin Console server", err, nil)
	}
}
