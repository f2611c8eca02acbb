// Package server boots the API: config, logging, MongoDB, storage,
// seeding, the middleware chain, and the HTTP listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vendora/vendora/app/controllers"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/app/routes"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/config"
	"github.com/vendora/vendora/database/seeders"
	"github.com/vendora/vendora/pkg/database"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/metrics"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/reqid"
	"github.com/vendora/vendora/pkg/router"
	"github.com/vendora/vendora/pkg/storage"
)

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	// Optional: fan log records out to MongoDB next to stdout.
	if uri := config.LogMongoURI(); uri != "" {
		mh, err := logger.NewMongoHandler(uri, config.LogMongoDB())
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			defer mh.Close()
			logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
		}
	}

	ctx := context.Background()

	db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Error("database close failed", "error", err)
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := seeders.RunAll(ctx, db); err != nil {
		return err
	}

	uploader, err := storage.New()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildHandler(db, uploader),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// BuildHandler wires repositories, services, controllers and the global
// middleware chain into one http.Handler.
func BuildHandler(db *database.DB, uploader storage.Uploader) http.Handler {
	users := repositories.New[models.User](db.Users())
	vendors := repositories.New[models.Vendor](db.Vendors())
	categories := repositories.New[models.Category](db.Categories())
	blogs := repositories.New[models.Blog](db.Blogs())
	products := repositories.NewProductRepository(db.Products())

	authSvc := services.NewAuthService(users)
	vendorSvc := services.NewVendorService(vendors)
	categorySvc := services.NewCategoryService(categories)
	productSvc := services.NewProductService(products, categories)
	blogSvc := services.NewBlogService(blogs)

	r := router.New()

	// Global middleware stack (outermost to innermost):
	// metrics first for accurate total latency, recovery before logging
	// so recovered requests still get a log line, request id before the
	// logger so every line carries it.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r, routes.Controllers{
		Auth:       controllers.NewAuthController(authSvc),
		Vendors:    controllers.NewVendorController(vendorSvc, uploader),
		Products:   controllers.NewProductController(productSvc, vendorSvc, uploader),
		Categories: controllers.NewCategoryController(categorySvc),
		Blogs:      controllers.NewBlogController(blogSvc, uploader),
	})

	// With local storage the API serves the uploaded files itself.
	if config.StorageDriver() == "local" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
		r.Get("/storage/*", "storage.files", fs.ServeHTTP)
	}

	return r.Handler()
}
