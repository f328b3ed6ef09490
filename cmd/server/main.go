package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/cart"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/checkout"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/config"
	internalhttp "github.com/fahd-ahsayni/nelly-store-sub000/internal/http"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/i18n"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/storage"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/wishlist"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Catalog backend
	mongoDB, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			log.Printf("failed to disconnect MongoDB: %v", err)
		}
	}()

	catalogStore := catalog.NewStore(catalog.NewMongoRepository(mongoDB), cfg.CatalogTTL, cfg.ImageHosts)

	// Session state backend
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	sessionStorage := storage.NewRedisStore(redisClient)

	carts := cart.NewManager(sessionStorage)
	defer carts.Close()
	wishlists := wishlist.NewManager(sessionStorage)
	defer wishlists.Close()

	// Reservations backend
	pgCred := &checkout.Credentials{
		Host:              cfg.PGHost,
		Port:              cfg.PGPort,
		User:              cfg.PGUser,
		Password:          cfg.PGPassword,
		DBName:            cfg.PGDatabase,
		MigrationsDirPath: cfg.MigrationsDir,
	}
	reservations, err := checkout.NewPostgresRepository(pgCred)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer reservations.Close()

	if err := reservations.RunMigrations(pgCred); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	checkoutService := checkout.NewService(reservations)

	// Localization
	bundle, err := i18n.NewBundle(cfg.DefaultLocale, cfg.SupportedLocales)
	if err != nil {
		log.Fatalf("Failed to load locale bundle: %v", err)
	}
	negotiator := i18n.NewNegotiator(bundle)

	router := internalhttp.NewRouter(internalhttp.Deps{
		Catalog:        catalogStore,
		Carts:          carts,
		Wishlists:      wishlists,
		Checkout:       checkoutService,
		Reservations:   reservations,
		Bundle:         bundle,
		Negotiator:     negotiator,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "nelly-store"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s (env=%s)", cfg.HTTPPort, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
}
