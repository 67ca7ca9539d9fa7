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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront-admin/internal/config"
	"github.com/Skotchmaster/storefront-admin/internal/es"
	"github.com/Skotchmaster/storefront-admin/internal/handlers"
	"github.com/Skotchmaster/storefront-admin/internal/imagestore"
	"github.com/Skotchmaster/storefront-admin/internal/logging"
	authmw "github.com/Skotchmaster/storefront-admin/internal/middleware/auth"
	"github.com/Skotchmaster/storefront-admin/internal/middleware/loggingmw"
	"github.com/Skotchmaster/storefront-admin/internal/mykafka"
	"github.com/Skotchmaster/storefront-admin/internal/service/token"
	httpserver "github.com/Skotchmaster/storefront-admin/internal/transport/http"
)

const productIndex = "product"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if err := config.EnsureSuperAdmin(db, configuration); err != nil {
		log.Fatal(err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{configuration.CLIENT_ORIGIN},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	var images *imagestore.Client
	if configuration.S3_ENDPOINT != "" {
		images, err = imagestore.New(context.Background(), imagestore.Config{
			Endpoint:      configuration.S3_ENDPOINT,
			Region:        configuration.S3_REGION,
			AccessKey:     configuration.S3_ACCESS_KEY,
			SecretKey:     configuration.S3_SECRET_KEY,
			Bucket:        configuration.S3_BUCKET,
			PublicBaseURL: configuration.S3_PUBLIC_URL,
		})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("S3_ENDPOINT not set, image uploads disabled")
	}

	searchHandler := &handlers.SearchHandler{Index: productIndex}
	productHandler := &handlers.ProductHandler{DB: db, Producer: prod, Images: images, Index: productIndex}
	if configuration.ES_URL != "" {
		esc, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler.ES = esc
		productHandler.ES = esc
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	tokens := &token.Service{DB: db, JWTSecret: jwtSecret}

	deps := httpserver.Deps{
		DB:              db,
		AuthHandler:     &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: prod, SecureCookies: configuration.IsProduction()},
		ProductHandler:  productHandler,
		CouponHandler:   &handlers.CouponHandler{DB: db},
		SettingsHandler: &handlers.SettingsHandler{DB: db, Images: images},
		SearchHandler:   searchHandler,
		Auth:            &authmw.Middleware{JWTSecret: jwtSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
