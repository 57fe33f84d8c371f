package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/growthnest/mindset-service/internal/account"
	"github.com/growthnest/mindset-service/internal/auth"
	"github.com/growthnest/mindset-service/internal/config"
	"github.com/growthnest/mindset-service/internal/httpapi"
	"github.com/growthnest/mindset-service/internal/logging"
	"github.com/growthnest/mindset-service/internal/mindset"
	"github.com/growthnest/mindset-service/internal/server"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("mindset-service")

	var (
		profileRepo mindset.Repository
		accountRepo account.Repository
	)

	switch cfg.DataStore {
	case "memory":
		profileRepo = mindset.NewMemoryRepository()
		accountRepo = account.NewMemoryRepository()
	default:
		if cfg.Firestore.EmulatorHost != "" {
			logger.Info("using firestore emulator", "host", cfg.Firestore.EmulatorHost)
		}
		client, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			panic(fmt.Errorf("firestore client: %w", err))
		}
		defer client.Close()
		profileRepo = mindset.NewFirestoreRepository(client)
		accountRepo = account.NewFirestoreRepository(client)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		panic(fmt.Errorf("token service: %w", err))
	}
	passwords := auth.NewPasswordService()

	mindsetService := mindset.NewService(profileRepo)
	gateway := account.NewGateway(accountRepo, tokens, passwords, mindsetService, logger)

	router := server.NewRouter("mindset-service", func(r chi.Router) {
		httpapi.RegisterRoutes(r, gateway, mindsetService, tokens, logger)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
