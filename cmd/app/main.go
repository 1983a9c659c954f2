package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prompt-template-store/internal/catalog"
	"prompt-template-store/internal/config"
	pg "prompt-template-store/internal/infra/db/postgres"
	"prompt-template-store/internal/infra/logging"
	"prompt-template-store/internal/infra/metrics"
	stripeAdapter "prompt-template-store/internal/infra/payment"
	red "prompt-template-store/internal/infra/redis"
	"prompt-template-store/internal/infra/web"
	"prompt-template-store/internal/render"
	"prompt-template-store/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Catalog ----
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	lockCache := red.NewEntitlementCache(redisClient, cfg.Redis.TTL, logger)

	// ---- Repositories ----
	paymentRepo := pg.NewPaymentRepo(pool)
	eventRepo := pg.NewWebhookEventRepo(pool)
	grantRepo := pg.NewGrantRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Stripe ----
	gateway, err := stripeAdapter.NewStripeGateway(cfg.Stripe.SecretKey)
	if err != nil {
		log.Fatalf("stripe gateway: %v", err)
	}
	verifier := stripeAdapter.NewWebhookParser(cfg.Stripe.WebhookSecret)

	// ---- Use cases ----
	gate := usecase.NewEntitlementUseCase(cat, grantRepo, subRepo, lockCache, nil, logger)
	checkoutUC := usecase.NewCheckoutUseCase(cat, paymentRepo, grantRepo, subRepo, gateway, logger)
	webhookUC := usecase.NewWebhookUseCase(paymentRepo, eventRepo, grantRepo, subRepo, txManager, gate, logger)

	// ---- HTTP server ----
	estimator := render.NewTokenEstimator()
	srv := web.NewServer(cat, estimator, gate, checkoutUC, webhookUC, verifier,
		cfg.Stripe, cfg.Auth.JWTSecret, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
	cancel()
}
