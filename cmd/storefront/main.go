package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"abinexis-storefront/internal/address"
	"abinexis-storefront/internal/api"
	"abinexis-storefront/internal/cart"
	"abinexis-storefront/internal/config"
	"abinexis-storefront/internal/logger"
	"abinexis-storefront/internal/order"
	"abinexis-storefront/internal/pricing"
	"abinexis-storefront/internal/refresh"
	"abinexis-storefront/internal/session"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	sess := session.New()
	client, err := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, sess)
	if err != nil {
		log.Fatalf("Failed to build API client: %v", err)
	}

	cartSvc := cart.NewService(client, pricing.NoDiscount{})
	addressSvc := address.NewService(client)
	orderSvc := order.NewService(client)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	email := os.Getenv("STORE_EMAIL")
	password := os.Getenv("STORE_PASSWORD")
	if email != "" && password != "" {
		if err := client.Login(ctx, api.LoginRequest{Email: email, Password: password}); err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		logger.L().Info("logged in", zap.String("user_id", sess.UserID()))

		if err := addressSvc.Load(ctx); err != nil {
			logger.L().Warn("failed to load addresses", zap.Error(err))
		}

		if _, err := cartSvc.Load(ctx); err != nil {
			logger.L().Warn("failed to load cart", zap.Error(err))
		} else {
			summary := cartSvc.Summary()
			fmt.Printf("Cart: %d items, subtotal %.2f, shipping %.2f, total %.2f\n",
				len(cartSvc.Items()), summary.Subtotal, summary.ShippingCost, summary.Total)
		}

		if orders, err := orderSvc.List(ctx); err == nil {
			fmt.Printf("Orders: %d\n", len(orders))
		}
	}

	coordinator := refresh.NewCoordinator(cfg.PollInterval)
	coordinator.Subscribe("cart", func(ctx context.Context) {
		if _, err := cartSvc.Load(ctx); err != nil {
			logger.FromCtx(ctx).Warn("cart refresh failed", zap.Error(err))
		}
	})
	coordinator.Start(ctx)
	defer coordinator.Stop()

	logger.L().Info("storefront client running", zap.String("api", cfg.APIBaseURL))
	<-ctx.Done()
}
