package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/timokluser-dev/apple-pay-demo/config"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/catalog"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/gateway"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/handler"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/providers"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/sheet"
)

func main() {
	_ = godotenv.Load()

	var cfg config.AppConfig

	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		log.Panic("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	catalogService := catalog.NewService(logger)
	stripeProvider := providers.NewStripeProvider(cfg.Stripe.PublishableKey, cfg.Stripe.SecretKey)
	intentGateway := gateway.NewGateway(catalogService, cfg.Stripe.IntentEndpoint, cfg.Stripe.SecretKey, cfg.Shop.Currency, logger)
	sheetController := sheet.NewController(catalogService, stripeProvider, cfg.Shop.Label, cfg.Shop.Country, cfg.Shop.Currency, logger)
	checkoutHandler := handler.NewHandler(catalogService, intentGateway, sheetController, stripeProvider, logger)

	r := chi.NewRouter()
	r.Mount("/api", checkoutHandler.Routes())
	r.Handle("/*", http.FileServer(http.Dir("./frontend")))

	slog.Info(fmt.Sprintf("Server running on %s", cfg.Http.Addr))

	err = http.ListenAndServe(cfg.Http.Addr, r)
	if err != nil {
		slog.Error("failed to serve server", "error", err)
	}
}
