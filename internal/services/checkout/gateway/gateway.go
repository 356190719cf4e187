// Package gateway creates payment intents against the processor's REST
// endpoint.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/stripe/stripe-go/v84"

	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/types"
)

var ErrNoShippingOption = errors.New("no shipping option selected")

// Catalog is the slice of the catalog service the gateway depends on.
type Catalog interface {
	Cart(shippingOptionID string) (*types.Cart, error)
	ShippingOption(id string) (*types.ShippingOption, error)
}

// Gateway requests payment intents for submitted payment method events. The
// payable amount is always recomputed from the catalog so a tampered sheet
// total never reaches the processor.
type Gateway struct {
	catalog   Catalog
	client    *resty.Client
	endpoint  string
	secretKey string
	currency  string
	logger    *slog.Logger
}

func NewGateway(catalog Catalog, endpoint, secretKey, currency string, logger *slog.Logger) *Gateway {
	if secretKey == "" {
		panic("secretKey required for intent gateway")
	}

	return &Gateway{
		catalog:   catalog,
		client:    resty.New(),
		endpoint:  endpoint,
		secretKey: secretKey,
		currency:  currency,
		logger:    logger,
	}
}

// CreatePaymentIntent issues a single authenticated request to the intent
// creation endpoint. Fire-once: any transport or non-2xx failure aborts the
// attempt, there is no retry.
func (g *Gateway) CreatePaymentIntent(ctx context.Context, event *types.PaymentMethodEvent) (*stripe.PaymentIntent, error) {
	g.logger.Info("create payment intent on server",
		"payer_name", event.PayerName,
		"payer_email", event.PayerEmail,
		"payer_phone", event.PayerPhone,
		"address", formatAddress(event.ShippingAddress),
	)

	if event.ShippingOption == nil {
		return nil, ErrNoShippingOption
	}

	cart, err := g.catalog.Cart("")
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	option, err := g.catalog.ShippingOption(event.ShippingOption.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving shipping option: %w", err)
	}

	amount := types.PriceToAmount(cart.Total) + types.PriceToAmount(option.Price)

	var intent stripe.PaymentIntent
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(g.secretKey).
		SetFormData(map[string]string{
			"amount":   strconv.FormatInt(amount, 10),
			"currency": g.currency,
		}).
		SetResult(&intent).
		Post(g.endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("creating payment intent: %s: %s", resp.Status(), resp.String())
	}

	g.logger.Info("payment intent created", "amount", amount, "currency", g.currency)

	return &intent, nil
}

func formatAddress(address *types.ShippingAddress) string {
	if address == nil {
		return ""
	}

	parts := []string{
		strings.Join(address.AddressLine, ", "),
		deref(address.PostalCode),
		deref(address.City),
		deref(address.Country),
	}
	return strings.Join(parts, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
