// Package providers holds the payment-provider boundary of the checkout flow.
package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

// CardConfirmer finalizes a payment intent with the shopper's payment method.
type CardConfirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethodID string) (*stripe.PaymentIntent, error)
}

// CapabilityChecker reports whether the native payment sheet can be presented
// on the current platform.
type CapabilityChecker interface {
	CanMakePayment(ctx context.Context) (bool, error)
}

type StripeProvider struct {
	publishableKey string
}

func NewStripeProvider(publishableKey, secretKey string) *StripeProvider {
	if publishableKey == "" || secretKey == "" {
		panic("publishableKey and secretKey required for StripeProvider")
	}
	stripe.Key = secretKey

	return &StripeProvider{
		publishableKey: publishableKey,
	}
}

// ConfirmCardPayment confirms the intent identified by clientSecret with the
// given payment method. Additional-authentication flows are not supported: an
// intent that still requires action after confirmation counts as failed.
func (p *StripeProvider) ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethodID string) (*stripe.PaymentIntent, error) {
	intentID, _, found := strings.Cut(clientSecret, "_secret")
	if !found || intentID == "" {
		return nil, errors.New("malformed client secret")
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx

	intent, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("confirming card payment: %w", err)
	}
	if intent.Status == stripe.PaymentIntentStatusRequiresAction {
		return nil, fmt.Errorf("confirming card payment: additional authentication required")
	}

	return intent, nil
}

// CanMakePayment reports whether the sheet can be requested at all. The sheet
// itself is presented by the browser; server-side we can only verify the
// client is configured to ask for it.
func (p *StripeProvider) CanMakePayment(ctx context.Context) (bool, error) {
	return p.publishableKey != "", nil
}
