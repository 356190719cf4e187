// Package checkout drives a single checkout attempt from sheet submission to
// a terminal outcome.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v84"

	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/providers"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/sheet"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/types"
)

var (
	ErrNoShippingOption  = errors.New("no shipping option selected")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
)

// RouteThankYou is the storefront route shown after a successful payment.
const RouteThankYou = "thank-you"

// IntentCreator requests a payment intent from the processor.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, event *types.PaymentMethodEvent) (*stripe.PaymentIntent, error)
}

// Navigator moves the storefront to a named route after checkout.
type Navigator interface {
	Navigate(route string) error
}

// Completer is the slice of the payment sheet an attempt reports back to.
type Completer interface {
	Complete(status sheet.CompletionStatus) error
}

// Attempt is the state machine over a single checkout attempt. One attempt
// per sheet submission; a failed attempt is never retried, the shopper has to
// open a fresh sheet.
type Attempt struct {
	gateway   IntentCreator
	confirmer providers.CardConfirmer
	navigator Navigator
	logger    *slog.Logger

	status Status
}

func NewAttempt(gateway IntentCreator, confirmer providers.CardConfirmer, navigator Navigator, logger *slog.Logger) *Attempt {
	return &Attempt{
		gateway:   gateway,
		confirmer: confirmer,
		navigator: navigator,
		logger:    logger,
		status:    StatusSubmitted,
	}
}

func (a *Attempt) Status() Status {
	return a.status
}

func (a *Attempt) transition(to Status) error {
	if !CanTransitionTo(a.status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.status, to)
	}
	a.status = to
	return nil
}

// Process runs the attempt for a submitted payment method event. The sheet is
// acknowledged on every confirmation outcome; an intent-creation failure
// leaves it un-acknowledged so the browser keeps showing the pending state.
func (a *Attempt) Process(ctx context.Context, event *types.PaymentMethodEvent, s Completer) error {
	if a.status != StatusSubmitted {
		return fmt.Errorf("%w: attempt already processed", ErrIllegalTransition)
	}

	// fatal precondition, checked before any network call
	if event.ShippingOption == nil {
		return ErrNoShippingOption
	}

	if err := a.transition(StatusIntentRequested); err != nil {
		return err
	}
	intent, err := a.gateway.CreatePaymentIntent(ctx, event)
	if err != nil {
		a.status = StatusFailed
		return fmt.Errorf("creating payment intent: %w", err)
	}

	if err := a.transition(StatusConfirming); err != nil {
		return err
	}
	confirmed, err := a.confirmer.ConfirmCardPayment(ctx, intent.ClientSecret, event.PaymentMethodID)
	if err != nil {
		a.logger.Error("payment could not be confirmed", "error", err)
		if completeErr := s.Complete(sheet.CompletionFail); completeErr != nil {
			a.logger.Error("failed to report failure to payment sheet", "error", completeErr)
		}
		a.status = StatusFailed
		return fmt.Errorf("confirming card payment: %w", err)
	}

	if err := s.Complete(sheet.CompletionSuccess); err != nil {
		a.status = StatusFailed
		return fmt.Errorf("completing payment sheet: %w", err)
	}
	if err := a.transition(StatusSucceeded); err != nil {
		return err
	}

	a.logger.Info("thank you for your payment", "intent", confirmed.ID, "status", confirmed.Status)

	return a.navigator.Navigate(RouteThankYou)
}
