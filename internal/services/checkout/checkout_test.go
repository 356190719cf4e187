package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"

	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/sheet"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/types"
)

// fakeGateway implements IntentCreator for testing.
type fakeGateway struct {
	intent *stripe.PaymentIntent
	err    error
	calls  int
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, _ *types.PaymentMethodEvent) (*stripe.PaymentIntent, error) {
	f.calls++
	return f.intent, f.err
}

// fakeConfirmer implements providers.CardConfirmer for testing.
type fakeConfirmer struct {
	intent    *stripe.PaymentIntent
	err       error
	gotSecret string
	gotMethod string
}

func (f *fakeConfirmer) ConfirmCardPayment(_ context.Context, clientSecret, paymentMethodID string) (*stripe.PaymentIntent, error) {
	f.gotSecret = clientSecret
	f.gotMethod = paymentMethodID
	return f.intent, f.err
}

// fakeNavigator implements Navigator for testing.
type fakeNavigator struct {
	routes []string
}

func (f *fakeNavigator) Navigate(route string) error {
	f.routes = append(f.routes, route)
	return nil
}

func methodEvent() *types.PaymentMethodEvent {
	return &types.PaymentMethodEvent{
		PaymentMethodID: "pm_123",
		ShippingOption:  &types.ShippingOption{ID: "free-shipping", Label: "Free shipping"},
	}
}

func newTestAttempt(gateway *fakeGateway, confirmer *fakeConfirmer, navigator *fakeNavigator) *Attempt {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAttempt(gateway, confirmer, navigator, logger)
}

func TestProcess_Success(t *testing.T) {
	gateway := &fakeGateway{intent: &stripe.PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret_456",
		Status:       stripe.PaymentIntentStatusRequiresConfirmation,
	}}
	confirmer := &fakeConfirmer{intent: &stripe.PaymentIntent{
		ID:     "pi_123",
		Status: stripe.PaymentIntentStatusSucceeded,
	}}
	navigator := &fakeNavigator{}
	attempt := newTestAttempt(gateway, confirmer, navigator)

	sheetHandle := &sheet.Request{}
	require.NoError(t, attempt.Process(context.Background(), methodEvent(), sheetHandle))

	assert.Equal(t, StatusSucceeded, attempt.Status())
	assert.Equal(t, sheet.CompletionSuccess, sheetHandle.Completion())
	assert.Equal(t, []string{RouteThankYou}, navigator.routes)

	// confirmation used the intent's client secret and the submitted method
	assert.Equal(t, "pi_123_secret_456", confirmer.gotSecret)
	assert.Equal(t, "pm_123", confirmer.gotMethod)
}

func TestProcess_ConfirmationFails(t *testing.T) {
	gateway := &fakeGateway{intent: &stripe.PaymentIntent{ClientSecret: "pi_123_secret_456"}}
	confirmer := &fakeConfirmer{err: errors.New("card declined")}
	navigator := &fakeNavigator{}
	attempt := newTestAttempt(gateway, confirmer, navigator)

	sheetHandle := &sheet.Request{}
	err := attempt.Process(context.Background(), methodEvent(), sheetHandle)
	require.Error(t, err)

	assert.Equal(t, StatusFailed, attempt.Status())
	assert.Equal(t, sheet.CompletionFail, sheetHandle.Completion())
	assert.Empty(t, navigator.routes, "a failed confirmation must not navigate")
}

func TestProcess_IntentCreationFails(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("processor unreachable")}
	confirmer := &fakeConfirmer{}
	navigator := &fakeNavigator{}
	attempt := newTestAttempt(gateway, confirmer, navigator)

	sheetHandle := &sheet.Request{}
	err := attempt.Process(context.Background(), methodEvent(), sheetHandle)
	require.Error(t, err)

	assert.Equal(t, StatusFailed, attempt.Status())
	// the sheet is deliberately left un-acknowledged
	assert.Empty(t, sheetHandle.Completion())
	assert.Empty(t, navigator.routes)
	assert.Empty(t, confirmer.gotSecret)
}

func TestProcess_NoShippingOption(t *testing.T) {
	gateway := &fakeGateway{}
	attempt := newTestAttempt(gateway, &fakeConfirmer{}, &fakeNavigator{})

	event := methodEvent()
	event.ShippingOption = nil

	sheetHandle := &sheet.Request{}
	err := attempt.Process(context.Background(), event, sheetHandle)
	assert.ErrorIs(t, err, ErrNoShippingOption)

	assert.Zero(t, gateway.calls, "precondition failure must precede any network call")
	assert.Equal(t, StatusSubmitted, attempt.Status())
	assert.Empty(t, sheetHandle.Completion())
}

func TestProcess_SecondCallRejected(t *testing.T) {
	gateway := &fakeGateway{intent: &stripe.PaymentIntent{ClientSecret: "pi_123_secret_456"}}
	confirmer := &fakeConfirmer{intent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded}}
	navigator := &fakeNavigator{}
	attempt := newTestAttempt(gateway, confirmer, navigator)

	require.NoError(t, attempt.Process(context.Background(), methodEvent(), &sheet.Request{}))

	err := attempt.Process(context.Background(), methodEvent(), &sheet.Request{})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// no second intent, no second navigation
	assert.Equal(t, 1, gateway.calls)
	assert.Len(t, navigator.routes, 1)
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusSubmitted, StatusIntentRequested, true},
		{StatusSubmitted, StatusFailed, true},
		{StatusSubmitted, StatusSucceeded, false},
		{StatusIntentRequested, StatusConfirming, true},
		{StatusIntentRequested, StatusFailed, true},
		{StatusIntentRequested, StatusSucceeded, false},
		{StatusConfirming, StatusSucceeded, true},
		{StatusConfirming, StatusFailed, true},
		{StatusConfirming, StatusSubmitted, false},
		{StatusSucceeded, StatusFailed, false},
		{StatusFailed, StatusSubmitted, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, CanTransitionTo(c.from, c.to), "%s -> %s", c.from, c.to)
	}

	assert.False(t, StatusSubmitted.IsTerminal())
	assert.False(t, StatusConfirming.IsTerminal())
	assert.True(t, StatusSucceeded.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}
