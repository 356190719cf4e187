// Package handler exposes the checkout flow to the storefront front-end.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/catalog"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/gateway"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/providers"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/sheet"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/types"
)

// routePaths maps storefront route names to front-end paths.
var routePaths = map[string]string{
	"cart":                 "/cart",
	checkout.RouteThankYou: "/thank-you",
}

// recordingNavigator captures the route a successful checkout navigates to so
// the handler can send it back as a redirect.
type recordingNavigator struct {
	path string
}

func (n *recordingNavigator) Navigate(route string) error {
	path, ok := routePaths[route]
	if !ok {
		return fmt.Errorf("unknown route: %s", route)
	}
	n.path = path
	return nil
}

type handler struct {
	catalog    *catalog.Service
	gateway    checkout.IntentCreator
	controller *sheet.Controller
	confirmer  providers.CardConfirmer
	validate   *validator.Validate
	logger     *slog.Logger
}

func NewHandler(catalogService *catalog.Service, gateway checkout.IntentCreator, controller *sheet.Controller, confirmer providers.CardConfirmer, logger *slog.Logger) *handler {
	return &handler{
		catalog:    catalogService,
		gateway:    gateway,
		controller: controller,
		confirmer:  confirmer,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (h *handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/cart", h.GetCart)
	r.Post("/shipping-options", h.GetShippingOptions)
	r.Post("/payment-intent", h.CreatePaymentIntent)
	r.Post("/payment-request", h.CreatePaymentRequest)
	r.Post("/payment-request/shipping-address", h.ShippingAddressChange)
	r.Post("/payment-request/shipping-option", h.ShippingOptionChange)
	r.Post("/checkout", h.Checkout)
	return r
}

func (h *handler) GetCart(w http.ResponseWriter, r *http.Request) {
	slog.Info("running GetCart")

	cart, err := h.catalog.Cart(r.URL.Query().Get("shipping_option"))
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidShippingOption) {
			http.Error(w, "Invalid shipping option", http.StatusBadRequest)
			return
		}
		slog.Error("failed to load cart", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, cart)
}

func (h *handler) GetShippingOptions(w http.ResponseWriter, r *http.Request) {
	slog.Info("running GetShippingOptions")

	var address types.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.catalog.AvailableShippingOptions(&address))
}

func (h *handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	slog.Info("running CreatePaymentIntent")

	event, ok := h.decodeMethodEvent(w, r)
	if !ok {
		return
	}

	intent, err := h.gateway.CreatePaymentIntent(r.Context(), event)
	if err != nil {
		if errors.Is(err, gateway.ErrNoShippingOption) || errors.Is(err, catalog.ErrInvalidShippingOption) {
			http.Error(w, "No valid shipping option selected", http.StatusBadRequest)
			return
		}
		slog.Error("failed to create payment intent", "error", err)
		http.Error(w, "Failed to create payment intent", http.StatusInternalServerError)
		return
	}

	writeJSON(w, types.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	})
}

func (h *handler) CreatePaymentRequest(w http.ResponseWriter, r *http.Request) {
	slog.Info("running CreatePaymentRequest")

	cart, err := h.catalog.Cart("")
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.controller.CreatePaymentRequest(cart))
}

func (h *handler) ShippingAddressChange(w http.ResponseWriter, r *http.Request) {
	slog.Info("running ShippingAddressChange")

	var address types.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	request, ok := h.newSheetRequest(w)
	if !ok {
		return
	}
	update, err := h.controller.HandleAddressChange(request, &address)
	if err != nil {
		slog.Error("failed to handle address change", "error", err)
		http.Error(w, "Failed to update shipping", http.StatusInternalServerError)
		return
	}

	writeJSON(w, update)
}

func (h *handler) ShippingOptionChange(w http.ResponseWriter, r *http.Request) {
	slog.Info("running ShippingOptionChange")

	var option sheet.Option
	if err := json.NewDecoder(r.Body).Decode(&option); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	request, ok := h.newSheetRequest(w)
	if !ok {
		return
	}
	update, err := h.controller.HandleShippingOptionChange(request, option)
	if err != nil {
		slog.Error("failed to handle shipping option change", "error", err)
		http.Error(w, "Failed to update shipping", http.StatusInternalServerError)
		return
	}

	writeJSON(w, update)
}

func (h *handler) Checkout(w http.ResponseWriter, r *http.Request) {
	slog.Info("running Checkout")

	event, ok := h.decodeMethodEvent(w, r)
	if !ok {
		return
	}

	nav := &recordingNavigator{}
	attempt := checkout.NewAttempt(h.gateway, h.confirmer, nav, h.logger)
	sheetHandle := &sheet.Request{}

	if err := attempt.Process(r.Context(), event, sheetHandle); err != nil {
		if errors.Is(err, checkout.ErrNoShippingOption) {
			http.Error(w, "No shipping option selected", http.StatusBadRequest)
			return
		}
		if sheetHandle.Completion() == sheet.CompletionFail {
			slog.Error("checkout failed", "error", err)
			writeJSON(w, types.CheckoutResponse{Status: string(sheet.CompletionFail)})
			return
		}
		slog.Error("checkout aborted", "error", err)
		http.Error(w, "Failed to create payment intent", http.StatusInternalServerError)
		return
	}

	writeJSON(w, types.CheckoutResponse{
		Status:   string(sheet.CompletionSuccess),
		Redirect: nav.path,
	})
}

func (h *handler) decodeMethodEvent(w http.ResponseWriter, r *http.Request) (*types.PaymentMethodEvent, bool) {
	var event types.PaymentMethodEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}
	if err := h.validate.Struct(&event); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return nil, false
	}
	return &event, true
}

func (h *handler) newSheetRequest(w http.ResponseWriter) (*sheet.Request, bool) {
	cart, err := h.catalog.Cart("")
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return nil, false
	}
	return h.controller.CreatePaymentRequest(cart), true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
