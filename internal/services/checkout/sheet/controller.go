package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/providers"
	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/types"
)

// Catalog is the slice of the catalog service the controller depends on.
type Catalog interface {
	Cart(shippingOptionID string) (*types.Cart, error)
	AvailableShippingOptions(address *types.ShippingAddress) []types.ShippingOption
}

// ButtonTarget is the UI slot the rendered payment button mounts into.
type ButtonTarget interface {
	Mount(r *Request) error
}

// Controller builds payment sheet requests and handles the sheet's reactive
// events. Events arrive one at a time; each handler acknowledges the sheet
// before returning, or leaves it pending on failure.
type Controller struct {
	catalog    Catalog
	capability providers.CapabilityChecker
	shopLabel  string
	country    string
	currency   string
	logger     *slog.Logger
}

func NewController(catalog Catalog, capability providers.CapabilityChecker, shopLabel, country, currency string, logger *slog.Logger) *Controller {
	return &Controller{
		catalog:    catalog,
		capability: capability,
		shopLabel:  shopLabel,
		country:    country,
		currency:   currency,
		logger:     logger,
	}
}

// CreatePaymentRequest builds the sheet configuration for the given cart.
// Shipping options start empty; they are populated on the first address
// change.
func (c *Controller) CreatePaymentRequest(cart *types.Cart) *Request {
	return &Request{
		Country:  c.country,
		Currency: c.currency,
		Total: DisplayItem{
			Label:  c.shopLabel,
			Amount: types.PriceToAmount(cart.Total),
		},
		DisplayItems:      displayItems(cart.Items),
		RequestPayerName:  true,
		RequestPayerEmail: true,
		RequestPayerPhone: true,
		RequestShipping:   true,
		ShippingOptions:   []Option{},
	}
}

// HandleAddressChange reacts to the sheet's shippingaddresschange event: it
// fetches the options for the selected address, pre-selects the first one as
// the default and acknowledges the sheet with the refreshed totals.
func (c *Controller) HandleAddressChange(r *Request, address *types.ShippingAddress) (*Update, error) {
	c.logger.Info("get shipping for address", "address", address)
	r.beginEvent()

	cart, err := c.catalog.Cart("")
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	options := c.catalog.AvailableShippingOptions(address)
	if len(options) == 0 {
		return nil, ErrNoShippingOptions
	}

	sheetOptions := make([]Option, 0, len(options))
	for _, option := range options {
		sheetOptions = append(sheetOptions, Option{
			ID:     option.ID,
			Label:  option.Label,
			Detail: option.Detail,
			Amount: types.PriceToAmount(option.Price),
		})
	}

	update := &Update{
		ShippingOptions: sheetOptions,
		Total: DisplayItem{
			Label:  c.shopLabel,
			Amount: types.PriceToAmount(cart.Total + options[0].Price),
		},
		// the first returned option is the pre-selected default
		DisplayItems: append(displayItems(cart.Items), DisplayItem{
			Label:  options[0].Label,
			Amount: types.PriceToAmount(options[0].Price),
		}),
	}

	if err := r.UpdateWith(update); err != nil {
		return nil, err
	}
	return update, nil
}

// HandleShippingOptionChange reacts to the sheet's shippingoptionchange
// event. The option carried by the event is used as-is; the option catalog is
// not fetched again, it was already loaded on the address change.
func (c *Controller) HandleShippingOptionChange(r *Request, option Option) (*Update, error) {
	c.logger.Info("handle shipping costs", "option", option.ID)
	r.beginEvent()

	cart, err := c.catalog.Cart("")
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	update := &Update{
		Total: DisplayItem{
			Label:  c.shopLabel,
			Amount: types.PriceToAmount(cart.Total) + option.Amount,
		},
		DisplayItems: append(displayItems(cart.Items), DisplayItem{
			Label:  option.Label,
			Amount: option.Amount,
		}),
	}

	if err := r.UpdateWith(update); err != nil {
		return nil, err
	}
	return update, nil
}

// SetupPaymentButton verifies the platform can present the payment sheet and
// mounts the rendered payment button into the given slot. Callers are
// expected to catch ErrPaymentMethodUnavailable and hide the button.
func (c *Controller) SetupPaymentButton(ctx context.Context, r *Request, target ButtonTarget) error {
	ok, err := c.capability.CanMakePayment(ctx)
	if err != nil {
		return fmt.Errorf("checking payment capability: %w", err)
	}
	if !ok {
		return ErrPaymentMethodUnavailable
	}

	return target.Mount(r)
}

func displayItems(items []types.CartItem) []DisplayItem {
	display := make([]DisplayItem, 0, len(items))
	for _, item := range items {
		display = append(display, DisplayItem{
			Label:  item.Name,
			Amount: types.PriceToAmount(item.Price),
		})
	}
	return display
}
