// Package catalog is the mocked storefront catalog and shipping service.
// Carts and shipping options are derived fresh on every call; nothing is
// cached between requests.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/types"
)

var ErrInvalidShippingOption = errors.New("shipping option is invalid")

type Service struct {
	logger          *slog.Logger
	shippingOptions []types.ShippingOption
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
		shippingOptions: []types.ShippingOption{
			{
				ID:     "free-shipping",
				Label:  "Free shipping",
				Detail: "Arrives in 5 to 7 days",
				Price:  0,
			},
			{
				ID:     "express-shipping",
				Label:  "Express shipping",
				Detail: "Arrives in 1 to 3 days",
				Price:  10,
			},
		},
	}
}

// ShippingOption resolves a shipping option identifier against the known
// options.
func (s *Service) ShippingOption(id string) (*types.ShippingOption, error) {
	s.logger.Info("get shipping option", "id", id)

	for _, option := range s.shippingOptions {
		if option.ID == id {
			return &option, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidShippingOption, id)
}

// Cart returns the current cart. A non-empty shippingOptionID appends the
// resolved option as a synthetic line item (ID 0) before summing the total.
func (s *Service) Cart(shippingOptionID string) (*types.Cart, error) {
	items := []types.CartItem{
		{ID: 1, Name: "iPhone 14 Pro", Price: 1179.00},
		{ID: 2, Name: "AirPods Pro (2. Generation)", Price: 259.00},
	}

	if shippingOptionID != "" {
		s.logger.Info("get cart with shipping")

		option, err := s.ShippingOption(shippingOptionID)
		if err != nil {
			return nil, err
		}
		items = append(items, types.CartItem{ID: 0, Name: option.Label, Price: option.Price})
	} else {
		s.logger.Info("get cart")
	}

	var total float64
	for _, item := range items {
		total += item.Price
	}

	return &types.Cart{Items: items, Total: total}, nil
}

// AvailableShippingOptions returns the options for the given address. The
// mock ignores the address; a real catalog would filter by region and weight.
// Never returns an empty list.
func (s *Service) AvailableShippingOptions(address *types.ShippingAddress) []types.ShippingOption {
	s.logger.Info("get shipping options for address", "address", address)

	options := make([]types.ShippingOption, len(s.shippingOptions))
	copy(options, s.shippingOptions)
	return options
}
