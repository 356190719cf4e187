package catalog

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timokluser-dev/apple-pay-demo/internal/services/checkout/types"
)

func testService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCart_BaseItems(t *testing.T) {
	cart, err := testService().Cart("")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "iPhone 14 Pro", cart.Items[0].Name)
	assert.Equal(t, "AirPods Pro (2. Generation)", cart.Items[1].Name)
	assert.Equal(t, 1438.00, cart.Total)

	for _, item := range cart.Items {
		assert.NotZero(t, item.ID, "base cart must not contain a shipping line")
	}
}

func TestCart_WithFreeShipping(t *testing.T) {
	cart, err := testService().Cart("free-shipping")
	require.NoError(t, err)

	require.Len(t, cart.Items, 3)
	assert.Equal(t, int64(0), cart.Items[2].ID)
	assert.Equal(t, "Free shipping", cart.Items[2].Name)
	assert.Equal(t, 0.0, cart.Items[2].Price)
	assert.Equal(t, 1438.00, cart.Total)
}

func TestCart_WithExpressShipping(t *testing.T) {
	cart, err := testService().Cart("express-shipping")
	require.NoError(t, err)

	require.Len(t, cart.Items, 3)
	assert.Equal(t, "Express shipping", cart.Items[2].Name)
	assert.Equal(t, 1448.00, cart.Total)
}

func TestCart_UnknownShippingOption(t *testing.T) {
	cart, err := testService().Cart("overnight-shipping")
	assert.Nil(t, cart)
	assert.ErrorIs(t, err, ErrInvalidShippingOption)
}

func TestShippingOption(t *testing.T) {
	service := testService()

	option, err := service.ShippingOption("express-shipping")
	require.NoError(t, err)
	assert.Equal(t, "Express shipping", option.Label)
	assert.Equal(t, 10.0, option.Price)

	_, err = service.ShippingOption("overnight-shipping")
	assert.ErrorIs(t, err, ErrInvalidShippingOption)
}

func TestAvailableShippingOptions(t *testing.T) {
	service := testService()

	country := "CH"
	city := "Zürich"
	addresses := []*types.ShippingAddress{
		nil,
		{},
		{Country: &country, City: &city},
	}

	for _, address := range addresses {
		options := service.AvailableShippingOptions(address)
		require.Len(t, options, 2)
		assert.Equal(t, "free-shipping", options[0].ID)
		assert.Equal(t, "express-shipping", options[1].ID)
	}
}
