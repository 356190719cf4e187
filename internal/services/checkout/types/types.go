package types

type CartItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

type ShippingOption struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Detail string  `json:"detail"`
	Price  float64 `json:"price"`
}

// ShippingAddress is the partial address surfaced by the payment sheet during
// address selection. Browsers redact most fields until the shopper commits,
// so every field is optional.
type ShippingAddress struct {
	Country     *string  `json:"country,omitempty"`
	AddressLine []string `json:"addressLine,omitempty"`
	Region      *string  `json:"region,omitempty"`
	City        *string  `json:"city,omitempty"`
	PostalCode  *string  `json:"postalCode,omitempty"`
	Recipient   *string  `json:"recipient,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
}

// PaymentMethodEvent carries everything the payment sheet hands over when the
// shopper confirms: the tokenized payment method plus the collected contact
// and shipping details.
type PaymentMethodEvent struct {
	PaymentMethodID string           `json:"paymentMethodId" validate:"required"`
	PayerName       string           `json:"payerName,omitempty"`
	PayerEmail      string           `json:"payerEmail,omitempty"`
	PayerPhone      string           `json:"payerPhone,omitempty"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	ShippingOption  *ShippingOption  `json:"shippingOption,omitempty"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
}

type CheckoutResponse struct {
	Status   string `json:"status"`
	Redirect string `json:"redirect,omitempty"`
}
