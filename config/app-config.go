// Package config holds the application's configuration settings.
package config

// AppConfig defines environment-based configuration for the application.
type AppConfig struct {
	Http   HttpConfig
	Stripe StripeConfig
	Shop   ShopConfig
}

type HttpConfig struct {
	Addr string `env:"CHECKOUT_HTTP_ADDR" env-default:":8080"`
}

type StripeConfig struct {
	PublishableKey string `env:"STRIPE_API_KEY"`
	SecretKey      string `env:"STRIPE_SECRET_KEY"`
	IntentEndpoint string `env:"STRIPE_INTENT_ENDPOINT" env-default:"https://api.stripe.com/v1/payment_intents"`
}

type ShopConfig struct {
	Label    string `env:"SHOP_LABEL" env-default:"My Shop Name"`
	Country  string `env:"SHOP_COUNTRY" env-default:"CH"`
	Currency string `env:"SHOP_CURRENCY" env-default:"chf"`
}
