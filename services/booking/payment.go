package booking

import (
	"context"
	"fmt"

	"toolshare/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentIntent is the gateway's view of a charge.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
}

const PaymentSucceeded = string(stripe.PaymentIntentStatusSucceeded)

// PaymentGateway creates and inspects payment intents. Amounts are in minor units.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, b *models.Booking, amount int64) (*PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
}

// StripeGateway implements PaymentGateway with Stripe PaymentIntents.
// stripe.Key must be set before use.
type StripeGateway struct {
	Currency string
}

func NewStripeGateway(currency string) *StripeGateway {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{Currency: currency}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, b *models.Booking, amount int64) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(g.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("toolId", b.ToolID)
	params.AddMetadata("renterId", b.RenterID)
	params.SetIdempotencyKey("booking-approve-" + b.ID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent for booking %s: %w", b.ID, err)
	}
	return fromStripe(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to retrieve payment intent %s: %w", intentID, err)
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}
