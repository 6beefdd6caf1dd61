package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	rzputils "github.com/razorpay/razorpay-go/utils"
)

// Gateway is the payment trust boundary. The core never inspects payment
// internals: it creates an order up front and later accepts a positive
// signature verification as the sole trigger for payment confirmation.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// RazorpayGateway implements Gateway against the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
	secret string
}

// NewRazorpayGateway constructs the production gateway.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}
}

// CreateOrder creates a gateway order for amount in the currency's minor unit
// and returns the order id the client checkout needs.
func (g *RazorpayGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create failed: %w", err)
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return orderID, nil
}

// VerifySignature checks the checkout callback signature over
// order_id|payment_id against the key secret.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	}
	return rzputils.VerifyPaymentSignature(params, signature, g.secret)
}
