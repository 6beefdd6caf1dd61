package models

// PaymentOrder is returned to the client to drive the gateway checkout.
// Amount is in the currency's minor unit (paise).
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// PaymentProof is the gateway callback payload the client posts back after
// checkout. The signature covers order id and payment id.
type PaymentProof struct {
	SessionID string `json:"session_id" binding:"required"`
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}
