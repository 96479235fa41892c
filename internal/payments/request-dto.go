package payments

// PayRequest charges an amount toward a booking's remaining balance.
type PayRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,oneof=CREDIT_CARD PAYPAL STRIPE"`
}
