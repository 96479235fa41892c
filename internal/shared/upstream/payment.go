package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// PaymentClient wraps the payment service REST API.
type PaymentClient struct {
	*caller
}

// PaymentRequest is the payload for POST /payments. The method travels as a
// query parameter, matching the service contract.
type PaymentRequest struct {
	BookingID int64   `json:"bookingId"`
	Amount    float64 `json:"amount"`
}

// CreateAndProcess submits a payment and returns the recorded row.
func (c *PaymentClient) CreateAndProcess(ctx context.Context, req PaymentRequest, method string) (*Payment, error) {
	query := url.Values{}
	query.Set("paymentMethod", method)

	var payment Payment
	if err := c.post(ctx, "/payments", query, req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *PaymentClient) ByUser(ctx context.Context, userID int64) ([]Payment, error) {
	var payments []Payment
	if err := c.get(ctx, fmt.Sprintf("/payments/user/%d", userID), nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *PaymentClient) ByBooking(ctx context.Context, bookingID int64) ([]Payment, error) {
	var payments []Payment
	if err := c.get(ctx, fmt.Sprintf("/payments/booking/%d", bookingID), nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// All returns every payment row. Admin views only.
func (c *PaymentClient) All(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := c.get(ctx, "/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
