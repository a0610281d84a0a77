package api

import "context"

// InitiatePayment starts a premium upgrade transaction and returns the
// checkout URL plus the reference used to verify it afterwards.
func (c *Client) InitiatePayment(ctx context.Context, amount float64) (*PaymentInit, error) {
	body := map[string]float64{"amount": amount}
	var init PaymentInit
	if err := c.post(ctx, "/payments/initiate", body, &init, "Could not start payment"); err != nil {
		return nil, err
	}
	return &init, nil
}

// VerifyPayment checks a transaction by reference and reports whether
// premium was activated.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*PaymentResult, error) {
	body := map[string]string{"reference": reference}
	var result PaymentResult
	if err := c.post(ctx, "/payments/verify", body, &result, "Payment verification failed"); err != nil {
		return nil, err
	}
	return &result, nil
}
