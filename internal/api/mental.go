package api

import (
	"context"
	"fmt"
)

// Checkins fetches past mental check-ins, newest first.
func (c *Client) Checkins(ctx context.Context, limit int) ([]MentalCheckin, error) {
	var checkins []MentalCheckin
	path := fmt.Sprintf("/mental/checkins?limit=%d", limit)
	if err := c.get(ctx, path, &checkins, "Could not load check-ins"); err != nil {
		return nil, err
	}
	return checkins, nil
}

// CreateCheckin sends a free-text check-in for sentiment assessment.
func (c *Client) CreateCheckin(ctx context.Context, text string) (*MentalCheckin, error) {
	body := map[string]string{"text_input": text}
	var checkin MentalCheckin
	if err := c.post(ctx, "/mental/checkin", body, &checkin, "Check-in failed"); err != nil {
		return nil, err
	}
	return &checkin, nil
}
