package api

import (
	"context"
	"fmt"
)

// Prediction types understood by the backend's ML service.
const (
	PredictionHypertension = "hypertension"
	PredictionMalaria      = "malaria"
)

// ValidPredictionType reports whether the backend can predict this type.
// Checked client-side so a typo never costs a round trip.
func ValidPredictionType(t string) bool {
	return t == PredictionHypertension || t == PredictionMalaria
}

// Predictions fetches the most recent risk predictions, newest first.
func (c *Client) Predictions(ctx context.Context, limit int) ([]Prediction, error) {
	var preds []Prediction
	path := fmt.Sprintf("/predictions/?limit=%d", limit)
	if err := c.get(ctx, path, &preds, "Could not load predictions"); err != nil {
		return nil, err
	}
	return preds, nil
}

// CreatePrediction asks the backend to run a risk prediction. The result is
// cached server-side, so repeat calls within the cache window are cheap.
func (c *Client) CreatePrediction(ctx context.Context, predictionType string) (*Prediction, error) {
	if !ValidPredictionType(predictionType) {
		return nil, fmt.Errorf("prediction type must be %q or %q", PredictionHypertension, PredictionMalaria)
	}
	body := map[string]string{"prediction_type": predictionType}
	var pred Prediction
	if err := c.post(ctx, "/predictions/", body, &pred, "Prediction failed"); err != nil {
		return nil, err
	}
	return &pred, nil
}
