package api

import (
	"context"
	"fmt"
)

// TodayQuestions fetches today's question set. The already_completed flag
// tells the caller whether to collect answers or show a summary.
func (c *Client) TodayQuestions(ctx context.Context) (*DailySet, error) {
	var set DailySet
	if err := c.get(ctx, "/daily-questions/today", &set, "Could not load today's questions"); err != nil {
		return nil, err
	}
	return &set, nil
}

// SubmitAnswers submits the full answer set, keyed by question id with the
// selected option label as value. Scoring happens server-side.
func (c *Client) SubmitAnswers(ctx context.Context, answers map[string]string) (*ScoreResult, error) {
	body := map[string]interface{}{"answers": answers}
	var result ScoreResult
	if err := c.post(ctx, "/daily-questions/submit", body, &result, "Submission failed"); err != nil {
		return nil, err
	}
	return &result, nil
}

// History fetches past daily scores, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	path := fmt.Sprintf("/daily-questions/history?limit=%d", limit)
	if err := c.get(ctx, path, &entries, "Could not load score history"); err != nil {
		return nil, err
	}
	return entries, nil
}
