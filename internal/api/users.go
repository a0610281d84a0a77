package api

import "context"

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/users/me", &profile, "Could not load profile"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfileUpdate carries the editable profile fields. Nil pointers are
// omitted so the backend only touches the fields that were set.
type ProfileUpdate struct {
	Age        *int     `json:"age,omitempty"`
	Gender     *string  `json:"gender,omitempty"`
	HeightCm   *float64 `json:"height_cm,omitempty"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	Genotype   *string  `json:"genotype,omitempty"`
	BloodGroup *string  `json:"blood_group,omitempty"`
	Location   *string  `json:"location,omitempty"`
}

// UpdateProfile patches the current user's profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.patch(ctx, "/users/me", update, &profile, "Could not update profile"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// MyStats fetches the gamification summary (points, streak, premium).
func (c *Client) MyStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.get(ctx, "/gamification/me/stats", &stats, "Could not load stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Leaderboard fetches the top users ranked by points.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	if err := c.get(ctx, "/gamification/leaderboard", &entries, "Could not load leaderboard"); err != nil {
		return nil, err
	}
	return entries, nil
}
