// Package api is the HTTP gateway to the HealthPulse backend. All outbound
// calls go through it so credential attachment and session teardown happen
// in exactly one place.
package api

import "time"

// TokenResponse is returned by login and registration.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	IsPremium   bool   `json:"is_premium"`
}

// Profile is the full user profile from GET /users/me.
type Profile struct {
	ID                    int64           `json:"id"`
	Email                 string          `json:"email"`
	Username              string          `json:"username"`
	Age                   *int            `json:"age"`
	Gender                string          `json:"gender"`
	HeightCm              *float64        `json:"height_cm"`
	WeightKg              *float64        `json:"weight_kg"`
	Genotype              string          `json:"genotype"`
	BloodGroup            string          `json:"blood_group"`
	FamilyHistory         map[string]bool `json:"family_history"`
	PreExistingConditions []string        `json:"pre_existing_conditions"`
	Location              string          `json:"location"`
	IsPremium             bool            `json:"is_premium"`
	StreakDays            int             `json:"streak_days"`
	Points                int             `json:"points"`
	CreatedAt             time.Time       `json:"created_at"`
}

// Option is one selectable answer. Scoring values are server-side only;
// the client sees labels in worst-to-best order.
type Option struct {
	Label string `json:"label"`
}

// Question is one daily assessment question.
type Question struct {
	QuestionID   string   `json:"question_id"`
	Category     string   `json:"category"` // diet, sleep, activity, mental, location
	QuestionText string   `json:"question_text"`
	FeatureKey   string   `json:"feature_key"`
	Options      []Option `json:"options"`
}

// DailySet is today's question set from GET /daily-questions/today.
type DailySet struct {
	Date             string     `json:"date"`
	QuestionSetID    int64      `json:"question_set_id"`
	AlreadyCompleted bool       `json:"already_completed"`
	Questions        []Question `json:"questions"`
}

// ScoreResult is the server-computed outcome of a submission. The client
// never re-scores answers locally.
type ScoreResult struct {
	CompositeScore float64 `json:"composite_score"`
	SleepScore     float64 `json:"sleep_score"`
	DietScore      float64 `json:"diet_score"`
	ActivityScore  float64 `json:"activity_score"`
	MentalScore    float64 `json:"mental_score"`
	LocationScore  float64 `json:"location_score"`
	Badge          string  `json:"badge"`
	Message        string  `json:"message"`
}

// ScoreEntry is one past daily score from GET /daily-questions/history.
// The backend returns entries newest-first.
type ScoreEntry struct {
	Date           string  `json:"date"`
	CompositeScore float64 `json:"composite_score"`
	SleepScore     float64 `json:"sleep_score"`
	DietScore      float64 `json:"diet_score"`
	ActivityScore  float64 `json:"activity_score"`
	MentalScore    float64 `json:"mental_score"`
}

// Prediction is a risk prediction computed by the backend's ML service.
type Prediction struct {
	ID               int64     `json:"id"`
	PredictionType   string    `json:"prediction_type"` // hypertension, malaria
	RiskPercentage   float64   `json:"risk_percentage"`
	RiskLevel        string    `json:"risk_level"`
	Explanation      string    `json:"claude_explanation"`
	PreventionAdvice string    `json:"prevention_advice"`
	CreatedAt        time.Time `json:"created_at"`
}

// MentalCheckin is one free-text mental health check-in with its remote
// sentiment assessment.
type MentalCheckin struct {
	ID                int64     `json:"id"`
	TextInput         string    `json:"text_input"`
	Sentiment         string    `json:"sentiment"`
	EmotionalState    string    `json:"emotional_state"`
	CopingSuggestions string    `json:"coping_suggestions"`
	Response          string    `json:"claude_response"`
	CreatedAt         time.Time `json:"created_at"`
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// Stats is the gamification summary from GET /gamification/me/stats.
type Stats struct {
	Username   string `json:"username"`
	Points     int    `json:"points"`
	StreakDays int    `json:"streak_days"`
	IsPremium  bool   `json:"is_premium"`
}

// PaymentInit is returned by POST /payments/initiate.
type PaymentInit struct {
	Status           string `json:"status"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Message          string `json:"message"`
}

// PaymentResult is returned by POST /payments/verify.
type PaymentResult struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	IsPremium bool   `json:"is_premium"`
}
