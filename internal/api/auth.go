package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. It does not touch the session
// store; the caller decides what to persist.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var resp TokenResponse
	err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &resp, "Login failed")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterParams holds the registration form. Only Email, Username and
// Password are required; ReportPath optionally attaches a medical report file.
type RegisterParams struct {
	Email      string
	Username   string
	Password   string
	Age        int
	Gender     string
	HeightCm   float64
	WeightKg   float64
	Genotype   string
	BloodGroup string
	Location   string

	FamilyHistory         map[string]bool
	PreExistingConditions []string

	ReportPath string
}

// Register creates a new account. The backend expects multipart/form-data so
// the medical report can ride along; the multipart writer assigns the
// boundary and the content type is taken from it verbatim.
func (c *Client) Register(ctx context.Context, params RegisterParams) (*TokenResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"email":    params.Email,
		"username": params.Username,
		"password": params.Password,
	}
	if params.Age > 0 {
		fields["age"] = strconv.Itoa(params.Age)
	}
	if params.Gender != "" {
		fields["gender"] = params.Gender
	}
	if params.HeightCm > 0 {
		fields["height_cm"] = strconv.FormatFloat(params.HeightCm, 'f', -1, 64)
	}
	if params.WeightKg > 0 {
		fields["weight_kg"] = strconv.FormatFloat(params.WeightKg, 'f', -1, 64)
	}
	if params.Genotype != "" {
		fields["genotype"] = params.Genotype
	}
	if params.BloodGroup != "" {
		fields["blood_group"] = params.BloodGroup
	}
	if params.Location != "" {
		fields["location"] = params.Location
	}
	if len(params.FamilyHistory) > 0 {
		data, err := json.Marshal(params.FamilyHistory)
		if err != nil {
			return nil, fmt.Errorf("failed to encode family history: %w", err)
		}
		fields["family_history"] = string(data)
	}
	if len(params.PreExistingConditions) > 0 {
		data, err := json.Marshal(params.PreExistingConditions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode conditions: %w", err)
		}
		fields["pre_existing_conditions"] = string(data)
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if params.ReportPath != "" {
		f, err := os.Open(params.ReportPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open medical report: %w", err)
		}
		defer f.Close()

		part, err := w.CreateFormFile("medical_report", filepath.Base(params.ReportPath))
		if err != nil {
			return nil, fmt.Errorf("failed to attach medical report: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, fmt.Errorf("failed to read medical report: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	var resp TokenResponse
	err := c.doMultipart(ctx, http.MethodPost, "/auth/register", &buf, w.FormDataContentType(), &resp, "Registration failed")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
