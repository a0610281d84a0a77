package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAPIURLPrecedence(t *testing.T) {
	t.Setenv("HEALTHPULSE_API", "")

	var nilCfg *Config
	assert.Equal(t, "http://localhost:8000", nilCfg.ResolveAPIURL("http://localhost:8000"))

	cfg := &Config{APIURL: "https://api.example.com/"}
	assert.Equal(t, "https://api.example.com", cfg.ResolveAPIURL("http://localhost:8000"))

	t.Setenv("HEALTHPULSE_API", "https://staging.example.com/")
	assert.Equal(t, "https://staging.example.com", cfg.ResolveAPIURL("http://localhost:8000"))
}
