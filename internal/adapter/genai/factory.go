package genai

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "EAZYMYTRIP_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewClient creates a model client based on the EAZYMYTRIP_MODE environment
// variable. If EAZYMYTRIP_MODE=MOCK, returns a MockClient; otherwise returns
// a real HTTPClient.
func NewClient(baseURL, apiKey string, timeout time.Duration) Client {
	if os.Getenv(EnvMode) == ModeMock {
		log.Info().Msg("EAZYMYTRIP_MODE=MOCK detected, using mock model client")
		return NewMockClient()
	}

	return NewHTTPClient(baseURL, apiKey, timeout)
}
