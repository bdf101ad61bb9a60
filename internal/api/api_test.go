package api

import (
	"net/http"
	"testing"
	"time"

	"courier/internal/auth"
	"courier/internal/config"
	"courier/internal/database"
	"courier/internal/service"
	"courier/internal/testutil"
)

var testSigningKey = []byte("test_signing_key")

func testTokenService() *auth.TokenService {
	return auth.NewTokenService(testSigningKey, time.Hour)
}

// newTestApp wires a CourierApp over the mock repository. The returned mux
// routes with the real patterns, so path values and per-route auth
// middleware behave as in production.
func newTestApp(t *testing.T, mockRepo *database.MockCourierRepository) (*CourierApp, *http.ServeMux) {
	t.Helper()

	logger := testutil.TestLogger(t)
	tokens := testTokenService()
	cfg := &config.Config{
		ServerAddr:     "localhost:0",
		AllowedOrigins: []string{"http://localhost:5173"},
		TokenTTL:       time.Hour,
	}

	mux := http.NewServeMux()
	app := NewCourierApp(
		mux,
		logger,
		mockRepo,
		service.NewAuthService(logger, mockRepo, tokens),
		service.NewUserService(logger, mockRepo),
		service.NewChatService(logger, mockRepo),
		service.NewMessageService(logger, mockRepo),
		cfg,
	)

	return app, mux
}
