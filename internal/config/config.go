package config

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Env holds the raw COURIER_* environment settings. Flags in cmd/server
// override any of these before NewConfig validates the result.
type Env struct {
	ServerAddr     string   `envconfig:"SERVER_ADDR" default:"localhost:8000"`
	DatabaseDSN    string   `envconfig:"DATABASE_DSN"`
	SigningSecret  string   `envconfig:"SIGNING_SECRET"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
	TokenTTL       int      `envconfig:"TOKEN_TTL" default:"3600"`
}

func FromEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("courier", &env); err != nil {
		return Env{}, fmt.Errorf("process environment: %w", err)
	}
	return env, nil
}

type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	SigningKey     []byte
	AllowedOrigins []string
	TokenTTL       time.Duration
}

func decodeSigningSecret(base64Secret string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("signing secret decodes to an empty key")
	}
	return key, nil
}

func NewConfig(env Env) (*Config, error) {
	if env.ServerAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if env.DatabaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}
	if env.SigningSecret == "" {
		return nil, fmt.Errorf("signing secret cannot be empty")
	}
	if env.TokenTTL <= 0 {
		return nil, fmt.Errorf("token TTL must be positive, got %d", env.TokenTTL)
	}

	signingKey, err := decodeSigningSecret(env.SigningSecret)
	if err != nil {
		return nil, fmt.Errorf("decode signing secret: %w", err)
	}

	return &Config{
		ServerAddr:     env.ServerAddr,
		DatabaseDSN:    env.DatabaseDSN,
		SigningKey:     signingKey,
		AllowedOrigins: env.AllowedOrigins,
		TokenTTL:       time.Duration(env.TokenTTL) * time.Second,
	}, nil
}
