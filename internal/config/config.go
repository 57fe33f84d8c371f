package config

import (
	"fmt"
	"time"

	"github.com/growthnest/mindset-service/internal/envconfig"
)

type Config struct {
	Port         string `validate:"required"`
	GCPProjectID string `validate:"required"`
	DataStore    string `validate:"required,oneof=firestore memory"`
	Auth         AuthConfig
	Firestore    FirestoreConfig
}

type AuthConfig struct {
	JWTSecret string `validate:"required,min=16"`
	TokenTTL  time.Duration
}

type FirestoreConfig struct {
	EmulatorHost string
}

func Load() (Config, error) {
	ttl, err := time.ParseDuration(envconfig.Get("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
	}

	cfg := Config{
		Port:         envconfig.Get("PORT", "8080"),
		GCPProjectID: envconfig.Get("GCP_PROJECT_ID", "growthnest-dev"),
		DataStore:    envconfig.Get("DATASTORE", "firestore"),
		Auth: AuthConfig{
			JWTSecret: envconfig.Get("JWT_SECRET", ""),
			TokenTTL:  ttl,
		},
		Firestore: FirestoreConfig{
			EmulatorHost: envconfig.Get("FIRESTORE_EMULATOR_HOST", ""),
		},
	}
	return cfg, envconfig.Validate(cfg)
}
