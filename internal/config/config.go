package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	Port        int    `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Generative completion API (OpenAI-compatible)
	OpenAIKey     string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ChatModel     string `env:"CHAT_MODEL" envDefault:"gpt-3.5-turbo"`

	// Bibliographic catalog search
	CatalogBaseURL   string `env:"CATALOG_BASE_URL" envDefault:"https://zoeken.oba.nl/api/v1"`
	CatalogPublicKey string `env:"CATALOG_PUBLIC_KEY,required"`
	CatalogSecretKey string `env:"CATALOG_SECRET_KEY,required"`

	// Translation (optional; /api/translate returns an error when unset)
	TranslateAPIKey string `env:"TRANSLATE_API_KEY"`
	TranslateURL    string `env:"TRANSLATE_API_URL" envDefault:"https://translation.googleapis.com/language/translate/v2"`

	// Uploads
	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) TranslateEnabled() bool {
	return c.TranslateAPIKey != ""
}
