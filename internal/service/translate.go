package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/domain"
)

// TranslateService proxies interface texts to the Google Translate v2
// REST endpoint. It is optional: without an API key every call fails
// with domain.ErrTranslateDisabled.
type TranslateService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTranslateService(cfg *config.Config) *TranslateService {
	return &TranslateService{
		apiKey:     cfg.TranslateAPIKey,
		baseURL:    cfg.TranslateURL,
		httpClient: &http.Client{Timeout: config.TranslateTimeout},
	}
}

func (s *TranslateService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if s.apiKey == "" {
		return "", domain.ErrTranslateDisabled
	}

	form := url.Values{}
	form.Set("q", text)
	form.Set("target", targetLanguage)
	form.Set("format", "text")
	form.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate returned status %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parse translate response: %w", err)
	}
	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("translate returned no translations")
	}
	return result.Data.Translations[0].TranslatedText, nil
}
