package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/domain"
)

// CatalogService queries the bibliographic search API by keyword. The
// API authenticates with a short-lived signed token and answers with a
// markup document listing results.
type CatalogService struct {
	baseURL    string
	publicKey  string
	secretKey  string
	httpClient *http.Client
	now        func() time.Time
}

func NewCatalogService(cfg *config.Config) *CatalogService {
	return &CatalogService{
		baseURL:    cfg.CatalogBaseURL,
		publicKey:  cfg.CatalogPublicKey,
		secretKey:  cfg.CatalogSecretKey,
		httpClient: &http.Client{Timeout: config.CatalogTimeout},
		now:        time.Now,
	}
}

// accessToken builds the signed bearer token the search API expects.
func (s *CatalogService) accessToken() (string, error) {
	claims := jwt.MapClaims{
		"key":         s.publicKey,
		"exp":         s.now().Add(config.CatalogTokenTTL).Unix(),
		"description": "obi-chatbot",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", fmt.Errorf("sign catalog token: %w", err)
	}
	return signed, nil
}

// Search runs a keyword search and parses the result markup. Zero
// matches yield an empty, non-nil slice.
func (s *CatalogService) Search(ctx context.Context, keyword string) ([]domain.CatalogResult, error) {
	if keyword == "" {
		return nil, fmt.Errorf("empty search keyword")
	}

	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search/?q=%s", s.baseURL, url.QueryEscape(keyword))
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse catalog response: %w", err)
	}

	results := []domain.CatalogResult{}
	doc.Find("result").Each(func(_ int, sel *goquery.Selection) {
		coverURL := strings.TrimSpace(sel.Find("coverimage").First().Text())
		// The markup escapes ampersands inside URLs
		coverURL = strings.ReplaceAll(coverURL, "&amp;", "&")

		results = append(results, domain.CatalogResult{
			Title:         strings.TrimSpace(sel.Find("title").First().Text()),
			CoverImageURL: coverURL,
			DetailPageURL: strings.TrimSpace(sel.Find("detail-page").First().Text()),
		})
	})
	return results, nil
}
