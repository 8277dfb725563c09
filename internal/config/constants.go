package config

import "time"

const (
	// Completion tuning: low temperature and a bounded reply keep the bot factual.
	CompletionTemperature = 0.1
	CompletionMaxTokens   = 500

	// Request timeouts
	CompletionTimeout = 90 * time.Second
	CatalogTimeout    = 30 * time.Second
	TranslateTimeout  = 15 * time.Second

	// Catalog access tokens are short-lived
	CatalogTokenTTL = 30 * time.Minute

	// Persisted question/answer texts are truncated to this length
	MaxStoredTextLen = 1000

	// Idle conversations are evicted after this long
	SessionIdleTTL         = 30 * time.Minute
	SessionCleanupInterval = 5 * time.Minute

	// Upload limit
	MaxUploadSize = 10 << 20
)

// PersonaPrompt is the fixed system message opening every conversation.
const PersonaPrompt = "Jij bent een chat bot genaamd OBI van de OBA (Openbare Bibliotheek Amsterdam)."
