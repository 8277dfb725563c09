package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/domain"
)

// User-facing fallback texts for classified upstream failures. The bot
// must always answer with something, so these are returned as regular
// answer text rather than errors.
const (
	MsgModelBusy = "OBI is even koffie halen, probeer deze vraag later opnieuw te stellen."
	MsgModelDown = "OBI heeft momenteel technische problemen. Probeer later opnieuw."
)

// ChatCompleter issues one model call.
type ChatCompleter interface {
	CreateCompletion(ctx context.Context, messages []domain.Message, temperature float64, maxTokens int) (string, error)
}

// CompletionService generates a conversational answer for a question,
// keeping the session history in step with every call.
type CompletionService struct {
	client ChatCompleter
}

func NewCompletionService(client ChatCompleter) *CompletionService {
	return &CompletionService{client: client}
}

// ClassifyUpstreamStatus maps an upstream HTTP status to the fallback
// answer shown to the user. The second return is false when the status
// has no mapping and the failure must propagate as an error.
func ClassifyUpstreamStatus(status int) (string, bool) {
	switch status {
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return MsgModelBusy, true
	case http.StatusInternalServerError:
		return MsgModelDown, true
	}
	return "", false
}

// Complete appends the question to the session, asks the model, and on
// success appends the reply. Saturation (429/503) and upstream server
// errors (500) come back as fallback answer text, also recorded in the
// session. Any other failure is returned as an error; the user entry
// stays appended since the model never produced a contradicting reply.
func (s *CompletionService) Complete(ctx context.Context, session *Session, question string) (string, error) {
	if err := session.Append(domain.RoleUser, question); err != nil {
		return "", err
	}

	text, err := s.client.CreateCompletion(ctx, session.Snapshot(), config.CompletionTemperature, config.CompletionMaxTokens)
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			if msg, ok := ClassifyUpstreamStatus(ue.StatusCode); ok {
				slog.Warn("model call failed, answering with fallback text", "status", ue.StatusCode)
				session.Append(domain.RoleAssistant, msg)
				return msg, nil
			}
		}
		return "", fmt.Errorf("create completion: %w", err)
	}

	// A blank reply must not reach the user as an empty bot message.
	if text == "" {
		return "", fmt.Errorf("completion returned an empty answer")
	}
	if err := session.Append(domain.RoleAssistant, text); err != nil {
		return "", err
	}
	return text, nil
}
