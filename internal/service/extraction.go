package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/domain"
)

var quotedSubject = regexp.MustCompile(`"([^"]+)"`)

// EntityExtractionService asks the model whether a question concerns a
// book title or subject. The instruction makes the model quote the
// subject; the first double-quoted substring of the reply is the
// extracted keyword. No quoted substring means no keyword, which is a
// normal outcome rather than an error.
type EntityExtractionService struct {
	client ChatCompleter
}

func NewEntityExtractionService(client ChatCompleter) *EntityExtractionService {
	return &EntityExtractionService{client: client}
}

func (s *EntityExtractionService) ExtractBookSubject(ctx context.Context, question string) (string, error) {
	instruction := "You are a helpful assistant. The user said: '" + question +
		"'. Detect if the user asks something about a book title or a specific subject for a book." +
		" Extract the book title or the subject and only return the book title or subject."

	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: instruction},
		{Role: domain.RoleUser, Content: question},
	}

	text, err := s.client.CreateCompletion(ctx, messages, config.CompletionTemperature, 0)
	if err != nil {
		return "", fmt.Errorf("extraction call: %w", err)
	}

	match := quotedSubject.FindStringSubmatch(text)
	if match == nil {
		return "", nil
	}
	return match[1], nil
}
