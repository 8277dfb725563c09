package handler

import (
	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/repository"
	"github.com/oba-digital/obi-backend/internal/service"
)

// Handler holds all dependencies needed by the HTTP handlers.
type Handler struct {
	cfg           *config.Config
	resolver      *service.Resolver
	sessions      *service.SessionManager
	answers       *repository.AnswerStore
	helpQuestions *repository.HelpQuestionStore
	translate     *service.TranslateService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg           *config.Config
	Resolver      *service.Resolver
	Sessions      *service.SessionManager
	Answers       *repository.AnswerStore
	HelpQuestions *repository.HelpQuestionStore
	Translate     *service.TranslateService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:           deps.Cfg,
		resolver:      deps.Resolver,
		sessions:      deps.Sessions,
		answers:       deps.Answers,
		helpQuestions: deps.HelpQuestions,
		translate:     deps.Translate,
	}
}
