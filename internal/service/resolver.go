package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oba-digital/obi-backend/internal/domain"
)

// AnswerLookup is the two-tier persisted answer lookup.
type AnswerLookup interface {
	LookupPersonal(ctx context.Context, question string, userID int64) (string, error)
	LookupCommon(ctx context.Context, question string) (string, error)
}

// Completer generates an answer for a question within a session.
type Completer interface {
	Complete(ctx context.Context, session *Session, question string) (string, error)
}

// SubjectExtractor pulls a book title or subject out of a question.
type SubjectExtractor interface {
	ExtractBookSubject(ctx context.Context, question string) (string, error)
}

// CatalogSearcher looks up catalog records by keyword.
type CatalogSearcher interface {
	Search(ctx context.Context, keyword string) ([]domain.CatalogResult, error)
}

// Resolver turns one question into one displayable answer. The tiers
// run in strict order and the first conclusive result wins: personal
// history, then common questions, then generation. After a generated
// answer the original question goes through book-subject extraction,
// and a non-empty keyword triggers a catalog search whose results are
// attached to the answer.
type Resolver struct {
	store      AnswerLookup
	completion Completer
	extractor  SubjectExtractor
	catalog    CatalogSearcher
}

func NewResolver(store AnswerLookup, completion Completer, extractor SubjectExtractor, catalog CatalogSearcher) *Resolver {
	return &Resolver{
		store:      store,
		completion: completion,
		extractor:  extractor,
		catalog:    catalog,
	}
}

// stage is one tier of the fallback chain. run returns a nil resolution
// on a miss, letting the next tier take over.
type stage struct {
	name string
	run  func(ctx context.Context, q domain.Question, session *Session) (*domain.Resolution, error)
}

func (r *Resolver) stages() []stage {
	return []stage{
		{name: "personal_history", run: r.resolvePersonal},
		{name: "common_questions", run: r.resolveCommon},
		{name: "generate", run: r.resolveGenerated},
	}
}

// Resolve walks the tiers and augments generated answers with catalog
// results. The only error path left is an unclassified completion
// failure; the caller maps it to the generic technical-problem message.
func (r *Resolver) Resolve(ctx context.Context, q domain.Question, session *Session) (*domain.Resolution, error) {
	for _, st := range r.stages() {
		res, err := st.run(ctx, q, session)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", st.name, err)
		}
		if res == nil {
			continue
		}
		if res.Provenance == domain.ProvenanceGenerated {
			r.augment(ctx, q, res)
		}
		return res, nil
	}
	// unreachable: the generate stage is always conclusive
	return nil, fmt.Errorf("no stage produced an answer")
}

func (r *Resolver) resolvePersonal(ctx context.Context, q domain.Question, _ *Session) (*domain.Resolution, error) {
	answer, err := r.store.LookupPersonal(ctx, q.Text, q.UserID)
	if err != nil {
		return nil, degradeLookup("personal_history", err)
	}
	return &domain.Resolution{AnswerText: answer, Provenance: domain.ProvenanceHistory}, nil
}

func (r *Resolver) resolveCommon(ctx context.Context, q domain.Question, _ *Session) (*domain.Resolution, error) {
	answer, err := r.store.LookupCommon(ctx, q.Text)
	if err != nil {
		return nil, degradeLookup("common_questions", err)
	}
	return &domain.Resolution{AnswerText: answer, Provenance: domain.ProvenanceCommon}, nil
}

func (r *Resolver) resolveGenerated(ctx context.Context, q domain.Question, session *Session) (*domain.Resolution, error) {
	text, err := r.completion.Complete(ctx, session, q.Text)
	if err != nil {
		return nil, err
	}
	return &domain.Resolution{AnswerText: text, Provenance: domain.ProvenanceGenerated}, nil
}

// degradeLookup turns a miss into a silent fallthrough and an
// unavailable store into a logged one; anything else propagates.
func degradeLookup(tier string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if errors.Is(err, domain.ErrStorageUnavailable) {
		slog.Warn("lookup tier degraded to miss", "tier", tier, "error", err)
		return nil
	}
	return err
}

// augment runs book-subject extraction on the original question and,
// when a keyword surfaces, attaches catalog results. An empty keyword
// skips the catalog call entirely. Neither an extraction nor a catalog
// failure may destroy the generated answer, so both only log.
func (r *Resolver) augment(ctx context.Context, q domain.Question, res *domain.Resolution) {
	keyword, err := r.extractor.ExtractBookSubject(ctx, q.Text)
	if err != nil {
		slog.Warn("book subject extraction failed", "error", err)
		return
	}
	if keyword == "" {
		return
	}

	results, err := r.catalog.Search(ctx, keyword)
	if err != nil {
		slog.Warn("catalog search failed", "keyword", keyword, "error", err)
		return
	}
	res.CatalogResults = results
}
