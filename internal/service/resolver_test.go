package service

import (
	"context"
	"errors"
	"testing"

	"github.com/oba-digital/obi-backend/internal/domain"
)

type fakeStore struct {
	personalAnswer string
	personalErr    error
	commonAnswer   string
	commonErr      error
	personalCalls  int
	commonCalls    int
}

func (f *fakeStore) LookupPersonal(_ context.Context, _ string, _ int64) (string, error) {
	f.personalCalls++
	if f.personalErr != nil {
		return "", f.personalErr
	}
	return f.personalAnswer, nil
}

func (f *fakeStore) LookupCommon(_ context.Context, _ string) (string, error) {
	f.commonCalls++
	if f.commonErr != nil {
		return "", f.commonErr
	}
	return f.commonAnswer, nil
}

type fakeCompleter struct {
	text  string
	err   error
	calls int
	order *[]string
}

func (f *fakeCompleter) Complete(_ context.Context, _ *Session, _ string) (string, error) {
	f.calls++
	if f.order != nil {
		*f.order = append(*f.order, "complete")
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeExtractor struct {
	keyword string
	err     error
	calls   int
	order   *[]string
}

func (f *fakeExtractor) ExtractBookSubject(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.order != nil {
		*f.order = append(*f.order, "extract")
	}
	return f.keyword, f.err
}

type fakeCatalog struct {
	results     []domain.CatalogResult
	err         error
	calls       int
	lastKeyword string
}

func (f *fakeCatalog) Search(_ context.Context, keyword string) ([]domain.CatalogResult, error) {
	f.calls++
	f.lastKeyword = keyword
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func missingStore() *fakeStore {
	return &fakeStore{personalErr: domain.ErrNotFound, commonErr: domain.ErrNotFound}
}

func TestResolve_PersonalHistoryHitSkipsAllLaterTiers(t *testing.T) {
	store := &fakeStore{personalAnswer: "uit je geschiedenis", commonErr: domain.ErrNotFound}
	completion := &fakeCompleter{text: "nooit"}
	extractor := &fakeExtractor{}
	catalog := &fakeCatalog{}

	r := NewResolver(store, completion, extractor, catalog)
	res, err := r.Resolve(context.Background(), domain.Question{Text: "vraag", UserID: 7}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AnswerText != "uit je geschiedenis" || res.Provenance != domain.ProvenanceHistory {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if completion.calls != 0 || extractor.calls != 0 || catalog.calls != 0 {
		t.Fatalf("later tiers ran: completion=%d extractor=%d catalog=%d",
			completion.calls, extractor.calls, catalog.calls)
	}
}

func TestResolve_CommonQuestionHitSkipsGeneration(t *testing.T) {
	store := &fakeStore{personalErr: domain.ErrNotFound, commonAnswer: "Bij de balie."}
	completion := &fakeCompleter{}
	extractor := &fakeExtractor{}

	r := NewResolver(store, completion, extractor, &fakeCatalog{})
	res, err := r.Resolve(context.Background(), domain.Question{Text: "Hoe kan ik mijn paspoort vernieuwen?"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Provenance != domain.ProvenanceCommon {
		t.Fatalf("expected provenance common, got %s", res.Provenance)
	}
	if res.AnswerText != "Bij de balie." {
		t.Fatalf("unexpected answer: %q", res.AnswerText)
	}
	if completion.calls != 0 || extractor.calls != 0 {
		t.Fatalf("model was called: completion=%d extractor=%d", completion.calls, extractor.calls)
	}
}

func TestResolve_MissEverywhereCallsCompletionThenExtractionOnce(t *testing.T) {
	var order []string
	completion := &fakeCompleter{text: "antwoord", order: &order}
	extractor := &fakeExtractor{order: &order}

	r := NewResolver(missingStore(), completion, extractor, &fakeCatalog{})
	res, err := r.Resolve(context.Background(), domain.Question{Text: "iets"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Provenance != domain.ProvenanceGenerated {
		t.Fatalf("expected provenance generated, got %s", res.Provenance)
	}
	if completion.calls != 1 || extractor.calls != 1 {
		t.Fatalf("expected exactly one call each, got completion=%d extractor=%d",
			completion.calls, extractor.calls)
	}
	if len(order) != 2 || order[0] != "complete" || order[1] != "extract" {
		t.Fatalf("wrong call order: %v", order)
	}
}

func TestResolve_EmptyKeywordSkipsCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	r := NewResolver(missingStore(), &fakeCompleter{text: "Hallo! Hoe kan ik je vandaag helpen."}, &fakeExtractor{keyword: ""}, catalog)

	res, err := r.Resolve(context.Background(), domain.Question{Text: "hoi"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AnswerText != "Hallo! Hoe kan ik je vandaag helpen." {
		t.Fatalf("unexpected answer: %q", res.AnswerText)
	}
	if catalog.calls != 0 {
		t.Fatalf("catalog was called %d times", catalog.calls)
	}
	if res.CatalogResults != nil {
		t.Fatalf("expected no catalog results field, got %v", res.CatalogResults)
	}
}

func TestResolve_KeywordTriggersOneCatalogSearch(t *testing.T) {
	catalog := &fakeCatalog{results: []domain.CatalogResult{{Title: "Harry Potter en de Steen der Wijzen"}}}
	r := NewResolver(missingStore(), &fakeCompleter{text: "Goed boek!"}, &fakeExtractor{keyword: "Harry Potter"}, catalog)

	res, err := r.Resolve(context.Background(), domain.Question{Text: "Heb je Harry Potter?"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.calls != 1 || catalog.lastKeyword != "Harry Potter" {
		t.Fatalf("expected one search for %q, got %d calls for %q",
			"Harry Potter", catalog.calls, catalog.lastKeyword)
	}
	if len(res.CatalogResults) != 1 {
		t.Fatalf("expected one catalog result, got %d", len(res.CatalogResults))
	}
}

func TestResolve_ZeroCatalogMatchesAttachEmptyList(t *testing.T) {
	catalog := &fakeCatalog{results: []domain.CatalogResult{}}
	r := NewResolver(missingStore(), &fakeCompleter{text: "antwoord"}, &fakeExtractor{keyword: "Harry Potter"}, catalog)

	res, err := r.Resolve(context.Background(), domain.Question{Text: "Heb je Harry Potter?"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Empty but present: the UI renders a distinct "no results" message.
	if res.CatalogResults == nil {
		t.Fatal("expected non-nil empty catalog results")
	}
	if len(res.CatalogResults) != 0 {
		t.Fatalf("expected zero results, got %d", len(res.CatalogResults))
	}
}

func TestResolve_StorageFailureDegradesToMiss(t *testing.T) {
	store := &fakeStore{
		personalErr: domain.ErrStorageUnavailable,
		commonErr:   domain.ErrStorageUnavailable,
	}
	completion := &fakeCompleter{text: "gegenereerd"}

	r := NewResolver(store, completion, &fakeExtractor{}, &fakeCatalog{})
	res, err := r.Resolve(context.Background(), domain.Question{Text: "vraag", UserID: 3}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Provenance != domain.ProvenanceGenerated || res.AnswerText != "gegenereerd" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolve_UnclassifiedCompletionErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection reset")
	r := NewResolver(missingStore(), &fakeCompleter{err: wantErr}, &fakeExtractor{}, &fakeCatalog{})

	_, err := r.Resolve(context.Background(), domain.Question{Text: "vraag"}, newSession("s"))
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped %v, got %v", wantErr, err)
	}
}

func TestResolve_ExtractionFailureKeepsGeneratedAnswer(t *testing.T) {
	catalog := &fakeCatalog{}
	r := NewResolver(missingStore(), &fakeCompleter{text: "antwoord"}, &fakeExtractor{err: errors.New("model down")}, catalog)

	res, err := r.Resolve(context.Background(), domain.Question{Text: "vraag"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AnswerText != "antwoord" {
		t.Fatalf("generated answer lost: %q", res.AnswerText)
	}
	if catalog.calls != 0 {
		t.Fatalf("catalog called after failed extraction")
	}
}

func TestResolve_CatalogFailureKeepsGeneratedAnswer(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("search unavailable")}
	r := NewResolver(missingStore(), &fakeCompleter{text: "antwoord"}, &fakeExtractor{keyword: "Harry Potter"}, catalog)

	res, err := r.Resolve(context.Background(), domain.Question{Text: "vraag"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AnswerText != "antwoord" || res.CatalogResults != nil {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

// Upstream 500s must surface as the fixed technical-problems text,
// delivered as a generated answer rather than an error.
func TestResolve_HardUpstreamFailureBecomesAnswerText(t *testing.T) {
	client := &stubChatClient{err: &domain.UpstreamError{StatusCode: 500}}
	completion := NewCompletionService(client)

	r := NewResolver(missingStore(), completion, &fakeExtractor{}, &fakeCatalog{})
	res, err := r.Resolve(context.Background(), domain.Question{Text: "vraag"}, newSession("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AnswerText != "OBI heeft momenteel technische problemen. Probeer later opnieuw." {
		t.Fatalf("unexpected answer: %q", res.AnswerText)
	}
	if res.Provenance != domain.ProvenanceGenerated {
		t.Fatalf("expected provenance generated, got %s", res.Provenance)
	}
}
