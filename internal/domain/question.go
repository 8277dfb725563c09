package domain

import "time"

// Question is one user utterance entering the resolution pipeline.
// UserID is 0 for anonymous visitors; personal history is then skipped.
type Question struct {
	Text   string
	UserID int64
}

// Provenance tags which pipeline tier produced the final answer.
type Provenance string

const (
	ProvenanceHistory   Provenance = "history"
	ProvenanceCommon    Provenance = "common"
	ProvenanceGenerated Provenance = "generated"
)

// Resolution is the final displayable outcome for one question.
// CatalogResults is nil when no catalog search ran and an empty
// slice when the search ran but matched nothing.
type Resolution struct {
	AnswerText     string
	Provenance     Provenance
	CatalogResults []CatalogResult
}

// CatalogResult is one parsed hit from the bibliographic search API.
type CatalogResult struct {
	Title         string `json:"title"`
	CoverImageURL string `json:"coverImageUrl"`
	DetailPageURL string `json:"detailPageUrl"`
}

// HistoryEntry is a saved question/answer pair of one user.
type HistoryEntry struct {
	ID        int64
	UserID    int64
	Question  string
	Answer    string
	CreatedAt time.Time
}

// HelpQuestion is a seeded example question shown on the chat screen.
type HelpQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
