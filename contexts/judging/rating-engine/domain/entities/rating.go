package entities

import "time"

// Rating is one expert's scorecard for one submission. The ledger
// keeps at most one rating per (expert, submission) pair; a revision
// replaces the previous scores in place.
type Rating struct {
	RatingID     string
	SubmissionID string
	ExpertID     string
	ExpertName   string
	Scores       []int
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Total is the sum of the per-criterion scores.
func (r Rating) Total() int {
	total := 0
	for _, score := range r.Scores {
		total += score
	}
	return total
}

// ReviewStatus is the derived lifecycle state of a submission.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusReviewed ReviewStatus = "reviewed"
)

// Aggregate is the derived score view for one submission. It is never
// stored; it is recomputed from the ledger on every read.
type Aggregate struct {
	SubmissionID string
	Status       ReviewStatus
	AvgScore     float64
	RatingCount  int
}

// LeaderboardEntry pairs a ranked submission with its aggregate.
type LeaderboardEntry struct {
	SubmissionID    string
	Title           string
	ParticipantName string
	Kind            SubmissionKind
	AvgScore        float64
	RatingCount     int
	Rank            int
}
