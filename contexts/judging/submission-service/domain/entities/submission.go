package entities

import "time"

// Kind discriminates the two accepted entry formats.
type Kind string

const (
	KindVideo Kind = "video"
	KindEssay Kind = "essay"
)

// Valid reports whether the kind is one of the accepted formats.
func (k Kind) Valid() bool {
	return k == KindVideo || k == KindEssay
}

// Submission is a competition entry. TeamName, Category and VideoURL
// are optional; everything else is required at creation time.
type Submission struct {
	SubmissionID    string
	ParticipantName string
	TeamName        string
	Category        string
	Kind            Kind
	Title           string
	Content         string
	VideoURL        string
	CreatedAt       time.Time
}
