package errors

import "errors"

var (
	// ErrMissingFields indicates one of the required creation fields is blank.
	ErrMissingFields = errors.New("participant name, type, title and content are required")
	// ErrInvalidKind indicates the submission type is neither video nor essay.
	ErrInvalidKind = errors.New("submission type must be video or essay")
	// ErrSubmissionNotFound indicates no submission exists for the identifier.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrConflict indicates a concurrent write touched the same submission.
	ErrConflict = errors.New("submission conflict")
)
