package errors

import "errors"

var (
	ErrInvalidRatingInput = errors.New("invalid rating input")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrExpertNotFound     = errors.New("expert not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrScoreCountMismatch = errors.New("score count does not match the rubric")
	ErrScoreOutOfRange    = errors.New("score is outside the criterion range")
	ErrConflict           = errors.New("rating conflict")
)
