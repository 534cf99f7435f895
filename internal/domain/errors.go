package domain

import "errors"

var (
	// ErrInvalidSubmission is returned when an answer sheet references a quiz
	// other than the one being scored. The submission is rejected whole; it is
	// never partially scored.
	ErrInvalidSubmission = errors.New("submission does not match quiz")
	// ErrInvalidRange is returned when a history filter's start date is after
	// its end date, whether supplied explicitly or computed from defaults.
	ErrInvalidRange = errors.New("invalid date range: start is after end")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
)
