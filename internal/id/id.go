// Package id generates identifiers for quizzes, questions, and attempts.
package id

import "github.com/google/uuid"

// New returns a fresh unique identifier.
func New() string {
	return uuid.NewString()
}
