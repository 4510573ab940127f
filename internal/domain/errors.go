package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMonth signals a month name outside the supported locale.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidWeekday signals a weekday name outside the supported locale.
	ErrInvalidWeekday = errors.New("invalid day")
	// ErrTitleNotFound signals a title absent from the catalog.
	ErrTitleNotFound = errors.New("title not found")
	// ErrDirectorNotFound signals a director with no films in the catalog.
	ErrDirectorNotFound = errors.New("director not found")
	// ErrInsufficientVotes signals a vote count below the configured threshold.
	ErrInsufficientVotes = errors.New("insufficient votes")
	// ErrMovieNotIndexed signals a title absent from the recommendation corpus.
	ErrMovieNotIndexed = errors.New("movie not indexed")
	// ErrInvalidDataset signals a dataset that cannot be loaded.
	ErrInvalidDataset = errors.New("invalid dataset")
)

// SubjectError wraps a sentinel with the user-supplied value it refers to.
type SubjectError struct {
	Kind    error
	Subject string
}

func (e *SubjectError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Subject)
}

func (e *SubjectError) Unwrap() error { return e.Kind }

// NewSubjectError creates a SubjectError for the given sentinel.
func NewSubjectError(kind error, subject string) error {
	return &SubjectError{Kind: kind, Subject: subject}
}

// SubjectOf returns the subject carried by err, or "" if there is none.
func SubjectOf(err error) string {
	var se *SubjectError
	if errors.As(err, &se) {
		return se.Subject
	}
	return ""
}
