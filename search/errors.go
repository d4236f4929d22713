package search

import "errors"

var (
	// ErrEmptyTerm is returned when the search term is empty after
	// trimming.
	ErrEmptyTerm = errors.New("search term is required")

	// ErrInvalidCategory is returned for a category outside the
	// configured set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNoResults is returned when no item survives filtering. The
	// caller cannot tell "every source failed" apart from "sources
	// succeeded but nothing was relevant"; both are ErrNoResults.
	ErrNoResults = errors.New("no results found")
)
