package service

import "errors"

// Lifecycle and lookup failures surfaced to the transport layer. Guard
// violations are always returned to the caller, never silently ignored —
// they indicate a caller-side logic error or a lost race.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")

	// ErrSuggestionApplied signals a second apply of the same suggestion.
	ErrSuggestionApplied = errors.New("suggestion already applied")
	// ErrSuggestionProductMismatch signals an apply against a product the
	// suggestion was not computed for.
	ErrSuggestionProductMismatch = errors.New("suggestion does not match product")

	ErrNoProductsMatched = errors.New("no products found")
	ErrEmptySelection    = errors.New("provide product_ids, category, or all")
)
