package matcher

import "errors"

var (
	// ErrEmptyInput indicates an operation received text it cannot work with.
	ErrEmptyInput = errors.New("empty input text")

	// ErrModelUnavailable indicates the embedding or NER model failed to load
	// or failed during inference. Fatal for the affected request, no retry.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInvalidConfig indicates matcher configuration that cannot be used,
	// such as weights that do not sum to 1.00 or an empty skill vocabulary.
	// Checked at startup, never per request.
	ErrInvalidConfig = errors.New("invalid matcher configuration")
)
