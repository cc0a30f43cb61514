package agent

import "errors"

var (
	// ErrExtraction marks a structured-extraction call whose response failed
	// schema validation or whose transport failed.
	ErrExtraction = errors.New("ticket extraction failed")

	// ErrGeneration is the same failure class for the response-generation call.
	ErrGeneration = errors.New("response generation failed")
)
