package shared

import "fmt"

var (
	// Upstream provider errors
	ErrProviderUnavailable = fmt.Errorf("provider unavailable")
	ErrExtractionFailed    = fmt.Errorf("extraction failed")
	ErrNoResults           = fmt.Errorf("no results")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
