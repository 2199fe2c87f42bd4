package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")
	ErrTimeout    = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrStalledPagination  = fmt.Errorf("pagination stalled")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Session errors
	ErrNoSubscriptions = fmt.Errorf("no subscriptions found")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
