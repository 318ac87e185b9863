package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSlideNotFound      = fmt.Errorf("slide not found")
	ErrFileNotFound       = fmt.Errorf("file not found")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Cache errors
	ErrCacheMiss   = fmt.Errorf("cache miss")
	ErrCacheClosed = fmt.Errorf("cache closed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
