package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config)
	ExitEmptyQuery  = 3 // No DOI given, or none found in a PDF
	ExitNotFound    = 4 // Every source reported the paper as not found
	ExitUnreachable = 5 // At least one source was unreachable or malformed
)
