package analyzer

import "fmt"

// ProviderError means the reasoning-provider call itself failed
// (transport, quota, malformed call). Always terminal for the request.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("reasoning provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError means the provider's response text did not conform to the
// response schema. Raw preserves the provider text verbatim so it can be
// surfaced for diagnostics instead of discarded.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse analysis response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
