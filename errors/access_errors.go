// errors/access_errors.go
package errors

import "errors"

var (
	ErrRuleNotFound     = errors.New("access rule not found")
	ErrStoreUnavailable = errors.New("rule store unavailable")

	// ErrMalformedRule is reserved for rule shape validation. Rules are
	// currently trusted as stored, so nothing raises it yet.
	ErrMalformedRule = errors.New("malformed access rule")
)
