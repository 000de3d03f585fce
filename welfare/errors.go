package welfare

import (
	goerrors "github.com/goliatone/go-errors"
)

// Failure taxonomy. The engine distinguishes two failure classes: the data
// provider was unreachable (callers must be able to tell "no employees" from
// "could not reach the source"), and derivation input was invalid (fail fast
// rather than emit a nonsensical due date). A cache miss is never an error.

// dataUnavailable marks a provider failure so callers can map it to a
// 5xx-class response.
func dataUnavailable(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, message)
}

// invalidInput marks a derivation or request input as rejected.
func invalidInput(message string) error {
	return goerrors.New(message, goerrors.CategoryValidation)
}

// IsDataUnavailable reports whether err means the external data provider
// failed, as opposed to the source legitimately holding no rows.
func IsDataUnavailable(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryExternal)
}

// IsInvalidInput reports whether err means a request or derivation input was
// rejected.
func IsInvalidInput(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}
