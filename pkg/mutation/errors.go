package mutation

import "errors"

// Sentinel errors returned by mutation operations. Whenever one is returned
// the accompanying document is the input, unchanged, so callers that only
// care about the document can ignore the error and get a silent no-op.
var (
	ErrNotFound       = errors.New("mutation: node not found")
	ErrLastPage       = errors.New("mutation: cannot delete the only page")
	ErrPageOutOfRange = errors.New("mutation: page index out of range")
	ErrDuplicateName  = errors.New("mutation: name already in use")
	ErrKindMismatch   = errors.New("mutation: replacement kind does not match target")
	ErrInvalidElement = errors.New("mutation: element type is required")
	ErrNotPanel       = errors.New("mutation: target is not a panel")
)

// IsNoop reports whether err is one of the sentinel errors that leave the
// document untouched.
func IsNoop(err error) bool {
	for _, candidate := range []error{
		ErrNotFound, ErrLastPage, ErrPageOutOfRange, ErrDuplicateName,
		ErrKindMismatch, ErrInvalidElement, ErrNotPanel,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
