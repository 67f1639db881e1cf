package dashboard

import "errors"

var (
	// ErrInvalidInput is returned when a mutator receives a value it cannot display.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownField is returned when a patch names a field that cannot be patched.
	ErrUnknownField = errors.New("unknown field")
	// ErrFetchFailed matches every error returned by a fetch action.
	ErrFetchFailed = errors.New("fetch failed")
)

// FetchError reports which fetch action failed and why.
type FetchError struct {
	Action string
	Err    error
}

func (e *FetchError) Error() string {
	return "fetch " + e.Action + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFetchFailed) match any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
