package errs

import "errors"

// Kind is the transport-agnostic classification of an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindInvalidArgument
	KindNotFound
	KindInvalidState
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	case KindUnknown:
		return "unknown"
	}
	return "unknown"
}

// KindOf classifies err. Errors that carry none of the package sentinels are Internal;
// a nil error is KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInternal):
		return KindInternal
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrObjectAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}

// WrapInternal wraps err as an InternalError unless it is already classified.
// It returns nil for a nil err.
func WrapInternal(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInternal) || KindOf(err) != KindInternal {
		return err
	}
	return NewInternalError(operation, err)
}
