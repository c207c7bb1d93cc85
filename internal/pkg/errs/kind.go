package errs

import "errors"

// Kind is the stable, client-visible classification of an error.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindInvalidState   Kind = "invalid_state"
	KindAmountMismatch Kind = "amount_mismatch"
	KindGateway        Kind = "gateway"
	KindGatewayTimeout Kind = "gateway_timeout"
	KindInternal       Kind = "internal"
)

// KindOf classifies err. Validation wins over the other kinds when errors are joined.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrAmountMismatch):
		return KindAmountMismatch
	case errors.Is(err, ErrGatewayTimeout):
		return KindGatewayTimeout
	case errors.Is(err, ErrGateway):
		return KindGateway
	default:
		return KindInternal
	}
}
