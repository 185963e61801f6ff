package bode

import "errors"

// Domain errors for Bode evaluation.
var (
	// ErrNoConvergence indicates the eigenvalue solver behind Roots failed.
	ErrNoConvergence = errors.New("bode: root finding did not converge")

	// ErrNonFinite indicates a result holds NaN or Inf values. Evaluation
	// itself never returns it; callers that cannot represent such values
	// (JSON) use CheckFinite.
	ErrNonFinite = errors.New("bode: result contains NaN or Inf")
)

// FieldError names the result field that failed a check.
type FieldError struct {
	Field   string
	Index   int
	Wrapped error
}

func (e *FieldError) Error() string {
	return e.Wrapped.Error() + " (" + e.Field + ")"
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}
