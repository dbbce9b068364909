package errors

// Code represents an error code
type Code string

// Error codes. The solver request taxonomy maps onto these: catalog
// inconsistencies surface as CodeFailedPrecondition, an unexpectedly
// infeasible model or a solver crash as CodeInternal, and a cancelled solve
// as CodeCanceled. A solver timeout is not an error at all; the engine
// returns the best feasible solution flagged non-optimal instead.
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
