package solver

// Result is produced once per run and is not modified afterwards.
type Result struct {
	Method     string  `json:"method"`
	X          float64 `json:"x"`
	FX         float64 `json:"fx"`
	Iterations int     `json:"iterations"`
	Status     Status  `json:"status"`
	History    History `json:"history"`
	// Cause is set for NumericalFailure and InvalidInput.
	Cause error `json:"-"`
}

func (r *Result) Converged() bool { return r.Status == Converged }

// Err returns the failure cause, or nil when the run did not fail.
func (r *Result) Err() error { return r.Cause }

// Residual returns |f(X)|.
func (r *Result) Residual() float64 {
	if r.FX < 0 {
		return -r.FX
	}
	return r.FX
}

// Rejected builds the result for a run refused before iterating.
func Rejected(method string, x0 float64, cause error) *Result {
	return &Result{
		Method:  method,
		X:       x0,
		Status:  InvalidInput,
		History: History{},
		Cause:   cause,
	}
}
