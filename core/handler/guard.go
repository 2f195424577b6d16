package handler

// Guard is a pre-request hook executed before the route handler. Guards run
// strictly in registration order and may mutate the shared request context;
// mutations are visible to every later guard and to the handler.
type Guard[C Context] func(ctx C) GuardResult

// GuardResult is the outcome of a guard: allow the request to continue,
// reject it with a bad-request fault, or short-circuit with a response that
// is rendered verbatim without running later guards or the handler.
// Construct values with Allow, Reject or ShortCircuit.
type GuardResult struct {
	decision guardDecision
	err      error
	response Response
}

type guardDecision uint8

const (
	guardAllow guardDecision = iota
	guardReject
	guardShortCircuit
)

// Allow lets dispatch continue to the next guard or the handler.
func Allow() GuardResult {
	return GuardResult{decision: guardAllow}
}

// Reject halts dispatch with a bad-request fault. The optional err is
// attached to the fault record handed to the error handler.
func Reject(err error) GuardResult {
	return GuardResult{decision: guardReject, err: err}
}

// ShortCircuit halts dispatch immediately and renders res verbatim.
// No later guard and no route handler runs.
func ShortCircuit(res Response) GuardResult {
	return GuardResult{decision: guardShortCircuit, response: res}
}

// Allowed reports whether dispatch should continue.
func (r GuardResult) Allowed() bool {
	return r.decision == guardAllow
}

// Rejected returns the rejection error and whether the guard rejected.
func (r GuardResult) Rejected() (error, bool) {
	return r.err, r.decision == guardReject
}

// ShortCircuited returns the short-circuit response and whether one was set.
func (r GuardResult) ShortCircuited() (Response, bool) {
	return r.response, r.decision == guardShortCircuit
}
