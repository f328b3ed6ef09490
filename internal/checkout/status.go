package checkout

// State tracks a submission through its lifecycle. Failed submissions fall
// back to Idle on the client; there is no automatic retry.
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}
