package state

// StateGetOutput for GET /state
type StateGetOutput struct {
	Body State
}

// OperationOutput for the profile operations. Status reflects the result.
type OperationOutput struct {
	Status int
	Body   OperationResult
}
