package gateway

// BackendError is the single error shape the gateway reports for any
// transport, auth, or constraint failure. Stores and views never see
// backend-specific error forms, only the human-readable message.
type BackendError struct {
	Message string
	// Status is the HTTP status code when the server answered, 0 for
	// transport failures.
	Status int
}

func (e *BackendError) Error() string {
	return e.Message
}

// IsConflict reports whether the failure was a uniqueness conflict, e.g.
// tracking software that is already tracked.
func (e *BackendError) IsConflict() bool {
	return e.Status == 409
}

// IsAuth reports whether the failure was an authentication problem.
func (e *BackendError) IsAuth() bool {
	return e.Status == 401
}
