package kernel

// Error describes a kernel error. All kernel errors must be defined as global
// variables that are pointers to the Error structure so they can be returned
// from code paths where the Go allocator must not be touched.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string

	// Kind optionally points to a broader error that this error is a
	// specialization of. It allows callers to match whole classes of
	// errors using errors.Is.
	Kind *Error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error class this error belongs to or nil.
func (e *Error) Unwrap() error {
	if e.Kind == nil {
		return nil
	}

	return e.Kind
}
