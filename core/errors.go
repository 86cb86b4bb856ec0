package core

// FieldError points an error at a specific input field, eg. a student's
// email that is already claimed by another account.
type FieldError struct {
	Field string
	Error string
}

// ValidationError bundles per-field errors so the API layer can render
// them as a field -> message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}
