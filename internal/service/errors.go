package service

// ValidationError marks an input as rejected before it touched storage.
// Handlers translate it into a 400 response.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}
