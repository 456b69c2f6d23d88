package extract

import "fmt"

// APICallError represents an error from an inference backend.
type APICallError struct {
	Model   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed (%s): %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed (%s): %s", e.Model, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the inference response.
type ParseError struct {
	Model   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Model, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
