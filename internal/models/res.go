package models

// ErrorBody is the JSON shape of every non-2xx API response.
type ErrorBody struct {
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Message: message}
}

func ValidationResponse(err *ValidationError) ErrorBody {
	return ErrorBody{Message: err.Error(), Errors: err.Fields}
}

// MessageResponse is returned by operations that have no document to send back.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
