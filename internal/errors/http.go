package errors

import "net/http"

// HTTPStatusFromError maps an error kind to an HTTP status code for the
// administrative trigger surface.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsInvalidOperation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the wire shape for a failed request
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Hint    string                 `json:"hint,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse builds the wire shape from any error
func NewErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{Error: err.Error()}
	var ie *InternalError
	if As(err, &ie) {
		resp.Hint = ie.Hint()
		resp.Details = ie.ReportableDetails()
	}
	return resp
}
