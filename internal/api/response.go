package api

// ErrorResponse represents all API error responses.
// @Description Standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the specifics of an API error.
// @Description Error details
type ErrorDetail struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func NewErrorResponse(httpStatusCode int, err error, message, param string) *ErrorResponse {
	errorType := "api_error"
	switch {
	case httpStatusCode >= 400 && httpStatusCode < 500:
		errorType = "invalid_request_error"
	case httpStatusCode == 502 || httpStatusCode == 504:
		errorType = "upstream_error"
	}

	errorCode := "unknown_error"
	if err != nil {
		errorCode = err.Error()
	}

	return &ErrorResponse{
		Error: ErrorDetail{
			Type:    errorType,
			Code:    errorCode,
			Message: message,
			Param:   param,
		},
	}
}
