package response

import "scheduling/pkg/apperror"

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// SuccessWithMessage wraps data together with a human readable confirmation
func SuccessWithMessage(statusCode int, message string, data interface{}) Response {
	resp := Success(statusCode, data)
	resp.Message = message
	return resp
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// FromError builds the error envelope for a tagged failure. Untagged errors get a
// generic message so internal details never reach the client.
func FromError(err error) (int, Response) {
	code := apperror.StatusCode(err)
	if code >= 500 {
		return code, Error(code, "Internal server error")
	}
	return code, Error(code, err.Error())
}
