package dto

// Response is the uniform success envelope. Failures are written by the
// error translator, never by handlers.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}
