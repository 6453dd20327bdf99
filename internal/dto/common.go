package dto

// Response is the envelope wrapping every API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// OK wraps a successful payload.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKMessage wraps a successful operation that has no payload.
func OKMessage(message string) Response {
	return Response{Success: true, Message: message}
}

// Error wraps a failure with a human message and a machine code.
func Error(message, code string) Response {
	return Response{Success: false, Message: message, Code: code}
}
