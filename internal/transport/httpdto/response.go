package httpdto

// Response is the envelope every JSON endpoint replies with. Successful
// replies carry Data; failures carry a human-readable Error plus a stable
// machine-readable Code.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

// NewErrorResponse builds a failure envelope. Success stays false so
// clients can branch on that single field.
func NewErrorResponse(message, code string) Response[any] {
	return Response[any]{Error: message, Code: code}
}
