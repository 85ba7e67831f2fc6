package http

// Clienter defines the interface for HTTP client operations
type Clienter interface {
	Request(method, url string, body any, opts ...func(*RequestOption)) (*Response, error)
}
