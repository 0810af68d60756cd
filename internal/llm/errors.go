package llm

import "fmt"

// ErrorKind tags why a completion failed.
type ErrorKind int

const (
	// KindTransport covers network failures, timeouts and undecodable bodies.
	KindTransport ErrorKind = iota
	// KindHTTPStatus is a non-2xx response.
	KindHTTPStatus
	// KindShape is a 2xx response without choices[0].message.content.
	KindShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindShape:
		return "shape_mismatch"
	default:
		return "transport"
	}
}

// CompletionError is the only error type a Provider returns from Complete.
type CompletionError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	// Body is the raw response payload for KindHTTPStatus and KindShape.
	Body string
	Err  error
}

func (e *CompletionError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	case KindShape:
		return fmt.Sprintf("%s returned an unexpected response: %s", e.Provider, e.Body)
	default:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
}

func (e *CompletionError) Unwrap() error { return e.Err }
