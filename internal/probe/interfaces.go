package probe

import (
	"net/http"
)

// HTTPClient abstracts the HTTP client for better testing
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// ResponseProcessor turns a raw HTTP response into a Result
type ResponseProcessor interface {
	ProcessResponse(*http.Response) (*Result, error)
}
