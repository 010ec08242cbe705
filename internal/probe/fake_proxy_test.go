package probe

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

const completionsPath = "/api/v1/chat/completions"

type capturedRequest struct {
	Header        http.Header
	ContentLength int64
	Body          []byte
}

// fakeProxy is a chat completions endpoint that records every request and
// answers with a fixed status and body.
type fakeProxy struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newFakeProxy(t *testing.T, status int, contentType, body string) *fakeProxy {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fp := &fakeProxy{}
	router := gin.New()
	router.POST(completionsPath, func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		fp.mu.Lock()
		fp.requests = append(fp.requests, capturedRequest{
			Header:        c.Request.Header.Clone(),
			ContentLength: c.Request.ContentLength,
			Body:          data,
		})
		fp.mu.Unlock()
		c.Data(status, contentType, []byte(body))
	})

	fp.Server = httptest.NewServer(router)
	t.Cleanup(fp.Close)
	return fp
}

func (fp *fakeProxy) endpoint() string {
	return fp.URL + completionsPath
}

func (fp *fakeProxy) captured() []capturedRequest {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return append([]capturedRequest(nil), fp.requests...)
}
