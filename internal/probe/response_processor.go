package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultResponseProcessor implements the ResponseProcessor interface
type DefaultResponseProcessor struct{}

// NewResponseProcessor creates a new DefaultResponseProcessor
func NewResponseProcessor() *DefaultResponseProcessor {
	return &DefaultResponseProcessor{}
}

// ProcessResponse drains the body and classifies it. A body that is not JSON
// is kept as raw text; only a failed read is an error.
func (p *DefaultResponseProcessor) ProcessResponse(resp *http.Response) (*Result, error) {
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Body:       buf.Bytes(),
	}

	if pretty, ok := prettyJSON(result.Body); ok {
		result.IsJSON = true
		result.Pretty = pretty
		result.Reply = extractReply(result.Body)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Summary = formatErrorMessage(resp.StatusCode, result.Body)
	}

	return result, nil
}

// prettyJSON re-indents body with two spaces, keeping key order.
func prettyJSON(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return "", false
	}

	var out bytes.Buffer
	if err := json.Indent(&out, trimmed, "", "  "); err != nil {
		return "", false
	}
	return out.String(), true
}

func extractReply(body []byte) string {
	var completion struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil || len(completion.Choices) == 0 {
		return ""
	}
	if text, ok := completion.Choices[0].Message.Content.(string); ok {
		return text
	}
	return ""
}
