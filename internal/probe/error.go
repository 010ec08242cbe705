package probe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConfigError is raised before any network activity.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration error: %v", e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

// PayloadError wraps failures while building or serializing the request.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string { return fmt.Sprintf("payload error: %v", e.Err) }
func (e *PayloadError) Unwrap() error { return e.Err }

// TransportError wraps connection, TLS and body read failures. It is never retried.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("request error: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// apiError is the OpenAI style error envelope most proxies return
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Status  string `json:"status"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// formatErrorMessage extracts the main error message from an API error body
func formatErrorMessage(status int, body []byte) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Message == "" {
		// Compress to single line
		msg := strings.Join(strings.Fields(string(body)), " ")
		if msg == "" {
			return fmt.Sprintf("status: %d", status)
		}
		return fmt.Sprintf("status: %d %s", status, msg)
	}

	parts := []string{fmt.Sprintf("status: %d", status), fmt.Sprintf("message: %s", apiErr.Error.Message)}
	if apiErr.Error.Type != "" {
		parts = append(parts, fmt.Sprintf("type: %s", apiErr.Error.Type))
	}
	if apiErr.Error.Status != "" {
		parts = append(parts, fmt.Sprintf("reason: %s", apiErr.Error.Status))
	}
	if apiErr.Error.Code != nil {
		parts = append(parts, fmt.Sprintf("code: %v", apiErr.Error.Code))
	}
	return strings.Join(parts, " ")
}
