package probe

import (
	"bytes"
	"encoding/json"
	"time"
)

// RoleUser is the only role the probe sends.
const RoleUser = "user"

// PartType identifies a typed content part
type PartType string

const (
	PartTypeText     PartType = "text"
	PartTypeAudioURL PartType = "audio_url"
)

// ChatRequest is the OpenAI style chat completions payload
type ChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

// Message represents a message in the chat request
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Content is either a plain string or an ordered list of typed parts. It
// marshals as a JSON string when Parts is nil and as an array otherwise.
type Content struct {
	Text  string
	Parts []ContentPart
}

// TextContent builds string content
func TextContent(text string) Content {
	return Content{Text: text}
}

// PartsContent builds multimodal content
func PartsContent(parts ...ContentPart) Content {
	if parts == nil {
		parts = []ContentPart{}
	}
	return Content{Parts: parts}
}

// IsText reports whether the content is a plain string
func (c Content) IsText() bool {
	return c.Parts == nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.IsText() {
		return marshalJSON(c.Text)
	}
	return marshalJSON(c.Parts)
}

// ContentPart is one element of multimodal content
type ContentPart struct {
	Type     PartType  `json:"type"`
	Text     string    `json:"text,omitempty"`
	AudioURL *AudioURL `json:"audio_url,omitempty"`
}

// AudioURL carries an audio reference, usually a base64 data URL
type AudioURL struct {
	URL string `json:"url"`
}

// TextPart builds a text part
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartTypeText, Text: text}
}

// AudioPart builds an audio_url part
func AudioPart(url string) ContentPart {
	return ContentPart{Type: PartTypeAudioURL, AudioURL: &AudioURL{URL: url}}
}

// Result is the outcome of a completed exchange
type Result struct {
	StatusCode int
	Body       []byte
	// Pretty is the two-space indented body, set only when IsJSON.
	Pretty string
	IsJSON bool
	// Reply is choices[0].message.content when the body carries one.
	Reply string
	// Summary condenses an error body for non-2xx statuses.
	Summary string
	Latency time.Duration
}

// Display returns the body the way it is printed: indented JSON, or raw text.
func (r *Result) Display() string {
	if r.IsJSON {
		return r.Pretty
	}
	return string(r.Body)
}

// Outcome is a result-or-error union delivered by Runner.Start.
type Outcome struct {
	Result *Result
	Err    error
}

// marshalJSON encodes v without HTML escaping and without a trailing newline.
// U+2028 and U+2029 are still written as \u2028 and \u2029; the encoder has no
// switch for them.
func marshalJSON(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalIndentJSON is marshalJSON with two-space indentation.
func marshalIndentJSON(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
