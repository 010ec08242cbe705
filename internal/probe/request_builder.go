package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"github.com/go-coders/proxy-probe/pkg/audio"
	"github.com/go-coders/proxy-probe/pkg/util"
)

const (
	DefaultTextPrompt  = "Hello, who are you?"
	DefaultAudioPrompt = "Please transcribe this audio file precisely."

	// redactKeep is how many characters of an embedded data URL survive in logs.
	redactKeep = 50
)

// ErrNoAudio is returned when a multimodal payload is requested without a clip.
var ErrNoAudio = errors.New("multimodal payload requires an audio source")

// PayloadOptions describes the single message the probe sends
type PayloadOptions struct {
	Model     string
	MaxTokens int
	TextOnly  bool
	Prompt    string
	Audio     *audio.Source
}

// BuildPayload builds the chat request. Text-only payloads carry the prompt as
// a plain string; otherwise the content is [text, audio_url].
func BuildPayload(opts PayloadOptions) (*ChatRequest, error) {
	var content Content
	if opts.TextOnly {
		content = TextContent(lo.CoalesceOrEmpty(opts.Prompt, DefaultTextPrompt))
	} else {
		if opts.Audio == nil {
			return nil, ErrNoAudio
		}
		content = PartsContent(
			TextPart(lo.CoalesceOrEmpty(opts.Prompt, DefaultAudioPrompt)),
			AudioPart(opts.Audio.DataURL()),
		)
	}

	return &ChatRequest{
		Model:     opts.Model,
		Messages:  []Message{{Role: RoleUser, Content: content}},
		MaxTokens: opts.MaxTokens,
	}, nil
}

// Encode serializes the payload exactly as it goes on the wire.
func Encode(req *ChatRequest) ([]byte, error) {
	body, err := marshalJSON(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return body, nil
}

// BuildRequest wraps an encoded body in a POST with bearer auth and an
// explicit Content-Length equal to the body's byte length.
func BuildRequest(ctx context.Context, endpoint, key string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.ContentLength = int64(len(body))
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(body)))

	return req, nil
}

// Redact returns a copy of req whose audio data URLs are cut to a short prefix.
func Redact(req *ChatRequest) *ChatRequest {
	redacted := *req
	redacted.Messages = lo.Map(req.Messages, func(m Message, _ int) Message {
		if m.Content.IsText() {
			return m
		}
		m.Content = PartsContent(lo.Map(m.Content.Parts, func(p ContentPart, _ int) ContentPart {
			if p.Type == PartTypeAudioURL && p.AudioURL != nil {
				return AudioPart(util.TruncatePrefix(p.AudioURL.URL, redactKeep) + "...")
			}
			return p
		})...)
		return m
	})
	return &redacted
}
