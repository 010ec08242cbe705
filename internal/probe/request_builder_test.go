package probe

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-coders/proxy-probe/pkg/audio"
)

func decodeContent(t *testing.T, body []byte) any {
	t.Helper()
	var payload struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content any    `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Messages, 1)
	assert.Equal(t, RoleUser, payload.Messages[0].Role)
	return payload.Messages[0].Content
}

func TestBuildPayload(t *testing.T) {
	clip := &audio.Source{Data: []byte("fake mp3 bytes"), MIMEType: "audio/mp3"}

	tests := []struct {
		name    string
		opts    PayloadOptions
		wantErr error
		check   func(*testing.T, any)
	}{
		{
			name: "Text only sends a string",
			opts: PayloadOptions{Model: "gemini-2.0-flash", MaxTokens: 500, TextOnly: true},
			check: func(t *testing.T, content any) {
				assert.Equal(t, DefaultTextPrompt, content)
			},
		},
		{
			name: "Text only ignores audio",
			opts: PayloadOptions{Model: "m", MaxTokens: 1, TextOnly: true, Prompt: "ping", Audio: clip},
			check: func(t *testing.T, content any) {
				assert.Equal(t, "ping", content)
			},
		},
		{
			name: "Multimodal sends text then audio_url",
			opts: PayloadOptions{Model: "m", MaxTokens: 1, Audio: clip},
			check: func(t *testing.T, content any) {
				parts, ok := content.([]any)
				require.True(t, ok, "content should be an array, got %T", content)
				require.Len(t, parts, 2)

				first := parts[0].(map[string]any)
				assert.Equal(t, "text", first["type"])
				assert.Equal(t, DefaultAudioPrompt, first["text"])

				second := parts[1].(map[string]any)
				assert.Equal(t, "audio_url", second["type"])
				audioURL := second["audio_url"].(map[string]any)
				assert.Equal(t, clip.DataURL(), audioURL["url"])
			},
		},
		{
			name:    "Multimodal without audio",
			opts:    PayloadOptions{Model: "m", MaxTokens: 1},
			wantErr: ErrNoAudio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := BuildPayload(tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			body, err := Encode(payload)
			require.NoError(t, err)
			tt.check(t, decodeContent(t, body))
		})
	}
}

func TestEncode_WireFormat(t *testing.T) {
	payload, err := BuildPayload(PayloadOptions{Model: "gemini-2.0-flash", MaxTokens: 500, TextOnly: true, Prompt: "<b> & co"})
	require.NoError(t, err)

	body, err := Encode(payload)
	require.NoError(t, err)
	assert.Equal(t,
		`{"model":"gemini-2.0-flash","messages":[{"role":"user","content":"<b> & co"}],"max_tokens":500}`,
		string(body))
}

func TestEncode_LineSeparatorsEscaped(t *testing.T) {
	payload, err := BuildPayload(PayloadOptions{Model: "m", MaxTokens: 1, TextOnly: true, Prompt: "a\u2028b\u2029c"})
	require.NoError(t, err)

	body, err := Encode(payload)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"content":"a\u2028b\u2029c"`)

	req, err := BuildRequest(context.Background(), "https://lezhi.deno.dev"+completionsPath, "k", body)
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), req.ContentLength)
	assert.Equal(t, "a\u2028b\u2029c", decodeContent(t, body))
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{name: "ASCII prompt", prompt: "Hello, who are you?"},
		{name: "Multi-byte prompt", prompt: "你好，你是谁？ こんにちは 🎧"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := BuildPayload(PayloadOptions{Model: "m", MaxTokens: 500, TextOnly: true, Prompt: tt.prompt})
			require.NoError(t, err)
			body, err := Encode(payload)
			require.NoError(t, err)

			req, err := BuildRequest(context.Background(), "https://lezhi.deno.dev"+completionsPath, "sk-test", body)
			require.NoError(t, err)

			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			assert.Equal(t, int64(len(body)), req.ContentLength)
			assert.Equal(t, strconv.Itoa(len(body)), req.Header.Get("Content-Length"))

			sent, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.Equal(t, body, sent)

			if strings.ContainsFunc(tt.prompt, func(r rune) bool { return r >= utf8.RuneSelf }) {
				assert.Greater(t, len(body), utf8.RuneCount(body))
			}
		})
	}
}

func TestBuildRequest_InvalidURL(t *testing.T) {
	_, err := BuildRequest(context.Background(), "://bad", "k", nil)
	assert.Error(t, err)
}

func TestRedact(t *testing.T) {
	clip := &audio.Source{Data: []byte(strings.Repeat("a", 300)), MIMEType: "audio/mp3"}
	payload, err := BuildPayload(PayloadOptions{Model: "m", MaxTokens: 1, Audio: clip})
	require.NoError(t, err)

	redacted := Redact(payload)

	got := redacted.Messages[0].Content.Parts[1].AudioURL.URL
	assert.Equal(t, clip.DataURL()[:redactKeep]+"...", got)
	assert.Equal(t, DefaultAudioPrompt, redacted.Messages[0].Content.Parts[0].Text)

	// original payload is untouched
	assert.Equal(t, clip.DataURL(), payload.Messages[0].Content.Parts[1].AudioURL.URL)
}

func TestRedact_TextOnly(t *testing.T) {
	payload, err := BuildPayload(PayloadOptions{Model: "m", MaxTokens: 1, TextOnly: true})
	require.NoError(t, err)

	redacted := Redact(payload)
	assert.True(t, redacted.Messages[0].Content.IsText())
	assert.Equal(t, DefaultTextPrompt, redacted.Messages[0].Content.Text)
}
