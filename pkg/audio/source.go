package audio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dchest/captcha"
	"github.com/gabriel-vasile/mimetype"
)

// fallbackMIME is the label the proxy expects for MPEG audio.
const fallbackMIME = "audio/mp3"

// ErrNotFound is returned when the configured audio file does not exist.
var ErrNotFound = errors.New("audio file not found")

// Source is an audio clip ready to be embedded in a chat request.
type Source struct {
	Data     []byte
	MIMEType string
	Name     string
	// Digits holds the spoken digits of a synthesized clip.
	Digits string
}

// FromFile reads an audio file and detects its MIME type from content.
func FromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return &Source{
		Data:     data,
		MIMEType: detectMIME(data),
		Name:     path,
	}, nil
}

// Synthesize renders length random digits as a spoken WAV clip.
func Synthesize(length int, lang string) (*Source, error) {
	if length <= 0 {
		return nil, fmt.Errorf("digit count must be positive, got %d", length)
	}
	digits := captcha.RandomDigits(length)

	buffer := new(bytes.Buffer)
	if _, err := captcha.NewAudio("", digits, lang).WriteTo(buffer); err != nil {
		return nil, fmt.Errorf("failed to synthesize audio: %w", err)
	}

	var spoken strings.Builder
	for _, d := range digits {
		spoken.WriteByte('0' + d)
	}

	return &Source{
		Data:     buffer.Bytes(),
		MIMEType: "audio/wav",
		Name:     "synthesized",
		Digits:   spoken.String(),
	}, nil
}

// Base64 returns the standard base64 encoding of the clip.
func (s *Source) Base64() string {
	return base64.StdEncoding.EncodeToString(s.Data)
}

// DataURL returns the clip as a data: URL.
func (s *Source) DataURL() string {
	return "data:" + s.MIMEType + ";base64," + s.Base64()
}

func detectMIME(data []byte) string {
	mt := mimetype.Detect(data)
	if mt.Is("audio/mpeg") {
		return fallbackMIME
	}
	if strings.HasPrefix(mt.String(), "audio/") {
		return mt.String()
	}
	return fallbackMIME
}
