package probe

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-coders/proxy-probe/pkg/util"
)

// announce prints what is about to be sent. Audio data is truncated.
func (r *Runner) announce(payload *ChatRequest) error {
	p := r.printer
	if r.cfg.TextOnly {
		p.Println("Configured for text-only request.")
	} else if r.audio != nil {
		if r.audio.Digits != "" {
			p.Printf("%s Synthesized spoken digits: %s\n", util.EmojiAudio, r.audio.Digits)
		}
		p.Printf("Read and base64 encoded audio file %s (%d chars).\n", r.audio.Name, len(r.audio.Base64()))
	}

	redacted, err := marshalIndentJSON(Redact(payload))
	if err != nil {
		return fmt.Errorf("failed to render payload: %w", err)
	}

	p.Printf("Sending request to: %s\n", r.cfg.URL)
	p.Printf("Payload structure (audio data truncated if present): %s\n", redacted)
	return nil
}

// printStatus runs as soon as the response headers arrive, before the body is read.
func printStatus(p *util.Printer, statusCode int) {
	p.Printf("Status Code: %d\n", statusCode)
}

func printResult(p *util.Printer, result *Result) {
	p.Println("Response Body:")
	p.Println(result.Display())

	if result.Summary != "" {
		p.PrintWarning(result.Summary)
	}
	if result.Reply != "" {
		p.PrintHint(fmt.Sprintf("reply: %s (%s)", result.Reply, result.Latency.Round(time.Millisecond)))
	}
}

// ReportError prints err under the heading matching its class.
func ReportError(p *util.Printer, err error) {
	var (
		configErr    *ConfigError
		payloadErr   *PayloadError
		transportErr *TransportError
	)

	switch {
	case errors.As(err, &configErr):
		p.PrintError(fmt.Sprintf("Error: %v", configErr.Err))
	case errors.As(err, &payloadErr):
		p.PrintError(fmt.Sprintf("Script execution error: %v", payloadErr.Err))
	case errors.As(err, &transportErr):
		p.PrintError(fmt.Sprintf("Request Error: %v", transportErr.Err))
	default:
		p.PrintError(fmt.Sprintf("Error: %v", err))
	}
}
