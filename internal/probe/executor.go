package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/go-coders/proxy-probe/pkg/audio"
	"github.com/go-coders/proxy-probe/pkg/config"
	"github.com/go-coders/proxy-probe/pkg/logger"
	"github.com/go-coders/proxy-probe/pkg/util"
)

// Runner sends the probe request exactly once
type Runner struct {
	cfg       *config.Config
	audio     *audio.Source
	client    HTTPClient
	processor ResponseProcessor
	printer   *util.Printer
}

// RunnerOption defines a function type for configuring Runner
type RunnerOption func(*Runner)

// WithClient sets the HTTP client
func WithClient(client HTTPClient) RunnerOption {
	return func(r *Runner) {
		r.client = client
	}
}

// WithResponseProcessor sets the response processor
func WithResponseProcessor(processor ResponseProcessor) RunnerOption {
	return func(r *Runner) {
		r.processor = processor
	}
}

// WithPrinter sets the printer
func WithPrinter(printer *util.Printer) RunnerOption {
	return func(r *Runner) {
		r.printer = printer
	}
}

// WithAudio attaches the clip used for multimodal payloads
func WithAudio(src *audio.Source) RunnerOption {
	return func(r *Runner) {
		r.audio = src
	}
}

// NewRunner creates a Runner. The default client only times out when
// cfg.Timeout is set.
func NewRunner(cfg *config.Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		processor: NewResponseProcessor(),
		printer:   util.NewPrinter(nil),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run performs the single exchange. The placeholder check happens before any
// I/O, and a failed request is returned as a *TransportError without retry.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if config.IsPlaceholderKey(r.cfg.APIKey) {
		return nil, &ConfigError{Err: config.ErrPlaceholderKey}
	}

	payload, err := BuildPayload(PayloadOptions{
		Model:     r.cfg.Model,
		MaxTokens: r.cfg.MaxTokens,
		TextOnly:  r.cfg.TextOnly,
		Prompt:    r.cfg.Prompt,
		Audio:     r.audio,
	})
	if err != nil {
		return nil, &PayloadError{Err: err}
	}

	body, err := Encode(payload)
	if err != nil {
		return nil, &PayloadError{Err: err}
	}

	req, err := BuildRequest(ctx, r.cfg.URL, r.cfg.APIKey, body)
	if err != nil {
		return nil, &PayloadError{Err: err}
	}

	if err := r.announce(payload); err != nil {
		return nil, &PayloadError{Err: err}
	}
	logger.Debug("POST %s key=%s bytes=%d", r.cfg.URL, r.cfg.MaskedKey(), len(body))

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	printStatus(r.printer, resp.StatusCode)

	result, err := r.processor.ProcessResponse(resp)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	result.Latency = time.Since(start)
	logger.Debug("status=%d bytes=%d json=%t latency=%s", result.StatusCode, len(result.Body), result.IsJSON, result.Latency)

	printResult(r.printer, result)
	return result, nil
}

// Start runs the exchange in the background. The channel yields exactly one
// Outcome and is then closed.
func (r *Runner) Start(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		result, err := r.Run(ctx)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}
