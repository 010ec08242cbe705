package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/go-coders/proxy-probe/pkg/util"
)

// PlaceholderKey is the sentinel key shipped in examples; it must be replaced
// before a request is sent.
const PlaceholderKey = "<YOUR_GEMINI_LEZHI_API_KEY>"

const (
	DefaultURL       = "https://lezhi.deno.dev/api/v1/chat/completions"
	DefaultModel     = "gemini-2.0-flash"
	DefaultAudioPath = "./test_audio.mp3"
	DefaultMaxTokens = 500
	DefaultEnvFile   = ".env"
)

// ErrPlaceholderKey reports that no real API key was supplied.
var ErrPlaceholderKey = fmt.Errorf("please replace %s with your actual API key (-key or PROBE_API_KEY)", PlaceholderKey)

// Config represents the probe configuration
type Config struct {
	APIKey     string        `env:"PROBE_API_KEY" envDefault:"<YOUR_GEMINI_LEZHI_API_KEY>"`
	URL        string        `env:"PROBE_URL" envDefault:"https://lezhi.deno.dev/api/v1/chat/completions"`
	Model      string        `env:"PROBE_MODEL" envDefault:"gemini-2.0-flash"`
	TextOnly   bool          `env:"PROBE_TEXT_ONLY" envDefault:"true"`
	AudioPath  string        `env:"PROBE_AUDIO_PATH" envDefault:"./test_audio.mp3"`
	SynthAudio bool          `env:"PROBE_SYNTH_AUDIO"`
	MaxTokens  int           `env:"PROBE_MAX_TOKENS" envDefault:"500"`
	Prompt     string        `env:"PROBE_PROMPT"`
	Timeout    time.Duration `env:"PROBE_TIMEOUT" envDefault:"0s"`
	Debug      bool          `env:"PROBE_DEBUG"`
	Version    bool
}

// Load reads .env from the working directory, then the environment, then args.
func Load(args []string) (*Config, error) {
	return LoadFrom(DefaultEnvFile, args)
}

// LoadFrom is Load with an explicit dotenv path. A missing dotenv file is not
// an error.
func LoadFrom(envFile string, args []string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseFlags(args []string) error {
	flags := newFlagSet(c)
	flags.SetOutput(io.Discard)

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	return nil
}

func newFlagSet(c *Config) *flag.FlagSet {
	flags := flag.NewFlagSet("proxy-probe", flag.ContinueOnError)

	flags.StringVar(&c.APIKey, "key", c.APIKey, "API key sent as a bearer token")
	flags.StringVar(&c.URL, "url", c.URL, "chat completions endpoint of the proxy")
	flags.StringVar(&c.Model, "model", c.Model, "model alias")
	flags.BoolVar(&c.TextOnly, "text-only", c.TextOnly, "send a plain string instead of text+audio parts")
	flags.StringVar(&c.AudioPath, "audio", c.AudioPath, "audio file attached when not text-only")
	flags.BoolVar(&c.SynthAudio, "synth-audio", c.SynthAudio, "attach a synthesized spoken-digit clip instead of a file")
	flags.IntVar(&c.MaxTokens, "max-tokens", c.MaxTokens, "max_tokens sent with the request")
	flags.StringVar(&c.Prompt, "prompt", c.Prompt, "user prompt text")
	flags.DurationVar(&c.Timeout, "timeout", c.Timeout, "overall request timeout, 0 disables it")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	flags.BoolVar(&c.Version, "version", c.Version, "show version")

	return flags
}

// Usage writes the flag list with built-in defaults. Every flag can also be
// set through its PROBE_* environment variable.
func Usage(w io.Writer) {
	flags := newFlagSet(&Config{
		APIKey:    PlaceholderKey,
		URL:       DefaultURL,
		Model:     DefaultModel,
		TextOnly:  true,
		AudioPath: DefaultAudioPath,
		MaxTokens: DefaultMaxTokens,
	})
	flags.SetOutput(w)

	fmt.Fprintf(w, "Usage of proxy-probe:\n")
	flags.PrintDefaults()
}

// IsPlaceholderKey reports whether key is missing or still the sentinel value.
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	return key == "" || key == PlaceholderKey
}

// Validate returns every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if IsPlaceholderKey(c.APIKey) {
		result = multierror.Append(result, ErrPlaceholderKey)
	}
	if err := util.ValidateEndpoint(c.URL); err != nil {
		result = multierror.Append(result, err)
	}
	if strings.TrimSpace(c.Model) == "" {
		result = multierror.Append(result, errors.New("model alias is empty"))
	}
	if c.MaxTokens <= 0 {
		result = multierror.Append(result, fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens))
	}
	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}

	if result != nil {
		result.ErrorFormat = joinErrors
	}
	return result.ErrorOrNil()
}

// MaskedKey is the API key as it may appear in console output.
func (c *Config) MaskedKey() string {
	return util.MaskKey(c.APIKey, 8, 4)
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
