// Package provider asks an AI text-generation service to describe a project
// layout. Everything it returns is untrusted and goes through
// structure.Decode before use.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/structure"
)

// Generator produces a project structure from a natural-language prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*structure.ProjectStructure, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (*structure.ProjectStructure, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (*structure.ProjectStructure, error) {
	return f(ctx, prompt)
}

// MaxResponseBytes caps the size of a provider response body.
const MaxResponseBytes = 1 << 20

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// Preset holds the endpoint defaults for a known provider.
type Preset struct {
	BaseURL     string
	Model       string
	KeyOptional bool
}

// Presets are the providers usable without an explicit base URL.
var Presets = map[string]Preset{
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
	},
	"openrouter": {
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "openai/gpt-4o-mini",
	},
	"ollama": {
		BaseURL:     "http://localhost:11434/v1",
		Model:       "llama3.1",
		KeyOptional: true,
	},
}

// Names returns the preset provider identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Options configures New.
type Options struct {
	// Provider is the provider identifier, e.g. "openai".
	Provider string

	APIKey string

	// Model overrides the preset model.
	Model string

	// BaseURL overrides the preset endpoint. Required for unknown providers.
	BaseURL string

	// Timeout bounds a single HTTP request. Zero means 60s.
	Timeout time.Duration

	// MaxAttempts bounds retries of transient failures. Zero means 3.
	MaxAttempts uint

	// RetryDelay is the initial backoff delay. Zero means 500ms.
	RetryDelay time.Duration

	// HTTPClient replaces the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// New returns a Generator for opts.Provider.
func New(opts Options) (Generator, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Provider))
	if name == "" {
		return nil, configError("no AI provider configured",
			fmt.Sprintf("Set \"provider\" in the config file or N_PROVIDER (one of %s).", strings.Join(Names(), ", ")))
	}

	preset, known := Presets[name]
	baseURL := strings.TrimRight(firstNonEmpty(opts.BaseURL, preset.BaseURL), "/")
	if baseURL == "" {
		return nil, configError(fmt.Sprintf("unknown AI provider %q", opts.Provider),
			fmt.Sprintf("Use one of %s, or set \"base_url\" for an OpenAI-compatible endpoint.", strings.Join(Names(), ", ")))
	}

	model := firstNonEmpty(opts.Model, preset.Model)
	if model == "" {
		return nil, configError(fmt.Sprintf("no model configured for provider %q", name), "Set \"model\" in the config file or N_MODEL.")
	}

	if opts.APIKey == "" && known && !preset.KeyOptional {
		return nil, configError(fmt.Sprintf("no API key configured for provider %q", name), "Set \"api_key\" in the config file or N_API_KEY.")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	attempts := opts.MaxAttempts
	if attempts == 0 {
		attempts = defaultMaxAttempts
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	return &Client{
		name:     name,
		baseURL:  baseURL,
		apiKey:   opts.APIKey,
		model:    model,
		http:     httpClient,
		attempts: attempts,
		delay:    delay,
	}, nil
}

func configError(message, hint string) error {
	return oerrors.NewConfigError(message, "", hint, nil)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
