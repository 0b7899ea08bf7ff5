package quiz

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample.yaml
var sampleYAML []byte

var (
	ErrUnknownFormat = errors.New("unknown quiz format")
	ErrFetch         = errors.New("quiz fetch failed")
)

// Format is the serialization of a quiz definition.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// SourceOptions tunes remote quiz fetching.
type SourceOptions struct {
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

// DefaultSourceOptions returns the fetch settings used when none are configured.
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Timeout:   10 * time.Second,
		Retries:   3,
		RetryWait: 500 * time.Millisecond,
	}
}

// Sample returns the built-in example quiz.
func Sample() (Quiz, error) {
	return Decode(sampleYAML, FormatYAML)
}

// Load resolves a quiz source: empty means the built-in sample, an http(s)
// URL is fetched, anything else is read as a file.
func Load(ctx context.Context, source string, opts SourceOptions) (Quiz, error) {
	switch {
	case source == "":
		return Sample()
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return LoadURL(ctx, source, opts)
	default:
		return LoadFile(source)
	}
}

// LoadFile reads a quiz file, picking the decoder from its extension.
func LoadFile(path string) (Quiz, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Quiz{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Quiz{}, fmt.Errorf("failed to read quiz file: %w", err)
	}

	return Decode(data, format)
}

// LoadURL fetches a quiz over HTTP with retries on transport errors and 5xx.
func LoadURL(ctx context.Context, url string, opts SourceOptions) (Quiz, error) {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() >= 500
		})

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json, application/yaml;q=0.9").
		Get(url)
	if err != nil {
		return Quiz{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.IsError() {
		return Quiz{}, fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status())
	}

	return Decode(resp.Body(), FormatFromContentType(resp.Header().Get("Content-Type")))
}

// Decode parses and validates a quiz definition.
func Decode(data []byte, format Format) (Quiz, error) {
	var q Quiz
	var err error
	switch format {
	case FormatJSON:
		err = sonic.Unmarshal(data, &q)
	case FormatYAML:
		err = yaml.Unmarshal(data, &q)
	case FormatTOML:
		err = toml.Unmarshal(data, &q)
	default:
		return Quiz{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Quiz{}, fmt.Errorf("failed to decode %s quiz: %w", format, err)
	}

	if err := q.Validate(); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// FormatFromPath maps a file extension to a format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// FormatFromContentType maps a response content type to a format, defaulting to JSON.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatJSON
	}
	switch {
	case strings.Contains(mediaType, "yaml"):
		return FormatYAML
	case strings.Contains(mediaType, "toml"):
		return FormatTOML
	default:
		return FormatJSON
	}
}
