package macrobrief

import (
	"fmt"
	"strings"
	"time"
)

// Input carries the raw tab text of one issue.
//
// Meta, Points, Distribution and Price hold the CSV text of the four
// source tabs. Points is the only tab that must carry data; the others
// fall back to built-in defaults (Meta, Distribution) or are skipped
// entirely (Price).
type Input struct {
	Meta         string
	Points       string
	Distribution string
	Price        string

	// ImageBackend redirects image sources to an uploaded-asset store.
	// Nil leaves image resolution to the metadata sheet.
	ImageBackend *ImageBackend

	// PDF requests PDF bytes alongside the HTML document.
	PDF bool
}

// ImageBackend points synthesized image names at a hosted asset store.
type ImageBackend struct {
	Prefix    string // joined ahead of resolved sources, e.g. "https://cdn.example.com/issue42"
	Extension string // extension for synthesized names, e.g. "webp" (empty keeps "png")
}

// Validate checks that backend settings are valid.
// Returns nil if b is nil (nil means the sheet controls image resolution).
func (b *ImageBackend) Validate() error {
	if b == nil {
		return nil
	}
	if strings.ContainsAny(b.Extension, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidImageExtension, b.Extension)
	}
	return nil
}

// RenderResult carries the rendered issue and its headline numbers.
type RenderResult struct {
	HTML     string
	PDF      []byte      // nil unless Input.PDF was set
	Points   int         // content points rendered
	Segments int         // ownership distribution segments rendered
	Price    *PricePoint // nil when the price tab had no usable quote
}

// PricePoint is the latest recognized quote from the price tab.
type PricePoint struct {
	Price    float64
	Date     string
	Currency string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// Render timeout bounds.
const (
	MinTimeout     = 1 * time.Second
	MaxTimeout     = 10 * time.Minute
	defaultTimeout = 2 * time.Minute
)

// WithTimeout sets the PDF export timeout.
// Panics if d is outside [MinTimeout, MaxTimeout] (programmer error,
// similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d < MinTimeout || d > MaxTimeout {
		panic("macrobrief: WithTimeout duration must be between 1s and 10m")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// AssetLoader supplies the stylesheet and HTML shell of the document.
// The embedded newsletter assets are used unless a loader is injected.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// WithAssetLoader overrides where the stylesheet and shell come from.
func WithAssetLoader(loader AssetLoader) Option {
	return func(s *Service) {
		s.assets = loader
	}
}
