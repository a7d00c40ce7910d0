package macrobrief

import (
	"context"
	"fmt"

	"github.com/globalite/go-macrobrief/internal/assets"
	"github.com/globalite/go-macrobrief/internal/render"
	"github.com/globalite/go-macrobrief/internal/sheet"
	"github.com/globalite/go-macrobrief/internal/tabular"
)

// Service orchestrates the sheets-to-newsletter pipeline.
type Service struct {
	cfg      serviceConfig
	assets   AssetLoader
	exporter pdfExporter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Embedded newsletter assets unless a loader was injected
	if s.assets == nil {
		s.assets = assets.NewEmbeddedLoader()
	}

	// Create PDF exporter if not injected (e.g., by tests)
	if s.exporter == nil {
		s.exporter = newRodExporter(s.cfg.timeout)
	}

	return s
}

// Render reads the four tabs, assembles the issue, and returns the
// document. The context is used for cancellation and timeout.
func (s *Service) Render(ctx context.Context, input Input) (*RenderResult, error) {
	if err := input.ImageBackend.Validate(); err != nil {
		return nil, err
	}

	// Read metadata over the built-in defaults
	meta := sheet.ReadMeta(tabular.Parse(input.Meta), sheet.DefaultMeta())

	// Read and validate the numbered content points
	points, err := sheet.ReadPoints(tabular.Parse(input.Points))
	if err != nil {
		return nil, err
	}

	// Read the ownership distribution, normalized against max supply
	maxSupply := sheet.ParseNumber(meta["max_supply_btc"], sheet.DefaultMaxSupply)
	distribution, err := sheet.ReadDistribution(tabular.Parse(input.Distribution), maxSupply)
	if err != nil {
		return nil, err
	}

	// Read the latest price quote (optional tab)
	price, err := sheet.ReadPrice(tabular.Parse(input.Price))
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	shell, err := s.assets.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document shell: %w", err)
	}
	css, err := s.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}

	html, err := render.Document(render.Doc{
		Meta:         meta,
		Points:       points,
		Distribution: distribution,
		Price:        price,
		Images:       toImageOptions(input.ImageBackend),
		Shell:        shell,
		CSS:          css,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	result := &RenderResult{
		HTML:     html,
		Points:   len(points),
		Segments: len(distribution),
		Price:    toPricePoint(price),
	}

	if input.PDF {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		pdf, err := s.exporter.Export(ctx, html)
		if err != nil {
			return nil, fmt.Errorf("exporting PDF: %w", err)
		}
		result.PDF = pdf
	}

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.exporter != nil {
		return s.exporter.Close()
	}
	return nil
}

// toImageOptions converts the public ImageBackend to renderer options.
func toImageOptions(b *ImageBackend) render.ImageOptions {
	if b == nil {
		return render.ImageOptions{}
	}
	return render.ImageOptions{
		BackendEnabled:   true,
		BackendPrefix:    b.Prefix,
		BackendExtension: b.Extension,
	}
}

// toPricePoint converts the internal price record to the public type.
func toPricePoint(p *sheet.PricePoint) *PricePoint {
	if p == nil {
		return nil
	}
	return &PricePoint{
		Price:    p.Price,
		Date:     p.Date,
		Currency: p.Currency,
	}
}
