package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
	"github.com/narayan09-boop/GroceryIntelligence/internal/ocr"
	"github.com/narayan09-boop/GroceryIntelligence/internal/parse"
)

// TextExtractor is the OCR stage: preprocessed image -> raw text.
type TextExtractor interface {
	Extract(ctx context.Context, img image.Image) (ocr.Result, error)
}

// Result is what one receipt scan produced. RawText is always populated when
// the engine ran, even if no items were recognized, so callers can show the
// extracted text for manual review. Distinguish outcomes by:
//
//	RawText == ""            -> no text extractable from the image
//	RawText != "", no Items  -> text extracted but no items recognized
type Result struct {
	Items    []entity.LineItem
	RawText  string
	Profile  string
	Fallback bool // the permissive salvage pass supplied the items
	Warnings []string
}

// Processor runs one receipt image through preprocess, multi-profile OCR,
// line parsing, fallback parsing, and deduplication. Stateless between
// invocations; safe for sequential reuse.
type Processor struct {
	extractor TextExtractor
	parser    *parse.Parser
	logger    *slog.Logger
}

func NewProcessor(extractor TextExtractor, parser *parse.Parser, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{extractor: extractor, parser: parser, logger: logger}
}

// Process turns a raw receipt image into a deduplicated item list. The only
// error it returns is an OCR engine failure; empty extraction or parse
// results are reported through the Result, not as errors.
func (p *Processor) Process(ctx context.Context, img image.Image) (Result, error) {
	pre := ocr.Preprocess(img)

	res, err := p.extractor.Extract(ctx, pre)
	if err != nil {
		return Result{}, fmt.Errorf("extract text: %w", err)
	}

	out := Result{RawText: res.Text, Profile: res.Profile, Warnings: res.Warnings}
	if strings.TrimSpace(res.Text) == "" {
		p.logger.Info("ocr produced no usable text", "profile", res.Profile)
		return out, nil
	}

	items := p.parser.Parse(res.Text)
	if len(items) == 0 {
		items = p.parser.ParseFallback(res.Text)
		out.Fallback = true
	}
	out.Items = parse.Dedupe(items)

	p.logger.Info("receipt processed",
		"profile", res.Profile,
		"lines", res.Lines,
		"items", len(out.Items),
		"fallback", out.Fallback,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return out, nil
}
