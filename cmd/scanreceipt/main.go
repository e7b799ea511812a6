package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/narayan09-boop/GroceryIntelligence/internal/categorize"
	"github.com/narayan09-boop/GroceryIntelligence/internal/nutrition"
	"github.com/narayan09-boop/GroceryIntelligence/internal/ocr"
	"github.com/narayan09-boop/GroceryIntelligence/internal/parse"
	"github.com/narayan09-boop/GroceryIntelligence/internal/pipeline"
)

// scanreceipt runs the extraction pipeline against a single image and prints
// the enriched items as JSON. Useful for tuning OCR settings on real receipts.
func main() {
	var (
		tesseract = flag.String("tesseract", "tesseract", "tesseract binary")
		language  = flag.String("lang", "eng", "OCR language")
		timeout   = flag.Duration("timeout", 2*time.Minute, "overall deadline")
		showText  = flag.Bool("text", false, "also print the raw extracted text")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "scanreceipt [flags] <image-path>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	img, err := imaging.Open(path)
	if err != nil {
		logger.Error("open image", "path", path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	extractor := ocr.NewExtractor(ocr.Config{Tesseract: *tesseract, Language: *language}, logger)
	processor := pipeline.NewProcessor(extractor, parse.NewParser(logger), logger)

	start := time.Now()
	res, err := processor.Process(ctx, img)
	if err != nil {
		logger.Error("processing failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	analyzer, err := nutrition.NewAnalyzer()
	if err != nil {
		logger.Error("load nutrition data", "error", err)
		os.Exit(1)
	}
	categorizer := categorize.NewCategorizer()

	type outItem struct {
		Item           string  `json:"item"`
		Price          float64 `json:"price"`
		Category       string  `json:"category"`
		NutritionScore int     `json:"nutrition_score"`
	}
	out := struct {
		Items    []outItem `json:"items"`
		Profile  string    `json:"profile"`
		Fallback bool      `json:"fallback"`
		RawText  string    `json:"raw_text,omitempty"`
	}{Items: []outItem{}, Profile: res.Profile, Fallback: res.Fallback}

	for _, it := range res.Items {
		out.Items = append(out.Items, outItem{
			Item:           it.Name,
			Price:          it.Price,
			Category:       string(categorizer.Categorize(it.Name)),
			NutritionScore: analyzer.Score(it.Name),
		})
	}
	if *showText {
		out.RawText = res.RawText
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}

	logger.Info("scan complete",
		"items", len(out.Items),
		"profile", res.Profile,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
