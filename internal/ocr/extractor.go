package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/disintegration/imaging"
)

type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Language    string // default "eng"
	TessdataDir string
	WorkDir     string        // scratch dir for page artifacts; "" = system temp
	Timeout     time.Duration // deadline for the whole profile cascade; 0 = none
}

// Result is the outcome of one multi-profile extraction. Text may be empty
// when the engine ran but found nothing usable; that is not an error.
type Result struct {
	Text     string
	Profile  string
	Lines    int
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg      Config
	profiles []Profile
	runner   Runner
	logger   *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Extractor{cfg: cfg, profiles: DefaultProfiles, runner: newExecRunner(logger), logger: logger}
}

// Extract writes the image to a scratch file and runs every profile against
// it, keeping the output with the most non-blank lines. Ties go to the
// earliest profile. A profile failing is tolerated; every profile failing
// means the engine itself is broken and is returned as an error.
func (e *Extractor) Extract(ctx context.Context, img image.Image) (Result, error) {
	path, cleanup, err := e.writeArtifact(img)
	if err != nil {
		return Result{}, fmt.Errorf("write ocr artifact: %w", err)
	}
	defer cleanup()
	return e.ExtractFile(ctx, path)
}

// ExtractFile runs the profile cascade against an image already on disk.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	var best Result
	var errs []error
	ran := false

	for _, p := range e.profiles {
		out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, p.args(path, e.cfg)...)
		if err != nil {
			e.logger.Warn("ocr profile failed, skipping",
				"profile", p.Name, "error", err, "stderr", truncate(string(errb), 1<<10))
			best.Warnings = append(best.Warnings, fmt.Sprintf("profile %s: %v", p.Name, err))
			errs = append(errs, fmt.Errorf("profile %s: %w", p.Name, err))
			continue
		}
		txt := Normalize(string(out))
		n := CountLines(txt)
		e.logger.Debug("ocr profile done", "profile", p.Name, "lines", n, "bytes", len(txt))
		// strictly-greater keeps the earliest profile on ties
		if !ran || n > best.Lines {
			warns := best.Warnings
			best = Result{Text: txt, Profile: p.Name, Lines: n, Warnings: warns}
		}
		ran = true
	}

	if !ran {
		return Result{}, fmt.Errorf("ocr engine unavailable: %w", errors.Join(errs...))
	}

	if best.Lines == 0 {
		best.Text = ""
	}
	best.Duration = time.Since(start)
	return best, nil
}

func (e *Extractor) writeArtifact(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp(e.cfg.WorkDir, "receipt-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
