package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner serves canned per-PSM outputs in place of the tesseract binary.
type stubRunner struct {
	outputs map[string]string // psm value -> stdout
	errs    map[string]error  // psm value -> run error
	calls   []string
}

func (s *stubRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	psm := ""
	for i, a := range args {
		if a == "--psm" && i+1 < len(args) {
			psm = args[i+1]
		}
	}
	s.calls = append(s.calls, psm)
	if err, ok := s.errs[psm]; ok {
		return nil, []byte("boom"), err
	}
	return []byte(s.outputs[psm]), nil, nil
}

func newStubbedExtractor(r Runner) *Extractor {
	e := NewExtractor(Config{}, nil)
	e.runner = r
	return e
}

func TestExtractFilePicksProfileWithMostLines(t *testing.T) {
	stub := &stubRunner{outputs: map[string]string{
		"6": "MILK 3.50",
		"4": "MILK 3.50\nBREAD 2.49\nBANANA 1.29",
		"7": "MILK 3.50\nBREAD 2.49",
	}}
	e := newStubbedExtractor(stub)

	res, err := e.ExtractFile(context.Background(), "receipt.png")

	require.NoError(t, err)
	assert.Equal(t, "block", res.Profile)
	assert.Equal(t, 3, res.Lines)
	assert.Equal(t, "MILK 3.50\nBREAD 2.49\nBANANA 1.29", res.Text)
	assert.Equal(t, []string{"6", "4", "7"}, stub.calls, "profiles run in declared order")
}

func TestExtractFileTieGoesToEarliestProfile(t *testing.T) {
	stub := &stubRunner{outputs: map[string]string{
		"6": "MILK 3.50\nBREAD 2.49",
		"4": "EGGS 2.99\nJUICE 3.99",
		"7": "CHEESE 4.50\nYOGURT 1.25",
	}}
	e := newStubbedExtractor(stub)

	res, err := e.ExtractFile(context.Background(), "receipt.png")

	require.NoError(t, err)
	assert.Equal(t, "receipt", res.Profile)
	assert.Equal(t, "MILK 3.50\nBREAD 2.49", res.Text)
}

func TestExtractFileToleratesOneProfileFailing(t *testing.T) {
	stub := &stubRunner{
		outputs: map[string]string{"4": "MILK 3.50", "7": ""},
		errs:    map[string]error{"6": errors.New("exit status 1")},
	}
	e := newStubbedExtractor(stub)

	res, err := e.ExtractFile(context.Background(), "receipt.png")

	require.NoError(t, err)
	assert.Equal(t, "block", res.Profile)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "receipt")
}

func TestExtractFileAllProfilesFailingIsAnError(t *testing.T) {
	runErr := errors.New("executable file not found")
	stub := &stubRunner{errs: map[string]error{
		"6": runErr, "4": runErr, "7": runErr,
	}}
	e := newStubbedExtractor(stub)

	_, err := e.ExtractFile(context.Background(), "receipt.png")

	require.Error(t, err)
	assert.ErrorIs(t, err, runErr)
	assert.Contains(t, err.Error(), "ocr engine unavailable")
}

func TestExtractFileAllProfilesBlankYieldsEmptyTextNoError(t *testing.T) {
	stub := &stubRunner{outputs: map[string]string{
		"6": "", "4": "\n\n  \n", "7": "\x0c",
	}}
	e := newStubbedExtractor(stub)

	res, err := e.ExtractFile(context.Background(), "receipt.png")

	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.Zero(t, res.Lines)
}

func TestExtractFileNormalizesEngineOutput(t *testing.T) {
	stub := &stubRunner{outputs: map[string]string{
		"6": "MILK\t3.50\r\n\x0cBREAD  2.49\r\n",
	}}
	e := newStubbedExtractor(stub)

	res, err := e.ExtractFile(context.Background(), "receipt.png")

	require.NoError(t, err)
	assert.Equal(t, "MILK 3.50\nBREAD  2.49", res.Text)
	assert.Equal(t, 2, res.Lines)
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := newExecRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, _, err := r.Run(context.Background(), "no-such-ocr-binary", "in.png", "stdout")

	require.Error(t, err)
}

func TestProfileArgs(t *testing.T) {
	cfg := Config{Tesseract: "tesseract", Language: "eng", TessdataDir: "/opt/tessdata"}
	p := DefaultProfiles[0]

	args := p.args("in.png", cfg)

	assert.Equal(t, "in.png", args[0])
	assert.Equal(t, "stdout", args[1])
	assert.Contains(t, args, "--psm")
	assert.Contains(t, args, "--tessdata-dir")
	assert.Contains(t, args, "-c")
	joined := fmt.Sprint(args)
	assert.Contains(t, joined, "tessedit_char_whitelist=")
}
