package ocr

import "strconv"

// receiptWhitelist restricts the engine to the characters that actually occur
// on register tape: letters, digits, and price punctuation.
const receiptWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.,- $"

// Profile is one tesseract configuration: a page segmentation mode plus an
// optional character whitelist. Profiles are attempted in declaration order
// and that order doubles as the tie-break priority.
type Profile struct {
	Name      string
	PSM       int
	OEM       int
	Whitelist string
}

// DefaultProfiles covers the usual receipt layouts: dense register tape,
// free-form blocks, and single-line crops.
var DefaultProfiles = []Profile{
	{Name: "receipt", PSM: 6, OEM: 3, Whitelist: receiptWhitelist},
	{Name: "block", PSM: 4, OEM: 3},
	{Name: "line", PSM: 7, OEM: 3},
}

// args builds the tesseract invocation for this profile:
// tesseract <file> stdout -l <lang> --oem N --psm N [-c tessedit_char_whitelist=...]
func (p Profile) args(path string, cfg Config) []string {
	out := []string{path, "stdout", "-l", cfg.Language}
	if p.OEM > 0 {
		out = append(out, "--oem", strconv.Itoa(p.OEM))
	}
	if p.PSM > 0 {
		out = append(out, "--psm", strconv.Itoa(p.PSM))
	}
	if cfg.TessdataDir != "" {
		out = append(out, "--tessdata-dir", cfg.TessdataDir)
	}
	if p.Whitelist != "" {
		out = append(out, "-c", "tessedit_char_whitelist="+p.Whitelist)
	}
	return out
}
