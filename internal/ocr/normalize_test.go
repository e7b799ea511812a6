package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "MILK 3.50\r\nBREAD 2.49\r\n", "MILK 3.50\nBREAD 2.49"},
		{"form feed", "\x0cMILK 3.50\x0c", "MILK 3.50"},
		{"tabs become spaces", "MILK\t\t3.50", "MILK 3.50"},
		{"blank runs collapse", "A\n\n\n\n\nB", "A\n\nB"},
		{"line trim", "  MILK 3.50  \n  BREAD 2.49", "MILK 3.50\nBREAD 2.49"},
		// internal multi-space runs are significant for tabular layouts
		{"keeps wide gaps", "BREAD    2.49", "BREAD    2.49"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestCountLines(t *testing.T) {
	assert.Zero(t, CountLines(""))
	assert.Zero(t, CountLines("\n  \n\t\n"))
	assert.Equal(t, 1, CountLines("MILK 3.50"))
	assert.Equal(t, 2, CountLines("MILK 3.50\n\nBREAD 2.49\n"))
}
