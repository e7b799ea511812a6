package ocr

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	contrastFactor = 2.0
	sharpenSigma   = 2.0
	medianRadius   = 1 // 3x3 neighborhood
)

// Preprocess normalizes a receipt photo for OCR: grayscale, contrast and
// sharpness boost, then a 3x3 median filter to knock down sensor noise.
// Best-effort: on any internal failure the original image is returned
// unchanged so the pipeline can still attempt extraction.
func Preprocess(img image.Image) image.Image {
	if img == nil {
		return img
	}
	out, err := preprocess(img)
	if err != nil || out == nil {
		return img
	}
	return out
}

func preprocess(img image.Image) (res image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("preprocess: %v", r)
		}
	}()

	gray := imaging.Grayscale(img)

	// Linear contrast stretch around the midpoint, same shape as PIL's
	// Contrast.enhance(factor).
	gray = imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: stretch(c.R),
			G: stretch(c.G),
			B: stretch(c.B),
			A: c.A,
		}
	})

	gray = imaging.Sharpen(gray, sharpenSigma)

	return medianFilter(gray, medianRadius), nil
}

func stretch(v uint8) uint8 {
	f := 128 + contrastFactor*(float64(v)-128)
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}

// medianFilter replaces each pixel with the neighborhood median. The input is
// already grayscale so the red channel stands in for luminance.
func medianFilter(src *image.NRGBA, radius int) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	w, h := b.Dx(), b.Dy()
	window := make([]uint8, 0, (2*radius+1)*(2*radius+1))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window = window[:0]
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := clamp(x+dx, w-1), clamp(y+dy, h-1)
					window = append(window, src.Pix[ny*src.Stride+nx*4])
				}
			}
			m := median(window)
			i := y*dst.Stride + x*4
			dst.Pix[i] = m
			dst.Pix[i+1] = m
			dst.Pix[i+2] = m
			dst.Pix[i+3] = 0xff
		}
	}
	return dst
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// median sorts in place; windows are tiny so insertion sort is enough.
func median(vals []uint8) uint8 {
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0 && vals[j-1] > vals[j]; j-- {
			vals[j-1], vals[j] = vals[j], vals[j-1]
		}
	}
	return vals[len(vals)/2]
}
