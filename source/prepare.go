package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG scans
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF scans
)

// Scan is a page image ready for OCR.
type Scan struct {
	// PNG is the grayscale image handed to the OCR engine
	PNG []byte

	// Bounds are the pixel bounds of PNG
	Bounds image.Rectangle

	// DPI is the effective resolution of PNG
	DPI float64
}

// PrepareScan decodes a PNG, JPEG or TIFF page, converts it to grayscale and
// upscales it to targetDPI when it was scanned at a lower resolution.
func PrepareScan(data []byte, dpi, targetDPI int) (*Scan, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode scan: %w", err)
	}
	if dpi <= 0 {
		dpi = 300
	}

	sb := src.Bounds()
	scale := 1.0
	if targetDPI > dpi {
		scale = float64(targetDPI) / float64(dpi)
	}
	dstRect := image.Rect(0, 0, int(float64(sb.Dx())*scale+0.5), int(float64(sb.Dy())*scale+0.5))
	dst := image.NewGray(dstRect)

	if scale == 1.0 {
		draw.Draw(dst, dstRect, src, sb.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dstRect, src, sb, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode scan: %w", err)
	}

	return &Scan{PNG: buf.Bytes(), Bounds: dstRect, DPI: float64(dpi) * scale}, nil
}
