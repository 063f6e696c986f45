// Package imaging turns uploaded patient pictures into bounded WebP images.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	ContentType = "image/webp"
	quality     = 80
	// uploads larger than this are rejected before decoding
	MaxUploadBytes = 10 << 20
)

var ErrUnsupported = errors.New("imaging: unsupported or corrupt image")

type Image struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Process decodes r, scales it down so that neither side exceeds maxDim
// and re-encodes it as WebP. Smaller images keep their size.
func Process(r io.Reader, maxDim int) (Image, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("imaging: read: %w", err)
	}
	if len(raw) > MaxUploadBytes {
		return Image{}, fmt.Errorf("%w: larger than %d bytes", ErrUnsupported, MaxUploadBytes)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	dst := fit(src, maxDim)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: quality}); err != nil {
		return Image{}, fmt.Errorf("imaging: encode: %w", err)
	}

	b := dst.Bounds()
	return Image{
		Data:        buf.Bytes(),
		ContentType: ContentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

func fit(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return src
	}

	nw, nh := maxDim, maxDim
	if w >= h {
		nh = max(1, h*maxDim/w)
	} else {
		nw = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
