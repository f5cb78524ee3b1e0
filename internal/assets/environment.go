package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/tmo"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxEnvironmentWidth bounds the uploaded panorama width.
const DefaultMaxEnvironmentWidth = 2048

var (
	exrMagic      = []byte{0x76, 0x2f, 0x31, 0x01}
	radianceMagic = []byte("#?")
)

// DecodeEnvironment decodes an equirectangular panorama into RGBA,
// downsampling it when it is wider than maxWidth (0 disables the limit).
// Radiance HDR maps are tone-mapped into the displayable range.
func DecodeEnvironment(data []byte, maxWidth int) (*image.RGBA, error) {
	src, format, err := decodePanorama(data)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode %s: empty image", format)
	}

	w, h := b.Dx(), b.Dy()
	if maxWidth > 0 && w > maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	return dst, nil
}

func decodePanorama(data []byte) (image.Image, string, error) {
	switch {
	case bytes.HasPrefix(data, exrMagic):
		return nil, "", fmt.Errorf("%w: OpenEXR (convert to Radiance .hdr)", ErrUnsupportedFormat)
	case bytes.HasPrefix(data, radianceMagic):
		m, err := rgbe.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("decode radiance: %w", err)
		}
		return toneMap(m), "hdr", nil
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return src, format, nil
}

// toneMap compresses high dynamic range images with Reinhard's global
// operator. Other images pass through.
func toneMap(m image.Image) image.Image {
	hdrm, ok := m.(hdr.Image)
	if !ok {
		return m
	}
	return tmo.NewDefaultReinhard05(hdrm).Perform()
}
