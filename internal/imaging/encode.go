package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// PNGDataURLPrefix starts every raster embedded in a snapshot.
const PNGDataURLPrefix = "data:image/png;base64,"

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodeBase64PNG returns img as standard base64 encoded PNG.
func EncodeBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeDataURL returns img as a PNG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	b64, err := EncodeBase64PNG(img)
	if err != nil {
		return "", err
	}
	return PNGDataURLPrefix + b64, nil
}

// DecodeDataURL decodes a PNG data URL produced by EncodeDataURL.
func DecodeDataURL(src string) (*image.NRGBA, error) {
	if !strings.HasPrefix(src, PNGDataURLPrefix) {
		return nil, fmt.Errorf("unsupported image source: missing %q prefix", PNGDataURLPrefix)
	}
	data, err := base64.StdEncoding.DecodeString(src[len(PNGDataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return Decode(bytes.NewReader(data))
}
