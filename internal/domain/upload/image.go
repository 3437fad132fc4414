package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	// webp sources are decoded through image.Decode
	_ "golang.org/x/image/webp"
)

// OutputMimeType is the format every upload is re-encoded to.
const OutputMimeType = "image/jpeg"

var allowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
}

// AllowedMimeTypes returns the accepted source types.
func AllowedMimeTypes() []string {
	out := make([]string, len(allowedMimeTypes))
	copy(out, allowedMimeTypes)
	return out
}

// sniff detects the content type from the bytes and checks it against the
// allow-list. Client supplied Content-Type headers are ignored.
func sniff(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for _, allowed := range allowedMimeTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return mt.String(), ErrUnsupportedMediaType
}

// optimize caps the width (never upscales), flattens transparency onto
// white and encodes as JPEG.
func optimize(data []byte, maxWidth, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	size := img.Bounds().Size()
	canvas := imaging.New(size.X, size.Y, color.White)
	flat := imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
