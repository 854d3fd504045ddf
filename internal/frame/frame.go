// Package frame turns a rendered canvas into a portable text token and back.
//
// The producer side compresses the canvas as PNG and base64-encodes it:
//
//	exp := frame.NewExporter()
//	token, err := exp.Token(sim.Canvas())
//
// The consumer side reverses both steps with [DecodeToken].
package frame

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/san-kum/fluidsim/internal/codec"
	"github.com/san-kum/fluidsim/internal/field"
)

var (
	// ErrCompression indicates the canvas could not be PNG-encoded.
	ErrCompression = errors.New("frame: compression failed")

	// ErrNotImage indicates a decoded token did not hold a PNG image.
	ErrNotImage = errors.New("frame: token is not an image")
)

// Exporter PNG-encodes canvases. It reuses its image and output buffers
// between calls and is not safe for concurrent use.
type Exporter struct {
	enc png.Encoder
	buf bytes.Buffer
	img *image.NRGBA
}

type ExportOption func(*Exporter)

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) ExportOption {
	return func(e *Exporter) { e.enc.CompressionLevel = level }
}

func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{enc: png.Encoder{CompressionLevel: png.BestSpeed}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export returns the PNG bytes of c. The canvas is only read.
func (e *Exporter) Export(c *field.Canvas) ([]byte, error) {
	if c == nil || c.Width() <= 0 || c.Height() <= 0 || len(c.Pix) != c.Stride()*c.Height() {
		return nil, fmt.Errorf("%w: unsupported canvas layout", ErrCompression)
	}

	if e.img == nil || e.img.Rect.Dx() != c.Width() || e.img.Rect.Dy() != c.Height() {
		e.img = image.NewNRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	}
	fillNRGBA(e.img, c)

	e.buf.Reset()
	if err := e.enc.Encode(&e.buf, e.img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	return bytes.Clone(e.buf.Bytes()), nil
}

// Token returns the base64 text of Export(c).
func (e *Exporter) Token(c *field.Canvas) (string, error) {
	data, err := e.Export(c)
	if err != nil {
		return "", err
	}
	return codec.Encode(data), nil
}

// CanvasImage copies c into an opaque RGB image.
func CanvasImage(c *field.Canvas) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	fillNRGBA(img, c)
	return img
}

func fillNRGBA(img *image.NRGBA, c *field.Canvas) {
	for y := 0; y < c.Height(); y++ {
		src := c.Pix[y*c.Stride():]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < c.Width(); x++ {
			// canvas is BGR
			dst[4*x] = src[3*x+2]
			dst[4*x+1] = src[3*x+1]
			dst[4*x+2] = src[3*x]
			dst[4*x+3] = 0xFF
		}
	}
}

// DecodeToken reverses Exporter.Token. Codec errors are returned as is so
// callers can match codec.ErrInvalidLength and codec.ErrInvalidCharacter.
func DecodeToken(token string) (image.Image, error) {
	data, err := codec.DecodeString(token)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotImage, err)
	}
	return img, nil
}
