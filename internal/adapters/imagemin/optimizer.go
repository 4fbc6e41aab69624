// Package imagemin recompresses raster images with the standard library codecs.
package imagemin

import (
	"bytes"
	"context"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultJPEGQuality is the quality used when re-encoding JPEG images.
const DefaultJPEGQuality = 85

// Optimizer implements ports.ImageOptimizer. The smaller of the original and
// the re-encoded image is returned, so optimizing never grows a file.
type Optimizer struct {
	logger  ports.Logger
	quality int
}

// NewOptimizer creates an Optimizer.
func NewOptimizer(logger ports.Logger) *Optimizer {
	return &Optimizer{logger: logger, quality: DefaultJPEGQuality}
}

// Optimize recompresses JPEG, PNG and GIF images. Other formats are returned unchanged.
func (o *Optimizer) Optimize(ctx context.Context, name string, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		out []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		out, err = o.jpeg(src)
	case ".png":
		out, err = encodePNG(src)
	case ".gif":
		out, err = encodeGIF(src)
	default:
		o.logger.Debug("imagemin: leaving " + name + " as is")
		return src, nil
	}
	if err != nil {
		return nil, &domain.SourceError{Class: domain.ClassImages, File: name, Message: err.Error()}
	}

	if len(out) >= len(src) {
		return src, nil
	}
	return out, nil
}

func (o *Optimizer) jpeg(src []byte) ([]byte, error) {
	img, err := jpeg.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: o.quality}); err != nil {
		return nil, zerr.Wrap(err, domain.ErrTransformFailed.Error())
	}
	return buf.Bytes(), nil
}

func encodePNG(src []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	return encode(func(buf *bytes.Buffer) error {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(buf, img)
	})
}

func encodeGIF(src []byte) ([]byte, error) {
	g, err := gif.DecodeAll(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	return encode(func(buf *bytes.Buffer) error {
		return gif.EncodeAll(buf, g)
	})
}

func encode(fn func(buf *bytes.Buffer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return nil, zerr.Wrap(err, domain.ErrTransformFailed.Error())
	}
	return buf.Bytes(), nil
}

