package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService scales cover art for display.
//
// Example usage:
//
//	svc := NewImageService()
//	data, _ := store.OpenCover(track.CoverID)
//	thumb, err := svc.Thumbnail(ctx, data, 24, 24)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Thumbnail decodes data and scales it to fit within maxWidth x maxHeight,
// preserving the aspect ratio. Images are scaled up as well as down so the
// result always touches the bounding box on one side.
//
// The Catmull-Rom kernel is used for scaling.
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, maxWidth, maxHeight int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, nil
}

// fitWithin returns the largest size with the aspect ratio of w x h that
// fits in maxW x maxH. Degenerate sizes collapse to 1x1.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 1, 1
	}
	ratio := float64(w) / float64(h)
	if float64(maxW)/float64(maxH) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxH)*ratio)), maxH
	}
	// Width is the limiting factor
	return maxW, max(1, int(float64(maxW)/ratio))
}
