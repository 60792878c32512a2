package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
)

// DefaultMaxBytes bounds uploaded selfie size
const DefaultMaxBytes = 512 * 1024

// Compress re-encodes an image as JPEG under maxBytes, stepping the
// quality down and halving the resolution until it fits. Inputs already
// within the bound that are valid JPEG pass through untouched.
func Compress(data []byte, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	if format == "jpeg" && len(data) <= maxBytes {
		return data, nil
	}

	for {
		for _, quality := range []int{85, 70, 55, 40} {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
				return nil, fmt.Errorf("failed to encode photo: %w", err)
			}
			if buf.Len() <= maxBytes {
				return buf.Bytes(), nil
			}
		}

		b := img.Bounds()
		if b.Dx() < 64 || b.Dy() < 64 {
			// Give up shrinking; send the smallest attempt.
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 40}); err != nil {
				return nil, fmt.Errorf("failed to encode photo: %w", err)
			}
			return buf.Bytes(), nil
		}
		img = halve(img)
	}
}

// halve downsamples an image to half resolution by point sampling
func halve(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()/2, b.Dy()/2))
	for y := 0; y < b.Dy()/2; y++ {
		for x := 0; x < b.Dx()/2; x++ {
			dst.Set(x, y, src.At(b.Min.X+x*2, b.Min.Y+y*2))
		}
	}
	return dst
}
