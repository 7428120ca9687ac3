package inkgen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxHeroWidth    = 1280
	heroJPEGQuality = 82
)

// Hero is a processed hero image ready to be written into the output
// assets directory.
type Hero struct {
	Name   string // output filename, always .jpg
	Width  int
	Height int
	Data   []byte
}

// processHeroImage decodes an image from src, scales it down to maxHeroWidth
// if wider, and re-encodes it as JPEG. Smaller images pass through the same
// encode so output format is uniform.
func processHeroImage(src io.Reader, originalName string) (Hero, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Hero{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxHeroWidth {
		newH := h * maxHeroWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxHeroWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxHeroWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: heroJPEGQuality}); err != nil {
		return Hero{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return Hero{
		Name:   heroOutputName(originalName),
		Width:  w,
		Height: h,
		Data:   buf.Bytes(),
	}, nil
}

// heroOutputName derives the deterministic output filename for a hero image
// reference: slugified base name plus .jpg.
func heroOutputName(ref string) string {
	base := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	ext := path.Ext(base)
	return Slugify(strings.TrimSuffix(base, ext)) + ".jpg"
}

// isRemoteRef reports whether a heroImage reference points outside the
// static dir and is served as-is.
func isRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
