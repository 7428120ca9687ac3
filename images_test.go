package inkgen

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func TestProcessHeroImageResizesWide(t *testing.T) {
	src := encodePNG(t, 2000, 1000)
	hero, err := processHeroImage(src, "images/Big Sky.png")
	if err != nil {
		t.Fatalf("processHeroImage failed: %v", err)
	}
	if hero.Width != maxHeroWidth {
		t.Errorf("Width = %d, want %d", hero.Width, maxHeroWidth)
	}
	if hero.Height != 640 {
		t.Errorf("Height = %d, want 640 (aspect ratio preserved)", hero.Height)
	}
	if hero.Name != "big-sky.jpg" {
		t.Errorf("Name = %q, want big-sky.jpg", hero.Name)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(hero.Data))
	if err != nil {
		t.Fatalf("output is not valid JPEG: %v", err)
	}
	if got := decoded.Bounds().Dx(); got != maxHeroWidth {
		t.Errorf("decoded width = %d, want %d", got, maxHeroWidth)
	}
}

func TestProcessHeroImageKeepsSmall(t *testing.T) {
	src := encodePNG(t, 640, 480)
	hero, err := processHeroImage(src, "thumb.png")
	if err != nil {
		t.Fatalf("processHeroImage failed: %v", err)
	}
	if hero.Width != 640 || hero.Height != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", hero.Width, hero.Height)
	}
}

func TestProcessHeroImageRejectsGarbage(t *testing.T) {
	if _, err := processHeroImage(bytes.NewReader([]byte("not an image")), "x.png"); err == nil {
		t.Fatal("expected an error for non-image data")
	}
}

func TestHeroOutputName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hero.png", "hero.jpg"},
		{"images/Big Sky.jpeg", "big-sky.jpg"},
		{"a\\b\\Photo_1.gif", "photo-1.jpg"},
	}
	for _, tt := range tests {
		if got := heroOutputName(tt.input); got != tt.expected {
			t.Errorf("heroOutputName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
