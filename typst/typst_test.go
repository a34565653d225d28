package typst

import (
	"context"
	"image"
	"image/color"
	"os"
	"os/exec"
	"testing"
)

// whitePage returns a white image with a black rectangle drawn on it.
func whitePage(w, h int, ink image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if image.Pt(x, y).In(ink) {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestAutoCrop(t *testing.T) {
	cases := []struct {
		name   string
		ink    image.Rectangle
		margin int
		want   image.Rectangle
	}{
		{"margin", image.Rect(20, 20, 30, 25), 5, image.Rect(15, 15, 35, 30)},
		{"no margin", image.Rect(20, 20, 30, 25), 0, image.Rect(20, 20, 30, 25)},
		{"clamped", image.Rect(2, 2, 98, 48), 10, image.Rect(0, 0, 100, 50)},
		{"single pixel", image.Rect(40, 25, 41, 26), 1, image.Rect(39, 24, 42, 27)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img := whitePage(100, 50, c.ink)
			got, err := AutoCrop(img, c.margin)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("want crop %v, got %v", c.want, got)
			}
		})
	}
}

func TestAutoCropBlank(t *testing.T) {
	img := whitePage(10, 10, image.Rectangle{})
	if _, err := AutoCrop(img, 5); err == nil {
		t.Error("cropping a blank page: no error")
	}
}

func TestScale(t *testing.T) {
	img := whitePage(10, 20, image.Rect(0, 0, 10, 20))
	got := Scale(img, 2.0).Bounds()
	if got.Dx() != 20 || got.Dy() != 40 {
		t.Errorf("want 20x40, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestCompile(t *testing.T) {
	if _, err := exec.LookPath("typst"); err != nil {
		t.Skip("typst not installed")
	}
	dir := t.TempDir()
	p, err := Compile(context.Background(), "27 + 5 x", dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Errorf("compiled PNG missing: %v", err)
	}
}

func TestRender(t *testing.T) {
	if _, err := exec.LookPath("typst"); err != nil {
		t.Skip("typst not installed")
	}
	dir := t.TempDir()
	p, err := Render(context.Background(), "27 + 5 x", dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Errorf("rendered PNG missing: %v", err)
	}
}
