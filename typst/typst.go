// Package typst turns expression markup into terminal images.
//
// The pipeline writes markup to a .typ file, compiles it to PNG with the
// external typst compiler, crops the page to its content, scales it up
// for legibility, and displays it with iTerm2's imgcat. The algebra
// package itself performs no I/O; everything process- and file-shaped
// lives here.
package typst

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/image/draw"
)

// Render pipeline constants.
const (
	// cropMargin is the whitespace border kept around the content, in
	// pixels.
	cropMargin = 10
	// scaleFactor enlarges the cropped image for terminal display.
	scaleFactor = 2.0
)

// Compile writes the markup to expression.typ in dir and compiles it to
// output.png with the typst command. It returns the path of the PNG.
func Compile(ctx context.Context, markup, dir string) (string, error) {
	typPath := filepath.Join(dir, "expression.typ")
	if err := os.WriteFile(typPath, []byte(markup+"\n\n"), 0o644); err != nil {
		return "", err
	}
	pngPath := filepath.Join(dir, "output.png")
	cmd := exec.CommandContext(ctx, "typst", "compile", typPath, pngPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("typst failed: %s", stderr.String())
	}
	return pngPath, nil
}

// AutoCrop returns the bounding box of the non-white pixels of img,
// expanded by margin on each side and clamped to the image bounds. It
// returns an error when every pixel is white.
func AutoCrop(img image.Image, margin int) (image.Rectangle, error) {
	b := img.Bounds()
	crop := image.Rectangle{Min: b.Max, Max: b.Min}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r == 0xffff && g == 0xffff && bl == 0xffff && a == 0xffff {
				continue
			}
			if x < crop.Min.X {
				crop.Min.X = x
			}
			if y < crop.Min.Y {
				crop.Min.Y = y
			}
			if x+1 > crop.Max.X {
				crop.Max.X = x + 1
			}
			if y+1 > crop.Max.Y {
				crop.Max.Y = y + 1
			}
		}
	}
	if crop.Empty() {
		return image.Rectangle{}, errors.New("no content found in the image")
	}
	crop.Min.X -= margin
	crop.Min.Y -= margin
	crop.Max.X += margin
	crop.Max.Y += margin
	return crop.Intersect(b), nil
}

// Scale resamples img by factor with Catmull-Rom interpolation.
func Scale(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*factor), int(float64(b.Dy())*factor)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Render compiles markup in dir and post-processes the PNG: crop to
// content with a small margin, then scale up. It returns the path of the
// processed image.
func Render(ctx context.Context, markup, dir string) (string, error) {
	pngPath, err := Compile(ctx, markup, dir)
	if err != nil {
		return "", err
	}
	f, err := os.Open(pngPath)
	if err != nil {
		return "", err
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return "", err
	}
	crop, err := AutoCrop(img, cropMargin)
	if err != nil {
		return "", err
	}
	cropped := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Copy(cropped, image.Point{}, img, crop, draw.Src, nil)
	scaled := Scale(cropped, scaleFactor)
	outPath := filepath.Join(dir, "trimmed_output.png")
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(out, scaled); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}

// FindImgcat locates the imgcat executable, checking iTerm2's standard
// install location before PATH. It returns an error when imgcat is not
// available.
func FindImgcat() (string, error) {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".iterm2", "imgcat")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return exec.LookPath("imgcat")
}

// Display shows the image at path in the terminal using imgcat.
func Display(ctx context.Context, imgcat, path string) error {
	cmd := exec.CommandContext(ctx, imgcat, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("imgcat failed: %w", err)
	}
	return nil
}
