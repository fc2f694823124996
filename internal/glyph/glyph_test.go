package glyph

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/learningletters/scoreengine/internal/rasterbuf"
)

const canvasSize = 128

func TestRasterizeProducesCenteredInk(t *testing.T) {
	mask, err := Rasterize(goregular.TTF, 'A', canvasSize)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if mask.Count() == 0 {
		t.Fatal("rasterized 'A' has no ink")
	}

	box := rasterbuf.BinaryInkBounds(mask)
	if box.X0 < 0 || box.Y0 < 0 || box.X1 > canvasSize || box.Y1 > canvasSize {
		t.Errorf("ink box %s escapes the %d x %d canvas", box, canvasSize, canvasSize)
	}
	m := box.Width()
	if box.Height() > m {
		m = box.Height()
	}
	if want := canvasSize - MarginTotal; m > want+1 {
		t.Errorf("ink longer side = %d, want <= %d (N - MarginTotal)", m, want)
	}

	centerX := (box.X0 + box.X1) / 2
	centerY := (box.Y0 + box.Y1) / 2
	if diff := centerX - canvasSize/2; diff < -1 || diff > 1 {
		t.Errorf("ink not horizontally centered: %d vs %d", centerX, canvasSize/2)
	}
	if diff := centerY - canvasSize/2; diff < -1 || diff > 1 {
		t.Errorf("ink not vertically centered: %d vs %d", centerY, canvasSize/2)
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	a, err := Rasterize(goregular.TTF, 'g', canvasSize)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	b, err := Rasterize(goregular.TTF, 'g', canvasSize)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Rasterize is not deterministic at pixel %d", i)
			break
		}
	}
}

func TestRasterizeInvalidFont(t *testing.T) {
	_, err := Rasterize([]byte("not a font"), 'A', canvasSize)
	if !errors.Is(err, ErrInvalidFont) {
		t.Errorf("err = %v, want ErrInvalidFont", err)
	}
}

func TestRasterizeUnknownCharacter(t *testing.T) {
	// U+E000 is in the Private Use Area; gofont/goregular has no glyph there.
	_, err := Rasterize(goregular.TTF, '', canvasSize)
	if !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("err = %v, want ErrUnknownCharacter", err)
	}
}

func TestRasterizeSpaceIsEmptyGlyph(t *testing.T) {
	_, err := Rasterize(goregular.TTF, ' ', canvasSize)
	if !errors.Is(err, ErrEmptyGlyph) {
		t.Errorf("err = %v, want ErrEmptyGlyph", err)
	}
}

func TestRasterizeDigitsAndLetters(t *testing.T) {
	for _, r := range "0123456789ABCXYZabcxyz" {
		mask, err := Rasterize(goregular.TTF, r, canvasSize)
		if err != nil {
			t.Errorf("Rasterize(%q): %v", r, err)
			continue
		}
		if mask.Count() == 0 {
			t.Errorf("Rasterize(%q) produced no ink", r)
		}
	}
}
