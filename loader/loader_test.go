package loader

import (
	"image"
	"image/color"
	"testing"
)

func TestDownsampleSamplesTopLeftOfEachBlock(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	// Two 2x2 codel blocks, each flooded with a distinct color.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 0xFF, A: 0xFF})
			img.Set(x+2, y, color.RGBA{G: 0xFF, A: 0xFF})
		}
	}

	rows, err := Downsample(img, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("dims = %dx%d, want 1x2", len(rows), len(rows[0]))
	}
	if rows[0][0] != [3]uint8{0xFF, 0, 0} {
		t.Errorf("block 0 = %v, want red", rows[0][0])
	}
	if rows[0][1] != [3]uint8{0, 0xFF, 0} {
		t.Errorf("block 1 = %v, want green", rows[0][1])
	}
}

func TestDownsampleRejectsIndivisibleDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 4))
	if _, err := Downsample(img, 2); err == nil {
		t.Fatal("expected an error: width 5 is not divisible by codel size 2")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/to/image.png", 1); err == nil {
		t.Fatal("expected an error opening a nonexistent file")
	}
}
