package segment

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

var (
	left  = image.Rect(20, 20, 60, 80)
	right = image.Rect(120, 20, 170, 80)
)

func page() gocv.Mat {
	m := gocv.NewMatWithSize(100, 200, gocv.MatTypeCV8UC3)
	m.SetTo(gocv.NewScalar(255, 255, 255, 0))
	black := color.RGBA{0, 0, 0, 0}
	gocv.Rectangle(&m, left, black, -1)
	gocv.Rectangle(&m, right, black, -1)
	return m
}

func checkRegions(t *testing.T, res *Result) {
	t.Helper()
	if len(res.Regions) != 2 {
		t.Fatalf("found %d regions, want 2", len(res.Regions))
	}
	if a, b := res.Regions[0].Box, res.Regions[1].Box; a.Overlaps(b) {
		t.Errorf("boxes %v and %v overlap", a, b)
	}
	var hitLeft, hitRight bool
	for _, r := range res.Regions {
		l := r.Box.Overlaps(left.Inset(-3))
		rr := r.Box.Overlaps(right.Inset(-3))
		if l && rr {
			t.Errorf("box %v spans both characters", r.Box)
		}
		hitLeft = hitLeft || l
		hitRight = hitRight || rr
		for _, v := range r.Crop {
			if v < 0 || v > 1 {
				t.Fatalf("crop value %v outside [0,1]", v)
			}
		}
		if b := r.Batch(); b[0][14][14][0] != r.Crop[14*28+14] {
			t.Errorf("batch does not match crop")
		}
	}
	if !hitLeft || !hitRight {
		t.Errorf("missed a character: %v", res.Regions)
	}
}

func TestSegment(t *testing.T) {
	m := page()
	defer m.Close()
	res, err := Segment(m)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()
	checkRegions(t, res)
	if res.Annotated.Rows() != 100 || res.Annotated.Cols() != 200 || res.Annotated.Channels() != 3 {
		t.Errorf("annotated image has a different shape")
	}
	// the input is left untouched
	if m.GetVecbAt(5, 5)[1] != 255 || m.GetVecbAt(20, 20)[1] != 0 {
		t.Errorf("input was drawn on")
	}
}

func TestSegmentFile(t *testing.T) {
	m := page()
	defer m.Close()
	path := filepath.Join(t.TempDir(), "page.png")
	if !gocv.IMWrite(path, m) {
		t.Fatal("cannot write fixture")
	}
	res, err := SegmentFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()
	checkRegions(t, res)

	if _, err := SegmentFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Errorf("missing file must fail")
	}
}

func TestSegmentImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 100))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, left, image.Black, image.Point{}, draw.Src)
	draw.Draw(img, right, image.Black, image.Point{}, draw.Src)
	res, err := SegmentImage(img)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()
	checkRegions(t, res)
}

func TestSegmentBlank(t *testing.T) {
	m := gocv.NewMatWithSize(50, 50, gocv.MatTypeCV8UC3)
	defer m.Close()
	m.SetTo(gocv.NewScalar(255, 255, 255, 0))
	res, err := Segment(m)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()
	if len(res.Regions) != 0 {
		t.Errorf("blank page has %d regions", len(res.Regions))
	}
}
