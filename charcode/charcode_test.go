package charcode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeOneHot(t *testing.T) {
	cases := []struct {
		vector []float32
		offset int
		want   string
	}{
		{[]float32{0, 0, 1, 0}, 65, "C"},
		{[]float32{0.1, 0.8, 0.1}, 48, "1"},
		{[]float32{0.5, 0.5}, 97, "a"},
	}
	for _, c := range cases {
		got, err := DecodeOneHot(c.vector, c.offset)
		if err != nil || got != c.want {
			t.Errorf("DecodeOneHot(%v, %d) = %q, %v", c.vector, c.offset, got, err)
		}
	}
	if _, err := DecodeOneHot(nil, 65); !errors.Is(err, ErrInvalidCodePoint) {
		t.Errorf("empty vector: %v", err)
	}
	if _, err := DecodeOneHot([]float32{1}, -5); !errors.Is(err, ErrInvalidCodePoint) {
		t.Errorf("negative code point: %v", err)
	}
}

func TestDirectoryNamesToCharacters(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"67", "65", "66"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	got, err := DirectoryNamesToCharacters(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A", "B", "C"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("got %v", got)
		}
	}

	if err := os.Mkdir(filepath.Join(root, "x"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := DirectoryNamesToCharacters(root); !errors.Is(err, ErrNonNumericClassName) {
		t.Errorf("non numeric name: %v", err)
	}
}

func TestInvalidCodePoint(t *testing.T) {
	for _, code := range []int{-1, 0xD800, 0x110000} {
		if _, err := Character(code); !errors.Is(err, ErrInvalidCodePoint) {
			t.Errorf("code %d: %v", code, err)
		}
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(65)
	f.Add(0x1F600)
	f.Fuzz(func(t *testing.T, code int) {
		ch, err := Character(code)
		if err != nil {
			return
		}
		back, err := CodePoint(ch)
		if err != nil || back != code {
			t.Errorf("%d -> %q -> %d %v", code, ch, back, err)
		}
	})
}
