package render

import "testing"

func TestFontSet_Face(t *testing.T) {
	fs := NewFontSet()
	defer fs.Close()

	a, err := fs.Face("Go Regular", 24)
	if err != nil {
		t.Fatalf("Face failed: %v", err)
	}
	b, err := fs.Face("Go Regular", 24)
	if err != nil {
		t.Fatalf("Face failed: %v", err)
	}
	if a != b {
		t.Error("face not cached")
	}

	fallback, err := fs.Face("Comic Sans", 24)
	if err != nil {
		t.Fatalf("Face with unknown family failed: %v", err)
	}
	if fallback != a {
		t.Error("unknown family did not fall back to the default face")
	}

	if _, err := fs.Face("Go Mono", 0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestFontSet_MeasureText(t *testing.T) {
	fs := NewFontSet()
	defer fs.Close()

	short, err := fs.MeasureText("ab", "Go Regular", 24, 10, 20, 1, 1)
	if err != nil {
		t.Fatalf("MeasureText failed: %v", err)
	}
	long, err := fs.MeasureText("abcdef", "Go Regular", 24, 10, 20, 1, 1)
	if err != nil {
		t.Fatalf("MeasureText failed: %v", err)
	}
	two, err := fs.MeasureText("ab\nab", "Go Regular", 24, 10, 20, 1, 1)
	if err != nil {
		t.Fatalf("MeasureText failed: %v", err)
	}

	if short.Left != 10 || short.Top != 20 {
		t.Errorf("origin = (%v, %v), want (10, 20)", short.Left, short.Top)
	}
	if long.Width <= short.Width {
		t.Errorf("longer text width %v not above %v", long.Width, short.Width)
	}
	if two.Height != 2*short.Height || two.Width != short.Width {
		t.Errorf("two lines = %+v, one line = %+v", two, short)
	}

	scaled, err := fs.MeasureText("ab", "Go Regular", 24, 10, 20, 2, 2)
	if err != nil {
		t.Fatalf("MeasureText failed: %v", err)
	}
	if scaled.Width != 2*short.Width {
		t.Errorf("scaled width = %v, want %v", scaled.Width, 2*short.Width)
	}

	empty, err := fs.MeasureText("", "Go Regular", 24, 0, 0, 1, 1)
	if err != nil {
		t.Fatalf("MeasureText failed: %v", err)
	}
	if empty.Width != 0 || empty.Height <= 0 {
		t.Errorf("empty text = %+v, want zero width and one line of height", empty)
	}
}

func TestFontFamilies(t *testing.T) {
	for _, family := range FontFamilies() {
		if _, ok := fontFiles[family]; !ok {
			t.Errorf("family %q has no font file", family)
		}
	}
}
