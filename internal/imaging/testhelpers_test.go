package imaging

import "testing"

// newTestGrid builds a grid from row-major pixels.
func newTestGrid(t *testing.T, width, height int, pix ...RGB) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if len(pix) != width*height {
		t.Fatalf("got %d pixels, want %d", len(pix), width*height)
	}
	copy(g.Pix, pix)
	return g
}

// scenarioGrid is the 2x2 image red, green / blue, white.
func scenarioGrid(t *testing.T) *Grid {
	t.Helper()
	return newTestGrid(t, 2, 2,
		RGB{255, 0, 0}, RGB{0, 255, 0},
		RGB{0, 0, 255}, RGB{255, 255, 255},
	)
}

// patternGrid creates a width x height grid where every pixel is distinct enough
// to catch index mistakes.
func patternGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, RGB{R: uint8(x * 40), G: uint8(y * 40), B: uint8((x + y) * 20)})
		}
	}
	return g
}

// registryWith returns a registry holding g under name.
func registryWith(name string, g *Grid) *Registry {
	reg := NewRegistry()
	reg.Put(name, g)
	return reg
}

// mustGet fetches name or fails the test.
func mustGet(t *testing.T, reg *Registry, name string) *Grid {
	t.Helper()
	g, err := reg.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", name, err)
	}
	return g
}

// assertGreys checks that every pixel of g is grey with the expected values.
func assertGreys(t *testing.T, g *Grid, want ...uint8) {
	t.Helper()
	if len(g.Pix) != len(want) {
		t.Fatalf("got %d pixels, want %d", len(g.Pix), len(want))
	}
	for i, p := range g.Pix {
		if p != Grey(want[i]) {
			t.Errorf("pixel %d: got %v, want grey %d", i, p, want[i])
		}
	}
}
