package color

import (
	"bytes"
	"image"
	imgcolor "image/color"
	"image/png"
	"math/rand"
	"testing"
)

func uniform(w, h int, c imgcolor.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// panicImage simulates a raster whose pixels cannot be read back.
type panicImage struct{}

func (panicImage) ColorModel() imgcolor.Model { return imgcolor.RGBAModel }
func (panicImage) Bounds() image.Rectangle    { return image.Rect(0, 0, 10, 10) }
func (panicImage) At(x, y int) imgcolor.Color { panic("pixel read-back unavailable") }

func TestSampleAverage(t *testing.T) {
	t.Run("Uniform Opaque Image", func(t *testing.T) {
		got := SampleAverage(uniform(10, 10, imgcolor.NRGBA{R: 200, G: 100, B: 50, A: 255}))
		want := Sample{R: 200, G: 100, B: 50}
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Samples Every Fifth Pixel Starting At The Fifth", func(t *testing.T) {
		img := uniform(10, 1, imgcolor.NRGBA{R: 255, G: 255, B: 255, A: 255})
		img.SetNRGBA(4, 0, imgcolor.NRGBA{R: 10, G: 20, B: 30, A: 255})
		img.SetNRGBA(9, 0, imgcolor.NRGBA{R: 21, G: 41, B: 61, A: 255})

		got := SampleAverage(img)
		want := Sample{R: 15, G: 30, B: 45}
		if got != want {
			t.Errorf("got %v, want %v (truncated averages of pixels 4 and 9)", got, want)
		}
	})

	t.Run("Stride Spans Rows Of The Flattened Buffer", func(t *testing.T) {
		img := uniform(3, 3, imgcolor.NRGBA{A: 255})
		// 9 pixels: only flattened index 4, which is (1,1), is sampled
		img.SetNRGBA(1, 1, imgcolor.NRGBA{R: 90, G: 60, B: 30, A: 255})

		got := SampleAverage(img)
		want := Sample{R: 90, G: 60, B: 30}
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Non Zero Origin", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(5, 5, 15, 15))
		for y := 5; y < 15; y++ {
			for x := 5; x < 15; x++ {
				img.SetNRGBA(x, y, imgcolor.NRGBA{R: 1, G: 2, B: 3, A: 255})
			}
		}
		if got := SampleAverage(img); got != (Sample{R: 1, G: 2, B: 3}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("Too Small To Sample", func(t *testing.T) {
		if got := SampleAverage(uniform(2, 2, imgcolor.NRGBA{R: 9, A: 255})); got != Fallback {
			t.Errorf("expected fallback for zero samples, got %v", got)
		}
	})

	t.Run("Zero Dimensions", func(t *testing.T) {
		if got := SampleAverage(image.NewNRGBA(image.Rect(0, 0, 0, 0))); got != Fallback {
			t.Errorf("expected fallback, got %v", got)
		}
	})

	t.Run("Nil Image", func(t *testing.T) {
		if got := SampleAverage(nil); got != Fallback {
			t.Errorf("expected fallback, got %v", got)
		}
	})

	t.Run("Unreadable Pixels", func(t *testing.T) {
		got := SampleAverage(panicImage{})
		if got != (Sample{R: 127, G: 156, B: 245}) {
			t.Errorf("expected exactly {127,156,245}, got %v", got)
		}
	})

	t.Run("Channels Stay In Range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for n := 0; n < 25; n++ {
			w, h := 1+rng.Intn(40), 1+rng.Intn(40)
			img := image.NewNRGBA(image.Rect(0, 0, w, h))
			rng.Read(img.Pix)
			for i := 3; i < len(img.Pix); i += 4 {
				img.Pix[i] = 255
			}

			s := SampleAverage(img)
			for _, ch := range []int{s.R, s.G, s.B} {
				if ch < 0 || ch > 255 {
					t.Fatalf("channel out of range for %dx%d image: %v", w, h, s)
				}
			}
		}
	})
}

func TestSampleReader(t *testing.T) {
	t.Run("PNG", func(t *testing.T) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, uniform(8, 8, imgcolor.NRGBA{R: 12, G: 34, B: 56, A: 255})); err != nil {
			t.Fatal(err)
		}

		s, img := SampleReader(&buf)
		if img == nil {
			t.Fatal("expected decoded image")
		}
		if s != (Sample{R: 12, G: 34, B: 56}) {
			t.Errorf("got %v", s)
		}
	})

	t.Run("Undecodable Bytes", func(t *testing.T) {
		s, img := SampleReader(bytes.NewReader([]byte("definitely not an image")))
		if s != Fallback || img != nil {
			t.Errorf("expected fallback and nil image, got %v %v", s, img)
		}
	})

	t.Run("Nil Reader", func(t *testing.T) {
		if s, _ := SampleReader(nil); s != Fallback {
			t.Errorf("expected fallback, got %v", s)
		}
	})
}

func TestLighten(t *testing.T) {
	tc := []struct {
		name   string
		in     Sample
		amount int
		want   Sample
	}{
		{name: "plain", in: Sample{10, 20, 30}, amount: 20, want: Sample{30, 40, 50}},
		{name: "clamps each channel independently", in: Sample{250, 10, 255}, amount: 20, want: Sample{255, 30, 255}},
		{name: "fallback color", in: Fallback, amount: 20, want: Sample{147, 176, 255}},
		{name: "zero amount", in: Sample{1, 2, 3}, amount: 0, want: Sample{1, 2, 3}},
		{name: "negative amount clamps at zero", in: Sample{5, 50, 0}, amount: -10, want: Sample{0, 40, 0}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lighten(tt.in, tt.amount); got != tt.want {
				t.Errorf("Lighten(%v, %d) = %v, want %v", tt.in, tt.amount, got, tt.want)
			}
		})
	}

	t.Run("Never Exceeds 255", func(t *testing.T) {
		for v := 0; v <= 255; v += 15 {
			for a := 0; a <= 300; a += 37 {
				got := Lighten(Sample{v, v, v}, a)
				want := min(255, v+a)
				if got.R != want || got.G != want || got.B != want {
					t.Fatalf("Lighten(%d, %d) = %v, want %d", v, a, got, want)
				}
			}
		}
	})
}

func TestGradient(t *testing.T) {
	t.Run("Stops", func(t *testing.T) {
		top, bottom := Gradient(Sample{100, 100, 100}, 20)
		if top != (Sample{120, 120, 120}) || bottom != (Sample{100, 100, 100}) {
			t.Errorf("unexpected stops %v %v", top, bottom)
		}
	})

	t.Run("Blend Endpoints", func(t *testing.T) {
		a, b := Sample{0, 0, 0}, Sample{255, 255, 255}
		if Blend(a, b, 0) != a || Blend(a, b, 1) != b {
			t.Error("blend endpoints should return the stops")
		}
		if got := Blend(a, b, 0.5); got != (Sample{128, 128, 128}) {
			t.Errorf("midpoint = %v", got)
		}
	})

	t.Run("Rows", func(t *testing.T) {
		rows := Rows(Sample{0, 0, 0}, Sample{255, 255, 255}, 3)
		want := []Sample{{0, 0, 0}, {128, 128, 128}, {255, 255, 255}}
		for i := range want {
			if rows[i] != want[i] {
				t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
			}
		}
		if Rows(Fallback, Fallback, 0) != nil {
			t.Error("zero rows should be nil")
		}
		if r := Rows(Sample{1, 1, 1}, Sample{9, 9, 9}, 1); len(r) != 1 || r[0] != (Sample{1, 1, 1}) {
			t.Errorf("single row should be the top stop, got %v", r)
		}
	})

	t.Run("Hex", func(t *testing.T) {
		if got := Fallback.Hex(); got != "#7f9cf5" {
			t.Errorf("got %s", got)
		}
	})
}
