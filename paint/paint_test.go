package paint

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"#F0B444", color.RGBA{240, 180, 68, 255}},
		{"#00000000", color.RGBA{}},
		{"rgb(10, 20, 30)", color.RGBA{10, 20, 30, 255}},
		{"rgba(255, 0, 0, 0.5)", color.RGBA{128, 0, 0, 128}},
		{"hotpink", color.RGBA{255, 105, 180, 255}},
		{"transparent", color.RGBA{}},
		{"#f008", color.RGBA{136, 0, 0, 136}},
		{" RGB(1, 2, 3) ", color.RGBA{1, 2, 3, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Errors(t *testing.T) {
	for _, in := range []string{"", "none", "#ggg", "#12345", "rgb(1,2)", "rgb(a,b,c)", "not-a-colour"} {
		_, err := ParseColor(in)
		require.Error(t, err, in)
	}
}

func TestHex_RoundTripsOpaque(t *testing.T) {
	c, err := ParseColor("#c8862b")
	require.NoError(t, err)
	require.Equal(t, "#c8862b", Hex(c))
}

func TestParseGradient_DefaultFill(t *testing.T) {
	g, err := ParseGradient("radial-gradient(circle at 30% 30%, #fff5d6, #f0bb4f 60%, #c8862b)")
	require.NoError(t, err)
	require.InDelta(t, 0.3, g.CX, 1e-9)
	require.InDelta(t, 0.3, g.CY, 1e-9)
	require.Len(t, g.Stops, 3)
	require.Equal(t, []float64{0, 0.6, 1}, offsets(g))
	require.Equal(t, color.RGBA{0xc8, 0x86, 0x2b, 0xff}, g.Edge())
	require.InDelta(t, math.Hypot(0.7, 0.7), g.Radius(), 1e-9)
}

func TestParseGradient_Offsets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []float64
	}{
		{"two stops", "radial-gradient(circle at 30% 30%, #fff6d6, #f0b444)", []float64{0, 1}},
		{"spread evenly", "radial-gradient(#fff, #888, #000)", []float64{0, 0.5, 1}},
		{"gap after positioned", "radial-gradient(#fff 20%, #888, #444, #000 80%)", []float64{0.2, 0.4, 0.6, 0.8}},
		{"never decreasing", "radial-gradient(#fff, #000 20%, #f00 10%)", []float64{0, 0.2, 0.2}},
		{"rgba stop", "radial-gradient(ellipse at center, rgba(0, 0, 0, 0.5) 10%, #000)", []float64{0.1, 1}},
		{"single stop", "radial-gradient(circle, #abc)", []float64{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGradient(tt.in)
			require.NoError(t, err)
			require.InDeltaSlice(t, tt.want, offsets(g), 1e-9)
		})
	}
}

func TestParseGradient_SolidAndErrors(t *testing.T) {
	g, err := ParseGradient("red")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{255, 0, 0, 255}, g.At(0.5))

	for _, in := range []string{
		"radial-gradient(circle at 30% 30%, #fff",
		"radial-gradient(circle at 30%)",
		"radial-gradient(circle at 3px 30%, #fff)",
		"radial-gradient(#fff, #zzz)",
		"conic-gradient(#fff, #000)",
	} {
		_, err := ParseGradient(in)
		require.Error(t, err, in)
	}
}

func TestGradient_At(t *testing.T) {
	g, err := ParseGradient("radial-gradient(#000, #fff)")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{0, 0, 0, 255}, g.At(-1))
	require.Equal(t, color.RGBA{77, 77, 77, 255}, g.At(0.3))
	require.Equal(t, color.RGBA{255, 255, 255, 255}, g.At(2))
	require.Equal(t, color.RGBA{}, Gradient{}.At(0.5))
}

func TestBalloon_RasterisesInsideTheBody(t *testing.T) {
	img, err := Balloon("radial-gradient(circle at 30% 30%, #fff6d6, #f0b444)", 40, 60)
	require.NoError(t, err)
	require.Equal(t, 40, img.Bounds().Dx())

	require.NotZero(t, img.RGBAAt(20, 27).A, "body centre is painted")
	require.Zero(t, img.RGBAAt(0, 0).A, "corners stay clear")

	_, err = Balloon("nope", 40, 60)
	require.Error(t, err)
	_, err = Rasterize(BalloonSVG(Solid(color.RGBA{A: 255}), 1, 1), 0, 10)
	require.Error(t, err)

	require.Equal(t, 12, Fallback(12, 16).Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	img := Fallback(8, 10)
	path := filepath.Join(t.TempDir(), "balloon.png")
	require.NoError(t, SavePNG(img, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), got.Bounds())

	require.Error(t, SavePNG(img, filepath.Join(t.TempDir(), "missing", "x.png")))
}

func offsets(g Gradient) []float64 {
	out := make([]float64, len(g.Stops))
	for i, s := range g.Stops {
		out[i] = s.Offset
	}
	return out
}
