package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hschendel/stl"
	"github.com/soypat/spectacle/bend"
	"github.com/soypat/spectacle/mesh"
	"github.com/soypat/spectacle/nosepad"
	"github.com/soypat/spectacle/offset"
	"github.com/soypat/spectacle/outline"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

// prism is a closed triangular prism with outward faces.
func prism() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0},
			{X: 0, Y: 0, Z: 2}, {X: 4, Y: 0, Z: 2}, {X: 0, Y: 3, Z: 2},
		},
		Faces: [][3]int{
			{0, 2, 1}, {3, 4, 5},
			{0, 1, 4}, {0, 4, 3},
			{1, 2, 5}, {1, 5, 4},
			{2, 0, 3}, {2, 3, 5},
		},
	}
}

func hexagonFrame(t *testing.T) (*bend.BentBand, [2]*nosepad.Pad) {
	t.Helper()
	o, err := outline.Normalize([]r2.Vec{
		{X: 50, Y: 0}, {X: 37.5, Y: 10}, {X: 25, Y: 20}, {X: 0, Y: 20}, {X: -25, Y: 20}, {X: -37.5, Y: 10},
		{X: -50, Y: 0}, {X: -37.5, Y: -10}, {X: -25, Y: -20}, {X: 0, Y: -20}, {X: 25, Y: -20}, {X: 37.5, Y: -10}, {X: 50, Y: 0},
	}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	band, err := offset.Offset(o, 4, offset.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	bent, err := bend.Bend(band, bend.Config{Degree: 20})
	if err != nil {
		t.Fatal(err)
	}
	pads, err := nosepad.Synthesize(bent, 18, 4, nosepad.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return bent, pads
}

func TestSTLWriteReadback(t *testing.T) {
	input := prism()
	if v := input.Volume(); v != 12 {
		t.Fatalf("bad prism, volume %g", v)
	}
	var b bytes.Buffer
	if err := WriteSTL(&b, input); err != nil {
		t.Fatal(err)
	}
	if b.Len() != stlHeaderSize+stlTriangleSize*len(input.Faces) {
		t.Errorf("wrote %d bytes", b.Len())
	}
	output, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(output.Faces) != len(input.Faces) || len(output.Vertices) != len(input.Vertices) {
		t.Fatalf("read %d faces %d vertices, want %d and %d",
			len(output.Faces), len(output.Vertices), len(input.Faces), len(input.Vertices))
	}
	if output.OpenEdges() != 0 || output.Volume() != 12 {
		t.Errorf("readback open edges %d volume %g", output.OpenEdges(), output.Volume())
	}
}

func TestReadSTLFlipsAgainstNormal(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSTL(&b, prism()); err != nil {
		t.Fatal(err)
	}
	raw := b.Bytes()
	// Swap the second and third vertex of the first record, keeping its normal.
	rec := raw[stlHeaderSize : stlHeaderSize+stlTriangleSize]
	v2 := append([]byte(nil), rec[24:36]...)
	copy(rec[24:36], rec[36:48])
	copy(rec[36:48], v2)
	m, err := ReadSTL(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if m.OpenEdges() != 0 || m.Volume() != 12 {
		t.Errorf("flipped triangle not restored: open edges %d volume %g", m.OpenEdges(), m.Volume())
	}
}

func TestReadSTLDropsDegenerate(t *testing.T) {
	m := prism()
	faces := len(m.Faces)
	m.Faces = append(m.Faces, [3]int{0, 0, 1})
	var b bytes.Buffer
	if err := WriteSTL(&b, m); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Faces) != faces || got.OpenEdges() != 0 || got.Volume() != 12 {
		t.Errorf("read %d faces, open edges %d, volume %g; want %d closed faces of volume 12",
			len(got.Faces), got.OpenEdges(), got.Volume(), faces)
	}
}

func TestReadSTLErrors(t *testing.T) {
	if _, err := ReadSTL(bytes.NewReader(make([]byte, 10))); err == nil {
		t.Error("short header must fail")
	}
	if _, err := ReadSTL(bytes.NewReader(make([]byte, stlHeaderSize))); err == nil {
		t.Error("zero triangle count must fail")
	}
	var b bytes.Buffer
	WriteSTL(&b, prism())
	if _, err := ReadSTL(bytes.NewReader(b.Bytes()[:b.Len()-1])); err == nil {
		t.Error("truncated triangles must fail")
	}
	if err := WriteSTL(&b, &mesh.Mesh{}); err == nil {
		t.Error("empty mesh must fail")
	}
}

func TestCreateSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.stl")
	if err := CreateSTL(path, NewMeshRenderer(prism())); err != nil {
		t.Fatal(err)
	}
	file, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := WriteSTL(&b, prism()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(file, b.Bytes()) {
		t.Error("WriteSTL and CreateSTL output mismatch")
	}
}

func TestRenderAll(t *testing.T) {
	m := prism()
	tris, err := RenderAll(NewMeshRenderer(m))
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != len(m.Faces) {
		t.Fatalf("rendered %d triangles, want %d", len(tris), len(m.Faces))
	}
	for i, tri := range tris {
		if tri != m.Triangle(i) {
			t.Errorf("triangle %d: got %v, want %v", i, tri, m.Triangle(i))
		}
	}
}

func TestWriteASCIISTL(t *testing.T) {
	var b bytes.Buffer
	if err := WriteASCIISTL(&b, "prism", prism()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "solid prism") {
		t.Errorf("unexpected ASCII STL start %q", b.String()[:min(b.Len(), 20)])
	}
	solid, err := stl.ReadAll(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !solid.IsAscii || len(solid.Triangles) != len(prism().Faces) {
		t.Errorf("read ascii=%v with %d triangles", solid.IsAscii, len(solid.Triangles))
	}
}

func TestWriteSVG(t *testing.T) {
	bent, pads := hexagonFrame(t)
	var b bytes.Buffer
	if err := WriteSVG(&b, bent.Band, pads); err != nil {
		t.Fatal(err)
	}
	s := b.String()
	for elem, want := range map[string]int{"<polygon": 2, "<ellipse": 2, "<line": 1} {
		if got := strings.Count(s, elem); got != want {
			t.Errorf("got %d %s elements, want %d", got, elem, want)
		}
	}
}

func TestWriteDXF(t *testing.T) {
	bent, _ := hexagonFrame(t)
	path := filepath.Join(t.TempDir(), "band.dxf")
	if err := WriteDXF(path, bent.Band); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if got := strings.Count(s, "LWPOLYLINE"); got < 2 {
		t.Errorf("found %d polylines, want 2", got)
	}
	for _, layer := range []string{LayerOuter, LayerInner, LayerMidline} {
		if !strings.Contains(s, layer) {
			t.Errorf("layer %q missing", layer)
		}
	}
}

func TestPlots(t *testing.T) {
	bent, _ := hexagonFrame(t)
	var b bytes.Buffer
	if err := PlotBand(&b, bent.Band, "png"); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&b); err != nil {
		t.Errorf("band plot: %v", err)
	}
	b.Reset()
	if err := PlotProfile(&b, bent, "svg"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "<svg") {
		t.Error("profile plot is not an SVG")
	}
}

func TestPreviewDeterministic(t *testing.T) {
	view := DefaultView()
	view.Width, view.Height = 160, 80
	var encoded [2][]byte
	for i := range encoded {
		img, err := Preview(prism(), view)
		if err != nil {
			t.Fatal(err)
		}
		if got := img.Bounds().Size(); got.X != view.Width || got.Y != view.Height {
			t.Fatalf("image size %v", got)
		}
		var b bytes.Buffer
		if err := png.Encode(&b, img); err != nil {
			t.Fatal(err)
		}
		encoded[i] = b.Bytes()
	}
	equal, err := cmpimg.EqualApprox("png", encoded[0], encoded[1], 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("preview render is not deterministic")
	}
	// Something other than background was drawn.
	img, _ := png.Decode(bytes.NewReader(encoded[0]))
	bg := img.At(0, 0)
	drawn := 0
	for y := 0; y < view.Height; y++ {
		for x := 0; x < view.Width; x++ {
			if img.At(x, y) != bg {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("preview is blank")
	}
}
