package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewBoxShape(t *testing.T) {
	g := NewBox(2, 2, 2)
	if g.VertexCount() != 24 {
		t.Errorf("Expected 24 vertices, got %d", g.VertexCount())
	}
	if len(g.Indices) != 36 {
		t.Errorf("Expected 36 indices, got %d", len(g.Indices))
	}

	min, max := g.Bounds()
	if min != (mgl32.Vec3{-1, -1, -1}) || max != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected bounds [-1,1]^3, got %v %v", min, max)
	}
}

func TestNewBoxWindingMatchesNormals(t *testing.T) {
	g := NewBox(2, 3, 4)
	for i := 0; i < len(g.Indices); i += 3 {
		a, b, c := g.Positions[g.Indices[i]], g.Positions[g.Indices[i+1]], g.Positions[g.Indices[i+2]]
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Dot(g.Normals[g.Indices[i]]) <= 0 {
			t.Errorf("triangle %d winds against its normal %v", i/3, g.Normals[g.Indices[i]])
		}
	}
}

func TestComputeNormals(t *testing.T) {
	g := &Geometry{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	g.ComputeNormals()
	for i, n := range g.Normals {
		if !n.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d: expected +Z normal, got %v", i, n)
		}
	}
}

func TestTransform(t *testing.T) {
	g := NewBox(2, 2, 2)
	moved := g.Transform(mgl32.Translate3D(0, 5, 0).Mul4(mgl32.Scale3D(2, 2, 2)))

	min, max := moved.Bounds()
	if !min.ApproxEqual(mgl32.Vec3{-2, 3, -2}) || !max.ApproxEqual(mgl32.Vec3{2, 7, 2}) {
		t.Errorf("Unexpected bounds after transform: %v %v", min, max)
	}
	for i, n := range moved.Normals {
		if !n.ApproxEqual(g.Normals[i]) {
			t.Errorf("normal %d changed under uniform scale: %v -> %v", i, g.Normals[i], n)
		}
	}
	if len(moved.Indices) != len(g.Indices) {
		t.Errorf("indices not copied")
	}
}

func TestInterleaved(t *testing.T) {
	g := &Geometry{
		Positions: []mgl32.Vec3{{1, 2, 3}},
		Normals:   []mgl32.Vec3{{0, 1, 0}},
	}
	got := g.Interleaved()
	want := []float32{1, 2, 3, 0, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("Expected %d floats, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestTransformMirrorKeepsFrontFaces(t *testing.T) {
	g := NewBox(2, 2, 2)
	mirrored := g.Transform(mgl32.Scale3D(-1, 1, 1))

	for i := 0; i+2 < len(mirrored.Indices); i += 3 {
		a := mirrored.Positions[mirrored.Indices[i]]
		b := mirrored.Positions[mirrored.Indices[i+1]]
		c := mirrored.Positions[mirrored.Indices[i+2]]
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Dot(mirrored.Normals[mirrored.Indices[i]]) <= 0 {
			t.Fatalf("triangle %d winds against its normal after mirroring", i/3)
		}
	}
}
