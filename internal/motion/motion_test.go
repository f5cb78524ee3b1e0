package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestMapPointerCenter(t *testing.T) {
	for _, scale := range []float32{2, 4} {
		got := MapPointer(450, 300, 900, 600, scale)
		if math.Abs(float64(got[0])) > eps || math.Abs(float64(got[1])) > eps {
			t.Errorf("scale %v: expected (0,0) at center, got %v", scale, got)
		}
	}
}

func TestMapPointerTopLeft(t *testing.T) {
	got := MapPointer(0, 0, 900, 600, 4)
	if got != (mgl32.Vec2{-2, 2}) {
		t.Errorf("Expected (-2, 2), got %v", got)
	}

	got = MapPointer(900, 600, 900, 600, 4)
	if got != (mgl32.Vec2{2, -2}) {
		t.Errorf("Expected (2, -2) at bottom-right, got %v", got)
	}
}

func TestMapPointerStaysInRange(t *testing.T) {
	const w, h = 1280, 720
	for _, scale := range []float32{2, 4} {
		half := scale / 2
		for px := 0; px <= w; px += 37 {
			for py := 0; py <= h; py += 29 {
				got := MapPointer(float64(px), float64(py), w, h, scale)
				if got[0] < -half-eps || got[0] > half+eps || got[1] < -half-eps || got[1] > half+eps {
					t.Fatalf("scale %v: (%d,%d) mapped outside range: %v", scale, px, py, got)
				}
			}
		}
	}
}

func TestMapPointerDegenerateViewport(t *testing.T) {
	if got := MapPointer(10, 10, 0, 600, 4); got != (mgl32.Vec2{}) {
		t.Errorf("Expected origin for zero width, got %v", got)
	}
	if got := MapPointer(10, 10, 900, 0, 4); got != (mgl32.Vec2{}) {
		t.Errorf("Expected origin for zero height, got %v", got)
	}
}

func TestEaseConverges(t *testing.T) {
	target := mgl32.Vec2{2, -1.5}
	pos := mgl32.Vec3{}
	initial := target.Sub(pos.Vec2()).Len()

	prev := initial
	for i := 1; i <= 56; i++ {
		pos = Ease(pos, target, 0.1)
		d := target.Sub(pos.Vec2()).Len()
		if d > prev+eps {
			t.Fatalf("frame %d: distance grew from %f to %f", i, prev, d)
		}
		prev = d

		if i == 50 {
			want := initial * float32(math.Pow(0.9, 50))
			if math.Abs(float64(d-want)) > 1e-4 {
				t.Errorf("after 50 frames expected remaining %f, got %f", want, d)
			}
			if d > 0.006*initial {
				t.Errorf("after 50 frames remaining %f exceeds 0.6%% of %f", d, initial)
			}
		}
	}
	if prev > 0.003*initial {
		t.Errorf("after 56 frames remaining %f exceeds 0.3%% of %f", prev, initial)
	}
}

func TestEaseNeverOvershoots(t *testing.T) {
	target := mgl32.Vec2{-3, 3}
	pos := mgl32.Vec3{1, -1, 0.25}
	for i := 0; i < 200; i++ {
		pos = Ease(pos, target, 0.1)
		if pos[0] < target[0] || pos[1] > target[1] {
			t.Fatalf("frame %d overshot target: %v", i, pos)
		}
	}
	if pos[2] != 0.25 {
		t.Errorf("Expected Z to stay 0.25, got %f", pos[2])
	}
}

func TestRotationIndependentOfPointer(t *testing.T) {
	for _, step := range []float32{0.005, 0.01} {
		p := DefaultParams()
		p.RotationStep = step

		a, b := Pose{}, Pose{}
		const n = 1000
		for i := 0; i < n; i++ {
			a = p.Step(a, mgl32.Vec2{})
			b = p.Step(b, mgl32.Vec2{float32(i%7) - 3, float32(i%5) - 2})
		}

		want := float64(n) * float64(step)
		for axis := 0; axis < 2; axis++ {
			if math.Abs(float64(a.Rotation[axis])-want) > 1e-3 {
				t.Errorf("step %v axis %d: expected %f, got %f", step, axis, want, a.Rotation[axis])
			}
			if a.Rotation[axis] != b.Rotation[axis] {
				t.Errorf("step %v axis %d: rotation depends on pointer (%f vs %f)", step, axis, a.Rotation[axis], b.Rotation[axis])
			}
		}
		if a.Rotation[2] != 0 {
			t.Errorf("Expected Z rotation to stay 0, got %f", a.Rotation[2])
		}
	}
}

func TestOrbit(t *testing.T) {
	p := DefaultParams()

	got := Orbit(0, p)
	if math.Abs(float64(got[0])) > eps || math.Abs(float64(got[1]-7)) > eps || math.Abs(float64(got[2]+7)) > eps {
		t.Errorf("Expected (0, 7, -7) at t=0, got %v", got)
	}

	got = Orbit(math.Pi, p)
	if math.Abs(float64(got[0])) > 1e-4 || math.Abs(float64(got[1]+7)) > 1e-4 || math.Abs(float64(got[2]+5)) > 1e-4 {
		t.Errorf("Expected (0, -7, -5) at t=pi, got %v", got)
	}

	for ts := 0.0; ts < 60; ts += 0.37 {
		pos := Orbit(ts, p)
		r := math.Hypot(float64(pos[0]), float64(pos[1]))
		if math.Abs(r-7) > 1e-4 {
			t.Fatalf("t=%f: orbit radius %f, expected 7", ts, r)
		}
		if pos[2] < -9-eps || pos[2] > -5+eps {
			t.Fatalf("t=%f: z %f outside [-9, -5]", ts, pos[2])
		}
	}
}

func TestPoseMatrixTranslation(t *testing.T) {
	pose := Pose{Position: mgl32.Vec3{1, 2, 3}}
	m := pose.Matrix()
	if m.Col(3) != (mgl32.Vec4{1, 2, 3, 1}) {
		t.Errorf("Expected translation column (1,2,3,1), got %v", m.Col(3))
	}
}
