package scene

import (
	"image"
	"math"
	"testing"
	"time"

	"portfolio-cube/internal/motion"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestScene() *Scene {
	return New(Options{
		Motion:       motion.DefaultParams(),
		Rig:          RimOnlyRig(),
		BaseGeometry: NewBox(2, 2, 2),
		Width:        900,
		Height:       600,
	})
}

func TestNewSceneInitialState(t *testing.T) {
	s := newTestScene()

	if s.Pose() != (motion.Pose{}) {
		t.Errorf("Expected zero pose, got %+v", s.Pose())
	}
	if len(s.Object.Children) != 1 {
		t.Fatalf("Expected base mesh, got %d children", len(s.Object.Children))
	}
	if s.Object.Children[0].Material != s.Material {
		t.Errorf("Expected base mesh to use scene material")
	}
	if s.Camera.AspectRatio != 1.5 {
		t.Errorf("Expected aspect 1.5, got %f", s.Camera.AspectRatio)
	}
	if s.Camera.Position != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("Expected camera at z=5, got %v", s.Camera.Position)
	}
}

func TestPointerMoveUpdatesTargetOnly(t *testing.T) {
	s := newTestScene()
	s.HandlePointerMove(0, 0)

	if s.Target() != (mgl32.Vec2{-2, 2}) {
		t.Errorf("Expected target (-2, 2), got %v", s.Target())
	}
	if s.Pose() != (motion.Pose{}) {
		t.Errorf("Pointer move should not change pose, got %+v", s.Pose())
	}

	s.HandlePointerMove(450, 300)
	if s.Target() != (mgl32.Vec2{0, 0}) {
		t.Errorf("Expected centered target, got %v", s.Target())
	}
}

func TestUpdateEasesSpinsAndOrbits(t *testing.T) {
	s := newTestScene()
	s.HandlePointerMove(900, 0) // (2, 2)

	s.Update(0)
	pose := s.Pose()
	if math.Abs(float64(pose.Position[0]-0.2)) > 1e-6 || math.Abs(float64(pose.Position[1]-0.2)) > 1e-6 {
		t.Errorf("Expected position (0.2, 0.2) after one frame, got %v", pose.Position)
	}
	if pose.Rotation[0] != 0.005 || pose.Rotation[1] != 0.005 {
		t.Errorf("Expected rotation 0.005 on X and Y, got %v", pose.Rotation)
	}
	rim := s.Rig.Rim.Position
	if math.Abs(float64(rim[1]-7)) > 1e-5 || math.Abs(float64(rim[2]+7)) > 1e-5 {
		t.Errorf("Expected rim light at (0, 7, -7), got %v", rim)
	}

	s.Update(1500 * time.Millisecond)
	want := motion.Orbit(1.5, s.Params())
	if s.Rig.Rim.Position != want {
		t.Errorf("Expected rim light %v, got %v", want, s.Rig.Rim.Position)
	}
	if s.Frames() != 2 {
		t.Errorf("Expected 2 frames, got %d", s.Frames())
	}
}

func TestUpdateWithoutRimLight(t *testing.T) {
	s := New(Options{Motion: motion.DefaultParams(), Width: 100, Height: 100})
	s.Update(time.Second)
	if s.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", s.Frames())
	}
}

func TestResizeIdempotent(t *testing.T) {
	once := newTestScene()
	once.Resize(1280, 720)

	twice := newTestScene()
	twice.Resize(1280, 720)
	twice.Resize(1280, 720)

	if once.Viewport() != twice.Viewport() {
		t.Errorf("Viewport differs: %+v vs %+v", once.Viewport(), twice.Viewport())
	}
	if once.Camera.AspectRatio != twice.Camera.AspectRatio {
		t.Errorf("Aspect differs: %f vs %f", once.Camera.AspectRatio, twice.Camera.AspectRatio)
	}
	if once.Camera.ProjectionMatrix() != twice.Camera.ProjectionMatrix() {
		t.Errorf("Projection differs after repeated resize")
	}
}

func TestResizeIgnoresDegenerateSize(t *testing.T) {
	s := newTestScene()
	s.Resize(0, 0)

	if s.Viewport() != (Viewport{Width: 900, Height: 600}) {
		t.Errorf("Expected viewport unchanged, got %+v", s.Viewport())
	}
	if s.Camera.AspectRatio != 1.5 {
		t.Errorf("Expected aspect unchanged, got %f", s.Camera.AspectRatio)
	}

	s.HandlePointerMove(100, 100)
	if math.IsNaN(float64(s.Target()[0])) || math.IsInf(float64(s.Target()[0]), 0) {
		t.Errorf("Target is not finite: %v", s.Target())
	}
}

func TestPointerMappingFollowsResize(t *testing.T) {
	s := newTestScene()
	s.Resize(400, 200)
	s.HandlePointerMove(200, 100)
	if s.Target() != (mgl32.Vec2{0, 0}) {
		t.Errorf("Expected center of resized viewport to map to origin, got %v", s.Target())
	}
}

func TestAttachMeshesOverridesMaterial(t *testing.T) {
	s := newTestScene()
	foreign := &PhysicalMaterial{Roughness: 0.9}
	meshes := []*Mesh{
		{Name: "a", Geometry: NewBox(1, 1, 1), Local: mgl32.Ident4(), Material: foreign},
		{Name: "b", Geometry: NewBox(1, 1, 1), Local: mgl32.Ident4()},
	}
	s.AttachMeshes(meshes)

	if len(s.Object.Children) != 3 {
		t.Fatalf("Expected 3 children, got %d", len(s.Object.Children))
	}
	for _, m := range s.Object.Children {
		if m.Material != s.Material {
			t.Errorf("mesh %q does not use the scene material", m.Name)
		}
	}
}

func TestRemoveMesh(t *testing.T) {
	s := newTestScene()
	s.AttachMeshes([]*Mesh{{Name: "model", Geometry: NewBox(1, 1, 1), Local: mgl32.Ident4()}})

	if !s.RemoveMesh(BaseMeshName) {
		t.Fatalf("Expected the base mesh to be removed")
	}
	if len(s.Object.Children) != 1 || s.Object.Children[0].Name != "model" {
		t.Errorf("Expected only the model mesh to remain, got %d children", len(s.Object.Children))
	}
	if s.RemoveMesh(BaseMeshName) {
		t.Errorf("Removing a missing mesh must report false")
	}
}

func TestSetEnvironmentBumpsVersion(t *testing.T) {
	s := newTestScene()
	if img, v := s.Environment(); img != nil || v != 0 {
		t.Fatalf("Expected no environment, got %v version %d", img, v)
	}
	env := image.NewRGBA(image.Rect(0, 0, 4, 2))
	s.SetEnvironment(env)
	img, v := s.Environment()
	if img != env || v != 1 {
		t.Errorf("Expected installed environment with version 1, got version %d", v)
	}
}

func TestReset(t *testing.T) {
	s := newTestScene()
	s.HandlePointerMove(0, 0)
	for i := 0; i < 10; i++ {
		s.Update(0)
	}
	s.Reset()
	if s.Pose() != (motion.Pose{}) || s.Target() != (mgl32.Vec2{}) {
		t.Errorf("Expected reset state, got pose %+v target %v", s.Pose(), s.Target())
	}
}
