// Package scene is the per-window context object: camera, light rig,
// material, the object group and the mutable state the frame updater and
// input handlers share.
package scene

import (
	"image"
	"time"

	"portfolio-cube/internal/motion"

	"github.com/go-gl/mathgl/mgl32"
)

// BaseMeshName names the mesh built from Options.BaseGeometry.
const BaseMeshName = "base"

// Viewport is the window size in screen coordinates.
type Viewport struct {
	Width  int
	Height int
}

// Mesh is one drawable child of the object group.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Local    mgl32.Mat4
	Material *PhysicalMaterial
}

// Group is the container node every mesh is parented under. Its pose is
// the one eased toward the cursor.
type Group struct {
	Pose     motion.Pose
	Children []*Mesh
}

// Options configure New.
type Options struct {
	Motion     motion.Params
	Background mgl32.Vec3
	Rig        Rig
	Material   *PhysicalMaterial
	// BaseGeometry is added to the group at construction when non-nil.
	BaseGeometry *Geometry
	Width        int
	Height       int
}

// Scene holds everything a frame needs. It is not safe for concurrent use;
// all methods are called from the frame thread.
type Scene struct {
	Camera     *Camera
	Background mgl32.Vec3
	Rig        Rig
	Material   *PhysicalMaterial
	Object     Group

	environment *image.RGBA
	envVersion  int

	params   motion.Params
	target   mgl32.Vec2
	viewport Viewport
	frames   uint64
}

// New builds the scene once at startup.
func New(opts Options) *Scene {
	if opts.Material == nil {
		opts.Material = IridescentMaterial()
	}
	s := &Scene{
		Camera:     NewCamera(opts.Width, opts.Height),
		Background: opts.Background,
		Rig:        opts.Rig,
		Material:   opts.Material,
		params:     opts.Motion,
		viewport:   Viewport{Width: opts.Width, Height: opts.Height},
	}
	if opts.BaseGeometry != nil {
		s.Object.Children = append(s.Object.Children, &Mesh{
			Name:     BaseMeshName,
			Geometry: opts.BaseGeometry,
			Local:    mgl32.Ident4(),
			Material: s.Material,
		})
	}
	return s
}

// Update advances the object pose and the rim light by one frame.
// elapsed is the animation time used for the light orbit.
func (s *Scene) Update(elapsed time.Duration) {
	s.Object.Pose = s.params.Step(s.Object.Pose, s.target)
	if s.Rig.Rim != nil {
		s.Rig.Rim.Position = motion.Orbit(elapsed.Seconds(), s.params)
	}
	s.frames++
}

// HandlePointerMove maps a cursor position in window coordinates to the
// pointer target.
func (s *Scene) HandlePointerMove(px, py float64) {
	s.target = motion.MapPointer(px, py, s.viewport.Width, s.viewport.Height, s.params.PointerScale)
}

// Resize keeps the viewport and camera aspect in step with the window.
// Calling it repeatedly with the same size has no further effect.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.viewport = Viewport{Width: width, Height: height}
	s.Camera.SetViewport(width, height)
}

// Reset returns the object to the origin with zero rotation and clears
// the pointer target.
func (s *Scene) Reset() {
	s.Object.Pose = motion.Pose{}
	s.target = mgl32.Vec2{}
}

// AttachMeshes parents meshes under the object group, overriding each
// mesh's material with the scene material.
func (s *Scene) AttachMeshes(meshes []*Mesh) {
	for _, m := range meshes {
		m.Material = s.Material
		s.Object.Children = append(s.Object.Children, m)
	}
}

// RemoveMesh drops every child with the given name and reports whether
// any was removed.
func (s *Scene) RemoveMesh(name string) bool {
	kept := s.Object.Children[:0]
	for _, m := range s.Object.Children {
		if m.Name != name {
			kept = append(kept, m)
		}
	}
	removed := len(kept) != len(s.Object.Children)
	clear(s.Object.Children[len(kept):])
	s.Object.Children = kept
	return removed
}

// SetEnvironment installs an equirectangular reflection map.
func (s *Scene) SetEnvironment(img *image.RGBA) {
	s.environment = img
	s.envVersion++
}

// Environment returns the reflection map and a counter that changes each
// time a new map is installed.
func (s *Scene) Environment() (*image.RGBA, int) {
	return s.environment, s.envVersion
}

func (s *Scene) Target() mgl32.Vec2    { return s.target }
func (s *Scene) Pose() motion.Pose     { return s.Object.Pose }
func (s *Scene) Viewport() Viewport    { return s.viewport }
func (s *Scene) Params() motion.Params { return s.params }
func (s *Scene) Frames() uint64        { return s.frames }
