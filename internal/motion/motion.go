// Package motion holds the per-frame numeric rules that move the displayed
// object: cursor easing, constant spin, rim light orbit and pointer mapping.
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Params are the per-instance motion constants.
type Params struct {
	EasingGain     float32 // fraction of the remaining distance covered each frame
	RotationStep   float32 // radians added to X and Y rotation each frame
	PointerScale   float32 // width of the symmetric target range
	OrbitRadius    float32
	OrbitBaseZ     float32
	OrbitAmplitude float32
}

// DefaultParams matches the cube viewer.
func DefaultParams() Params {
	return Params{
		EasingGain:     0.1,
		RotationStep:   0.005,
		PointerScale:   4,
		OrbitRadius:    7,
		OrbitBaseZ:     -7,
		OrbitAmplitude: 2,
	}
}

// Pose is the position and Euler rotation (radians, XYZ order) of the object group.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// Ease moves the X and Y components of pos toward target by gain.
// Z is left untouched.
func Ease(pos mgl32.Vec3, target mgl32.Vec2, gain float32) mgl32.Vec3 {
	pos[0] += (target[0] - pos[0]) * gain
	pos[1] += (target[1] - pos[1]) * gain
	return pos
}

// Spin adds step to the X and Y rotation. No wrapping is applied.
func Spin(rot mgl32.Vec3, step float32) mgl32.Vec3 {
	rot[0] += step
	rot[1] += step
	return rot
}

// Orbit returns the rim light position t seconds into the animation.
func Orbit(t float64, p Params) mgl32.Vec3 {
	r := float64(p.OrbitRadius)
	return mgl32.Vec3{
		float32(math.Sin(t) * r),
		float32(math.Cos(t) * r),
		p.OrbitBaseZ + float32(math.Sin(t*0.5))*p.OrbitAmplitude,
	}
}

// MapPointer converts window coordinates into the object-space target range
// [-scale/2, scale/2] on both axes. Y grows upward in the result.
// A degenerate viewport maps to the origin.
func MapPointer(px, py float64, width, height int, scale float32) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	s := float64(scale)
	x := (px/float64(width))*s - s/2
	y := -(py/float64(height))*s + s/2
	return mgl32.Vec2{float32(x), float32(y)}
}

// Step advances a pose by one frame toward target.
func (p Params) Step(pose Pose, target mgl32.Vec2) Pose {
	return Pose{
		Position: Ease(pose.Position, target, p.EasingGain),
		Rotation: Spin(pose.Rotation, p.RotationStep),
	}
}

// RotationMatrix builds the XYZ-order Euler rotation used for the object group.
func RotationMatrix(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.AnglesToQuat(rot[0], rot[1], rot[2], mgl32.XYZ).Mat4()
}

// Matrix is the object group transform: translation then rotation.
func (p Pose) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).Mul4(RotationMatrix(p.Rotation))
}
