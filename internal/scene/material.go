package scene

import "github.com/go-gl/mathgl/mgl32"

// PhysicalMaterial describes a metallic-roughness surface with an optional
// clearcoat layer and thin-film iridescence.
type PhysicalMaterial struct {
	Color              mgl32.Vec3
	Metalness          float32
	Roughness          float32
	Clearcoat          float32
	ClearcoatRoughness float32
	Reflectivity       float32
	EnvMapIntensity    float32

	Iridescence               float32
	IridescenceIOR            float32
	IridescenceThicknessRange [2]float32 // nanometres
}

// IridescentMaterial is the chrome-like soap-film finish used by every
// mesh in the scene.
func IridescentMaterial() *PhysicalMaterial {
	return &PhysicalMaterial{
		Color:                     mgl32.Vec3{1, 1, 1},
		Metalness:                 1,
		Roughness:                 0.1,
		Clearcoat:                 1,
		ClearcoatRoughness:        0.1,
		Reflectivity:              1,
		EnvMapIntensity:           1,
		Iridescence:               1,
		IridescenceIOR:            1.3,
		IridescenceThicknessRange: [2]float32{100, 400},
	}
}
