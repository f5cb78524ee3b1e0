package scene

import "github.com/go-gl/mathgl/mgl32"

// LightType selects how a light contributes to shading.
type LightType int

const (
	LightAmbient LightType = iota
	LightDirectional
	LightPoint
)

// MaxLights is the number of lights the object shader accepts.
const MaxLights = 4

// Light is a single light source. Position is used by point lights and as
// the "from" point of directional lights, which always aim at the origin.
type Light struct {
	Type      LightType
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
	Range     float32 // point lights only; 0 means unbounded
}

// Direction returns the normalized direction a directional light travels.
func (l *Light) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Position.Mul(-1).Normalize()
}

// Rig is the fixed set of scene lights. Rim, when set, is the light whose
// position follows the orbit every frame; it is also present in Lights.
type Rig struct {
	Lights []*Light
	Rim    *Light
}

// RimOnlyRig is a single white point light behind the object.
func RimOnlyRig() Rig {
	rim := &Light{
		Type:      LightPoint,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1.5,
		Position:  mgl32.Vec3{0, 0, -7},
		Range:     100,
	}
	return Rig{Lights: []*Light{rim}, Rim: rim}
}

// StudioRig adds a soft ambient fill and a key light to the rim light.
func StudioRig() Rig {
	rig := RimOnlyRig()
	ambient := &Light{Type: LightAmbient, Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.5}
	key := &Light{Type: LightDirectional, Color: mgl32.Vec3{1, 1, 1}, Intensity: 1, Position: mgl32.Vec3{5, 5, 5}}
	rig.Lights = append([]*Light{ambient, key}, rig.Lights...)
	return rig
}
