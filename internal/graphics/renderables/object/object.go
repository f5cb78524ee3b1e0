// Package object draws the scene's object group with the physical material.
package object

import (
	"fmt"

	"portfolio-cube/internal/graphics"
	renderer "portfolio-cube/internal/graphics/renderer"
	"portfolio-cube/internal/profiling"
	"portfolio-cube/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Object implements the physical-material pass for every mesh in the object group
type Object struct {
	shader *graphics.Shader
	meshes *graphics.MeshCache

	envTexture uint32
	envMaxLod  float32
	envVersion int
}

func NewObject() *Object {
	return &Object{}
}

// Init compiles the material shader
func (o *Object) Init() error {
	var err error
	o.shader, err = graphics.NewShader("object.vert", "object.frag")
	if err != nil {
		return fmt.Errorf("object shader: %w", err)
	}
	o.meshes = graphics.NewMeshCache()
	return nil
}

// Render draws each mesh with model = group pose * mesh local transform
func (o *Object) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.object")()

	s := ctx.Scene
	o.syncEnvironment(s)

	o.shader.Use()
	o.shader.SetMatrix4("view", &ctx.View[0])
	o.shader.SetMatrix4("proj", &ctx.Proj[0])
	o.shader.SetVec3("cameraPos", ctx.Camera.Position)
	o.setLights(s.Rig)

	o.shader.SetBool("hasEnvMap", o.envTexture != 0)
	o.shader.SetInt("envMap", 0)
	o.shader.SetFloat("envMaxLod", o.envMaxLod)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.envTexture)

	group := s.Object.Pose.Matrix()
	var bound *scene.PhysicalMaterial
	for i, m := range s.Object.Children {
		if m.Geometry == nil {
			continue
		}
		if i == 0 || m.Material != bound {
			o.setMaterial(m.Material)
			bound = m.Material
		}
		model, normal := meshMatrices(group, m.Local)
		o.shader.SetMatrix4("model", &model[0])
		o.shader.SetMatrix3("normalMatrix", &normal[0])
		o.meshes.Get(m.Geometry).Draw()
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Dispose cleans up OpenGL resources
func (o *Object) Dispose() {
	if o.meshes != nil {
		o.meshes.Dispose()
	}
	if o.envTexture != 0 {
		gl.DeleteTextures(1, &o.envTexture)
		o.envTexture = 0
	}
	if o.shader != nil {
		o.shader.Delete()
	}
}

func (o *Object) SetViewport(width, height int) {}

// syncEnvironment re-uploads the reflection map when the scene installs a new one
func (o *Object) syncEnvironment(s *scene.Scene) {
	img, version := s.Environment()
	if version == o.envVersion {
		return
	}
	defer profiling.Track("renderer.uploadEnvironment")()
	o.envVersion = version
	if o.envTexture != 0 {
		gl.DeleteTextures(1, &o.envTexture)
		o.envTexture = 0
	}
	if img != nil {
		o.envTexture, o.envMaxLod = graphics.UploadEnvironment(img)
	}
}

func (o *Object) setMaterial(m *scene.PhysicalMaterial) {
	if m == nil {
		m = scene.IridescentMaterial()
	}
	o.shader.SetVec3("baseColor", m.Color)
	o.shader.SetFloat("metalness", m.Metalness)
	o.shader.SetFloat("roughness", m.Roughness)
	o.shader.SetFloat("clearcoat", m.Clearcoat)
	o.shader.SetFloat("clearcoatRoughness", m.ClearcoatRoughness)
	o.shader.SetFloat("reflectivity", m.Reflectivity)
	o.shader.SetFloat("envMapIntensity", m.EnvMapIntensity)
	o.shader.SetFloat("iridescence", m.Iridescence)
	o.shader.SetFloat("iridescenceIOR", m.IridescenceIOR)
	o.shader.SetVector2("iridescenceThickness", m.IridescenceThicknessRange[0], m.IridescenceThicknessRange[1])
}

func (o *Object) setLights(rig scene.Rig) {
	lights := lightUniforms(rig)
	o.shader.SetInt("lightCount", int32(len(lights)))
	for i, l := range lights {
		prefix := fmt.Sprintf("lights[%d].", i)
		o.shader.SetInt(prefix+"type", l.Type)
		o.shader.SetVec3(prefix+"color", l.Color)
		o.shader.SetFloat(prefix+"intensity", l.Intensity)
		o.shader.SetVec3(prefix+"position", l.Position)
		o.shader.SetVec3(prefix+"direction", l.Direction)
		o.shader.SetFloat(prefix+"range", l.Range)
	}
}

// lightUniform mirrors the shader's Light struct
type lightUniform struct {
	Type      int32
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Range     float32
}

// lightUniforms flattens the rig, keeping at most scene.MaxLights entries
func lightUniforms(rig scene.Rig) []lightUniform {
	out := make([]lightUniform, 0, scene.MaxLights)
	for _, l := range rig.Lights {
		if l == nil {
			continue
		}
		if len(out) == scene.MaxLights {
			break
		}
		u := lightUniform{
			Type:      int32(l.Type),
			Color:     l.Color,
			Intensity: l.Intensity,
			Position:  l.Position,
			Range:     l.Range,
		}
		if l.Type == scene.LightDirectional {
			u.Direction = l.Direction()
		}
		out = append(out, u)
	}
	return out
}

// meshMatrices returns the model matrix and its normal matrix
func meshMatrices(group, local mgl32.Mat4) (mgl32.Mat4, mgl32.Mat3) {
	model := group.Mul4(local)
	return model, model.Mat3().Inv().Transpose()
}
