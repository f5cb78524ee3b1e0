// Package lightmarker outlines point light positions with a small wire cube.
package lightmarker

import (
	"portfolio-cube/internal/graphics"
	renderer "portfolio-cube/internal/graphics/renderer"
	"portfolio-cube/internal/profiling"
	"portfolio-cube/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// markerSize is the edge length of the wire cube in world units.
const markerSize = 0.3

// cubeEdges are the 12 edges of a unit cube as line pairs.
var cubeEdges = []float32{
	// Front face
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, -0.5, 0.5,

	// Back face
	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5, -0.5, -0.5, -0.5,

	// Connecting edges
	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
}

// LightMarker draws a wire cube at every point light. Hidden until toggled.
type LightMarker struct {
	shader  *graphics.Shader
	vao     uint32
	vbo     uint32
	visible bool
}

func NewLightMarker() *LightMarker {
	return &LightMarker{}
}

// Init compiles the shader and uploads the edge list
func (w *LightMarker) Init() error {
	var err error
	w.shader, err = graphics.NewShader("marker.vert", "marker.frag")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeEdges)*4, gl.Ptr(cubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)

	return nil
}

func (w *LightMarker) Render(ctx renderer.RenderContext) {
	if !w.visible {
		return
	}
	defer profiling.Track("renderer.lightMarker")()

	w.shader.Use()
	w.shader.SetMatrix4("proj", &ctx.Proj[0])
	w.shader.SetMatrix4("view", &ctx.View[0])

	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	for _, l := range ctx.Scene.Rig.Lights {
		if l == nil || l.Type != scene.LightPoint {
			continue
		}
		model := markerMatrix(l.Position)
		w.shader.SetMatrix4("model", &model[0])
		w.shader.SetVec3("color", l.Color)
		gl.DrawArrays(gl.LINES, 0, int32(len(cubeEdges)/3))
	}
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (w *LightMarker) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}

func (w *LightMarker) SetViewport(width, height int) {}

// Toggle flips marker visibility
func (w *LightMarker) Toggle() { w.visible = !w.visible }

func (w *LightMarker) Visible() bool { return w.visible }

func markerMatrix(pos mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(markerSize, markerSize, markerSize))
}
