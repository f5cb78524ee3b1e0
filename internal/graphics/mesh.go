package graphics

import (
	"sync"

	"portfolio-cube/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertexStride is position + normal, 6 floats.
const vertexStride = 6 * 4

// Mesh is scene geometry uploaded to the GPU.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// NewMesh uploads positions and normals interleaved, plus the index buffer.
func NewMesh(g *scene.Geometry) *Mesh {
	m := &Mesh{count: int32(len(g.Indices))}
	vertices := g.Interleaved()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(g.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return m
}

// Draw issues one indexed draw call
func (m *Mesh) Draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Delete releases the GL buffers
func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = Mesh{}
}

// MeshCache uploads each geometry once, the first time it is drawn.
type MeshCache struct {
	mu     sync.RWMutex
	meshes map[*scene.Geometry]*Mesh
	upload func(*scene.Geometry) *Mesh
}

func NewMeshCache() *MeshCache {
	return &MeshCache{
		meshes: make(map[*scene.Geometry]*Mesh),
		upload: NewMesh,
	}
}

// Get returns the GPU mesh for g, uploading it on first use.
func (c *MeshCache) Get(g *scene.Geometry) *Mesh {
	c.mu.RLock()
	if m, ok := c.meshes[g]; ok {
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if m, ok := c.meshes[g]; ok {
		return m
	}

	m := c.upload(g)
	c.meshes[g] = m
	return m
}

// Len returns the number of uploaded meshes.
func (c *MeshCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.meshes)
}

// Dispose deletes every cached mesh.
func (c *MeshCache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for g, m := range c.meshes {
		m.Delete()
		delete(c.meshes, g)
	}
}
