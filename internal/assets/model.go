package assets

import (
	"bytes"
	"fmt"

	"portfolio-cube/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Part is one triangle primitive with its node transforms already applied.
type Part struct {
	Name     string
	Geometry *scene.Geometry
}

// Model is a decoded model ready to be parented under the object group.
type Model struct {
	Source string
	Parts  []Part
}

// Bounds returns the bounding box of every part.
func (m *Model) Bounds() (min, max mgl32.Vec3) {
	first := true
	for _, p := range m.Parts {
		if p.Geometry.VertexCount() == 0 {
			continue
		}
		pmin, pmax := p.Geometry.Bounds()
		if first {
			min, max, first = pmin, pmax, false
			continue
		}
		for i := 0; i < 3; i++ {
			if pmin[i] < min[i] {
				min[i] = pmin[i]
			}
			if pmax[i] > max[i] {
				max[i] = pmax[i]
			}
		}
	}
	return
}

// DecodeModel decodes glTF JSON or GLB bytes. Buffers must be embedded
// (GLB chunk or data URI).
func DecodeModel(data []byte) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	return modelFromDocument(doc)
}

// OpenModel reads a glTF or GLB file from disk, resolving buffers that
// live next to it.
func OpenModel(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return modelFromDocument(doc)
}

func modelFromDocument(doc *gltf.Document) (*Model, error) {
	w := &nodeWalker{doc: doc, visiting: make(map[int]bool)}
	for _, root := range sceneRoots(doc) {
		if err := w.walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	if len(w.parts) == 0 {
		return nil, ErrEmptyModel
	}
	return &Model{Parts: w.parts}, nil
}

// sceneRoots returns the root nodes of the default scene, falling back to
// the first scene and then to every node that is nobody's child.
func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

type nodeWalker struct {
	doc      *gltf.Document
	visiting map[int]bool
	parts    []Part
}

func (w *nodeWalker) walk(idx int, parent mgl32.Mat4) error {
	if idx < 0 || idx >= len(w.doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	if w.visiting[idx] {
		return fmt.Errorf("node %d: cycle in node hierarchy", idx)
	}
	w.visiting[idx] = true
	defer delete(w.visiting, idx)

	node := w.doc.Nodes[idx]
	world := parent.Mul4(localMatrix(node))

	if node.Mesh != nil {
		if err := w.addMesh(*node.Mesh, node.Name, world); err != nil {
			return err
		}
	}
	for _, c := range node.Children {
		if err := w.walk(c, world); err != nil {
			return err
		}
	}
	return nil
}

func (w *nodeWalker) addMesh(meshIdx int, nodeName string, world mgl32.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(w.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	mesh := w.doc.Meshes[meshIdx]
	name := mesh.Name
	if name == "" {
		name = nodeName
	}
	for i, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		g, err := w.readPrimitive(prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", name, i, err)
		}
		if g == nil {
			continue
		}
		w.parts = append(w.parts, Part{Name: name, Geometry: g.Transform(world)})
	}
	return nil
}

func (w *nodeWalker) readPrimitive(prim *gltf.Primitive) (*scene.Geometry, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	acc, err := w.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(w.doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	g := &scene.Geometry{Positions: make([]mgl32.Vec3, len(positions))}
	for i, p := range positions {
		g.Positions[i] = mgl32.Vec3(p)
	}

	if prim.Indices != nil {
		acc, err := w.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		g.Indices, err = modeler.ReadIndices(w.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		g.Indices = make([]uint32, len(positions))
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}

	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acc, err := w.accessor(nIdx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(w.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		if len(normals) == len(positions) {
			g.Normals = make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				g.Normals[i] = mgl32.Vec3(n)
			}
		}
	}
	if g.Normals == nil {
		g.ComputeNormals()
	}
	return g, nil
}

func (w *nodeWalker) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(w.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return w.doc.Accessors[idx], nil
}

// localMatrix returns the node's matrix, or its TRS composition when the
// matrix is absent or identity.
func localMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.Matrix {
		m[i] = float32(v)
	}
	if m != (mgl32.Mat4{}) && m != mgl32.Ident4() {
		return m
	}

	t := mgl32.Translate3D(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))

	r := mgl32.Ident4()
	if q := n.Rotation; q != [4]float64{} {
		// glTF stores x, y, z, w
		r = mgl32.Quat{W: float32(q[3]), V: mgl32.Vec3{float32(q[0]), float32(q[1]), float32(q[2])}}.Normalize().Mat4()
	}

	s := mgl32.Ident4()
	if sc := n.Scale; sc != [3]float64{} {
		s = mgl32.Scale3D(float32(sc[0]), float32(sc[1]), float32(sc[2]))
	}
	return t.Mul4(r).Mul4(s)
}
