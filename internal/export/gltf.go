// Package export writes packed shell geometry to interchange formats.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"fe-shell-renderer/internal/mathutil"
	"fe-shell-renderer/internal/vertexbuf"
)

// Part is one packed vertex buffer and the name its mesh gets.
type Part struct {
	Name     string
	Vertices []float32
}

// Document builds a glTF document with one mesh and node per non-empty part.
// Normals are normalized here; degenerate faces get +Z.
func Document(parts []Part) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "fe-shell-renderer"

	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{
		Name:                 "shell",
		PBRMetallicRoughness: pbr,
		AlphaMode:            gltf.AlphaOpaque,
		DoubleSided:          true,
	}}

	for _, p := range parts {
		n := vertexbuf.VertexCount(p.Vertices)
		if n == 0 {
			continue
		}
		positions := make([][3]float32, n)
		normals := make([][3]float32, n)
		colors := make([][4]float32, n)
		indices := make([]uint32, n)
		for i := 0; i < n; i++ {
			v := vertexbuf.At(p.Vertices, i)
			positions[i] = v.Pos
			nrm := v.Normal.Normalize()
			if nrm == (mathutil.Vec3{}) {
				nrm = mathutil.Vec3{0, 0, 1}
			}
			normals[i] = nrm
			colors[i] = [4]float32{v.Color[0], v.Color[1], v.Color[2], 1}
			indices[i] = uint32(i)
		}

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: uint32(modeler.WritePosition(doc, positions)),
				gltf.NORMAL:   uint32(modeler.WriteNormal(doc, normals)),
				gltf.COLOR_0:  uint32(modeler.WriteColor(doc, colors)),
			},
			Indices:  gltf.Index(uint32(modeler.WriteIndices(doc, indices))),
			Material: gltf.Index(0),
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: p.Name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: p.Name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc
}

// WriteGLB encodes parts as binary glTF to w.
func WriteGLB(w io.Writer, parts []Part) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(Document(parts)); err != nil {
		return fmt.Errorf("export: encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes parts as a .glb file.
func SaveGLB(path string, parts []Part) error {
	var buf bytes.Buffer
	if err := WriteGLB(&buf, parts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
