package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/scanline/pkg/math3d"
)

// colorAttribute is the glTF vertex color attribute name.
const colorAttribute = "COLOR_0"

// GLTFLoader loads GLTF/GLB files into a flat triangle Mesh.
type GLTFLoader struct {
	// DefaultColor is used when a primitive has neither vertex colors nor
	// a material base color.
	DefaultColor Color

	// CalculateNormals fills in face normals for primitives without NORMAL.
	CalculateNormals bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		DefaultColor:     Color{0.8, 0.8, 0.8, 1},
		CalculateNormals: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) or .gltf file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// LoadFile loads a mesh by extension. Only .glb and .gltf are supported.
func LoadFile(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path))
}

// FromDocument converts every triangle primitive of an already decoded
// document. Node transforms are ignored.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh appends the triangles of one GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var colors []Color
		if colIdx, ok := prim.Attributes[colorAttribute]; ok {
			colors, err = readColorAccessor(doc, colIdx)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		base := l.materialColor(doc, prim.Material)

		vertex := func(i int) Vertex {
			v := Vertex{Position: positions[i], Color: base}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(colors) {
				v.Color = colors[i]
			}
			return v
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var tri Triangle
			for j := range 3 {
				idx := indices[i+j]
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
				}
				tri.V[j] = vertex(idx)
			}
			if len(normals) == 0 && l.CalculateNormals {
				n := tri.FaceNormal()
				for j := range 3 {
					tri.V[j].Normal = n
				}
			}
			mesh.Add(tri)
		}
	}

	return nil
}

// materialColor resolves a primitive's base color factor.
func (l *GLTFLoader) materialColor(doc *gltf.Document, matIdx *int) Color {
	if matIdx == nil || *matIdx < 0 || *matIdx >= len(doc.Materials) {
		return l.DefaultColor
	}
	mat := doc.Materials[*matIdx]
	if mat == nil || mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return l.DefaultColor
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	return Color{f[0], f[1], f[2], f[3]}
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	floats, err := readFloats(doc, accessor, 3)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		result[i] = math3d.V3(floats[i*3], floats[i*3+1], floats[i*3+2])
	}
	return result, nil
}

// readColorAccessor reads COLOR_0 as VEC3 or VEC4 floats.
func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]Color, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}

	var n int
	switch accessor.Type {
	case gltf.AccessorVec3:
		n = 3
	case gltf.AccessorVec4:
		n = 4
	default:
		return nil, fmt.Errorf("expected VEC3 or VEC4 color, got %v", accessor.Type)
	}

	floats, err := readFloats(doc, accessor, n)
	if err != nil {
		return nil, err
	}

	result := make([]Color, accessor.Count)
	for i := range result {
		c := Color{floats[i*n], floats[i*n+1], floats[i*n+2], 1}
		if n == 4 {
			c.A = floats[i*n+3]
		}
		result[i] = c
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// readFloats reads n float32 components per element.
func readFloats(doc *gltf.Document, accessor *gltf.Accessor, n int) ([]float64, error) {
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported component type %v (want float)", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, n*4)
	if err != nil {
		return nil, err
	}

	result := make([]float64, accessor.Count*n)
	for i := range accessor.Count {
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[i*stride+j*4:])
			result[i*n+j] = float64(math.Float32frombits(bits))
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's bytes starting at its first element,
// plus the element stride. elemSize is the packed size of one element.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]

	// gltf.Open resolves external URIs into Data, so only check for emptiness.
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	if accessor.Count == 0 {
		return nil, stride, nil
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if start < 0 || end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor reads bytes [%d, %d) past buffer of %d", start, end, len(buffer.Data))
	}

	return buffer.Data[start:end], stride, nil
}

func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}
