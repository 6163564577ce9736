package models

// NewCube returns the 20-unit demo cube centred on the origin.
//
// Five faces are flat shaded. The yellow face at x = -10 has corner normals
// pointing away from the centre, so diffuse lighting makes it look rounded.
func NewCube() *Mesh {
	const k = 0.577 // 1/sqrt(3), rounded

	m := NewMesh("cube")
	m.Add(
		// +z, blue
		Triangle{V: [3]Vertex{
			V(-10, -10, 10, 0, 0, 1, 1, 0, 0, 1),
			V(-10, 10, 10, 0, 0, 1, 1, 0, 0, 1),
			V(10, -10, 10, 0, 0, 1, 1, 0, 0, 1),
		}},
		Triangle{V: [3]Vertex{
			V(-10, 10, 10, 0, 0, 1, 1, 0, 0, 1),
			V(10, -10, 10, 0, 0, 1, 1, 0, 0, 1),
			V(10, 10, 10, 0, 0, 1, 1, 0, 0, 1),
		}},

		// -z, per-vertex colors
		Triangle{V: [3]Vertex{
			V(-10, -10, -10, 1, 0, 0, 1, 0, 0, -1),
			V(10, -10, -10, 0, 1, 0, 1, 0, 0, -1),
			V(10, 10, -10, 0, 0, 1, 1, 0, 0, -1),
		}},
		Triangle{V: [3]Vertex{
			V(-10, -10, -10, 1, 1, 0, 1, 0, 0, -1),
			V(10, 10, -10, 0, 1, 1, 1, 0, 0, -1),
			V(-10, 10, -10, 1, 0, 1, 1, 0, 0, -1),
		}},

		// +y, red
		Triangle{V: [3]Vertex{
			V(-10, 10, -10, 1, 0, 0, 1, 0, 1, 0),
			V(-10, 10, 10, 1, 0, 0, 1, 0, 1, 0),
			V(10, 10, -10, 1, 0, 0, 1, 0, 1, 0),
		}},
		Triangle{V: [3]Vertex{
			V(-10, 10, 10, 1, 0, 0, 1, 0, 1, 0),
			V(10, 10, -10, 1, 0, 0, 1, 0, 1, 0),
			V(10, 10, 10, 1, 0, 0, 1, 0, 1, 0),
		}},

		// -y, white
		Triangle{V: [3]Vertex{
			V(-10, -10, -10, 1, 1, 1, 1, 0, -1, 0),
			V(10, -10, -10, 1, 1, 1, 1, 0, -1, 0),
			V(-10, -10, 10, 1, 1, 1, 1, 0, -1, 0),
		}},
		Triangle{V: [3]Vertex{
			V(-10, -10, 10, 1, 1, 1, 1, 0, -1, 0),
			V(10, -10, 10, 1, 1, 1, 1, 0, -1, 0),
			V(10, -10, -10, 1, 1, 1, 1, 0, -1, 0),
		}},

		// +x, green
		Triangle{V: [3]Vertex{
			V(10, -10, -10, 0, 1, 0, 1, 1, 0, 0),
			V(10, -10, 10, 0, 1, 0, 1, 1, 0, 0),
			V(10, 10, -10, 0, 1, 0, 1, 1, 0, 0),
		}},
		Triangle{V: [3]Vertex{
			V(10, -10, 10, 0, 1, 0, 1, 1, 0, 0),
			V(10, 10, -10, 0, 1, 0, 1, 1, 0, 0),
			V(10, 10, 10, 0, 1, 0, 1, 1, 0, 0),
		}},

		// -x, yellow, rounded normals
		Triangle{V: [3]Vertex{
			V(-10, -10, -10, 1, 1, 0, 1, -k, -k, -k),
			V(-10, 10, -10, 1, 1, 0, 1, -k, k, -k),
			V(-10, -10, 10, 1, 1, 0, 1, -k, -k, k),
		}},
		Triangle{V: [3]Vertex{
			V(-10, -10, 10, 1, 1, 0, 1, -k, -k, k),
			V(-10, 10, 10, 1, 1, 0, 1, -k, k, k),
			V(-10, 10, -10, 1, 1, 0, 1, -k, k, -k),
		}},
	)
	m.CalculateBounds()
	return m
}
