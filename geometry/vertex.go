package geometry

import (
	"math"

	"github.com/achilleasa/curvegeom/types"
)

// A Vertex is a single sample of a tessellated curve. The zero value places
// the vertex at the origin with zero radius and zero texture coordinates.
type Vertex struct {
	Position types.Vec3

	// The local thickness of the curve at this vertex. Readers reject
	// negative values but the type itself does not.
	Radius float32

	TexCoord types.Vec2
}

// Create a vertex from its components.
func NewVertex(position types.Vec3, radius float32, texCoord types.Vec2) Vertex {
	return Vertex{
		Position: position,
		Radius:   radius,
		TexCoord: texCoord,
	}
}

// Get the axis-aligned box enclosing the sphere of the vertex radius.
func (v Vertex) BBox() [2]types.Vec3 {
	r := float32(math.Abs(float64(v.Radius)))
	ext := types.XYZ(r, r, r)
	return [2]types.Vec3{v.Position.Sub(ext), v.Position.Add(ext)}
}
