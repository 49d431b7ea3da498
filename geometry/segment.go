package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/achilleasa/curvegeom/types"
)

var (
	// Returned by Validate for segments whose vertices hold non-finite or
	// negative values.
	ErrInvalidSegment = errors.New("invalid line segment")
)

// A LineSegment connects two curve vertices. GeometryIndex identifies the
// curve that the segment was sampled from.
type LineSegment struct {
	GeometryIndex uint32
	Vertices      [2]Vertex
}

// Create a segment from its two endpoints.
func NewLineSegment(geometryIndex uint32, v0, v1 Vertex) LineSegment {
	return LineSegment{
		GeometryIndex: geometryIndex,
		Vertices:      [2]Vertex{v0, v1},
	}
}

// Get a conservative bbox for the segment. The box encloses the spheres
// around both endpoints and, since the radius is interpolated linearly
// between them, the whole swept volume too.
func (s LineSegment) BBox() [2]types.Vec3 {
	b0 := s.Vertices[0].BBox()
	b1 := s.Vertices[1].BBox()
	return [2]types.Vec3{
		types.MinVec3(b0[0], b1[0]),
		types.MaxVec3(b0[1], b1[1]),
	}
}

// Get the center of the segment bbox.
func (s LineSegment) Center() types.Vec3 {
	bbox := s.BBox()
	return bbox[0].Add(bbox[1]).Mul(0.5)
}

// Get the distance between the segment endpoints.
func (s LineSegment) Length() float32 {
	return s.Vertices[1].Position.Sub(s.Vertices[0].Position).Len()
}

// Check that both vertices contain finite values and a non-negative radius.
// The returned error wraps ErrInvalidSegment.
func (s LineSegment) Validate() error {
	for idx, v := range s.Vertices {
		switch {
		case !v.Position.IsFinite():
			return fmt.Errorf("%w: vertex %d has non-finite position %v", ErrInvalidSegment, idx, v.Position)
		case !v.TexCoord.IsFinite():
			return fmt.Errorf("%w: vertex %d has non-finite tex coord %v", ErrInvalidSegment, idx, v.TexCoord)
		case math.IsNaN(float64(v.Radius)) || math.IsInf(float64(v.Radius), 0):
			return fmt.Errorf("%w: vertex %d has non-finite radius", ErrInvalidSegment, idx)
		case v.Radius < 0:
			return fmt.Errorf("%w: vertex %d has negative radius %g", ErrInvalidSegment, idx, v.Radius)
		}
	}
	return nil
}
