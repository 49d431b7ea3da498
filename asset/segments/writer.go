package segments

import "github.com/achilleasa/curvegeom/geometry"

// The Writer interface is implemented by all segment writers.
type Writer interface {
	Write(geometry.SegmentList) error
}

// Write segments to a zip container.
func WriteSegments(list geometry.SegmentList, filename string) error {
	return newZipSegmentWriter(filename).Write(list)
}
