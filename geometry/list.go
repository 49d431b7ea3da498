package geometry

import (
	"bytes"
	"fmt"
	"math"

	"github.com/achilleasa/curvegeom/types"
	"github.com/olekukonko/tablewriter"
)

// A SegmentList stores segments as a contiguous array of structs.
type SegmentList []LineSegment

// Get the bbox enclosing all segments. An empty list yields a zero bbox.
func (l SegmentList) BBox() [2]types.Vec3 {
	if len(l) == 0 {
		return [2]types.Vec3{}
	}

	bbox := l[0].BBox()
	for _, s := range l[1:] {
		sb := s.BBox()
		bbox[0] = types.MinVec3(bbox[0], sb[0])
		bbox[1] = types.MaxVec3(bbox[1], sb[1])
	}
	return bbox
}

// Count the distinct geometry indices referenced by the list.
func (l SegmentList) GeometryCount() int {
	seen := make(map[uint32]struct{})
	for _, s := range l {
		seen[s.GeometryIndex] = struct{}{}
	}
	return len(seen)
}

// Get the min and max radius over all segment vertices. NaN radii are
// ignored; if no radius is counted the range is [0, 0].
func (l SegmentList) RadiusRange() (min, max float32) {
	var counted bool
	for _, s := range l {
		for _, v := range s.Vertices {
			if math.IsNaN(float64(v.Radius)) {
				continue
			}
			if !counted || v.Radius < min {
				min = v.Radius
			}
			if !counted || v.Radius > max {
				max = v.Radius
			}
			counted = true
		}
	}
	return min, max
}

// Build a tabular representation of segment list statistics.
func (l SegmentList) Stats() string {
	bbox := l.BBox()
	minR, maxR := l.RadiusRange()

	var totalLen float64
	for _, s := range l {
		totalLen += float64(s.Length())
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Geometries", fmt.Sprintf("%d", l.GeometryCount())})
	table.Append([]string{"Segments", fmt.Sprintf("%d", len(l))})
	table.Append([]string{"Vertices", fmt.Sprintf("%d", 2*len(l))})
	table.Append([]string{"Total length", fmt.Sprintf("%.4f", totalLen)})
	table.Append([]string{"Radius range", fmt.Sprintf("[%.4f, %.4f]", minR, maxR)})
	table.Append([]string{"BBox min", fmtVec3(bbox[0])})
	table.Append([]string{"BBox max", fmtVec3(bbox[1])})
	table.SetFooter([]string{"Size", fmtSize(4 + len(l)*LineSegmentSize)})

	table.Render()
	return buf.String()
}

func fmtVec3(v types.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}

// Format a byte count with the appropriate byte/kb/mb unit.
func fmtSize(totalBytes int) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%d bytes", totalBytes)
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%.1f kb", float32(totalBytes)/1e3)
	}
	return fmt.Sprintf("%.1f mb", float32(totalBytes)/1e6)
}
