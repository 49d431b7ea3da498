package segments

import (
	"bufio"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/curvegeom/asset"
	"github.com/achilleasa/curvegeom/geometry"
	"github.com/achilleasa/curvegeom/log"
	"github.com/achilleasa/curvegeom/types"
)

// wavefrontReader extracts line segments from the polyline ("l") elements
// of wavefront object files. The optional fourth "v" component stores the
// vertex radius.
type wavefrontReader struct {
	logger log.Logger

	vertexList []types.Vec3
	radiusList []float32
	uvList     []types.Vec2

	segments geometry.SegmentList
	nextGeom uint32
	errStack []string

	// Paths of the resources currently being parsed; used to detect
	// include cycles.
	openPaths map[string]struct{}

	maxLineLength int
}

// Polyline statements for long curves easily exceed the default scanner
// token size.
const defaultMaxLineLength = 64 * 1024 * 1024

func newWavefrontReader() *wavefrontReader {
	return &wavefrontReader{
		logger:     log.New("wavefront reader"),
		vertexList: make([]types.Vec3, 0),
		radiusList: make([]float32, 0),
		uvList:     make([]types.Vec2, 0),
		segments:   make(geometry.SegmentList, 0),
		errStack:   make([]string, 0),
		openPaths:  make(map[string]struct{}),

		maxLineLength: defaultMaxLineLength,
	}
}

// Read polylines from a wavefront resource.
func (r *wavefrontReader) Read(res *asset.Resource) (geometry.SegmentList, error) {
	r.logger.Noticef(`parsing polylines from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}

	r.logger.Noticef("parsed %d segments from %d polylines in %d ms", len(r.segments), r.nextGeom, time.Since(start).Nanoseconds()/1e6)
	return r.segments, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return fmt.Errorf("%s", strings.Trim(
		fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
		"\n",
	))
}

func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}

func (r *wavefrontReader) parse(res *asset.Resource) error {
	lineNum := 0

	// Positive indices in included files are relative to the coords
	// defined before the include.
	relVertexOffset := len(r.vertexList)
	relUvOffset := len(r.uvList)

	r.openPaths[path.Clean(res.Path())] = struct{}{}
	defer delete(r.openPaths, path.Clean(res.Path()))

	scanner := bufio.NewScanner(res)
	scanner.Buffer(nil, r.maxLineLength)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "call"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [call]", res.Path(), lineNum))
			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			if _, open := r.openPaths[path.Clean(incRes.Path())]; open {
				incRes.Close()
				r.popFrame()
				return r.emitError(res.Path(), lineNum, `include cycle detected for "%s"`, incRes.Path())
			}
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "v":
			v, radius, err := parseVertex(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
			r.radiusList = append(r.radiusList, radius)
		case "vt":
			uv, err := parseVec2(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.uvList = append(r.uvList, uv)
		case "l":
			segList, err := r.parsePolyline(lineTokens, relVertexOffset, relUvOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.segments = append(r.segments, segList...)
			r.nextGeom++
		default:
			r.logger.Debugf("%s:%d: ignoring unsupported statement %q", res.Path(), lineNum, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum+1, "%s", err.Error())
	}
	return nil
}

// Convert a polyline statement with N points into N-1 segments sharing the
// next geometry index.
func (r *wavefrontReader) parsePolyline(lineTokens []string, relVertexOffset, relUvOffset int) (geometry.SegmentList, error) {
	if len(lineTokens) < 3 {
		return nil, fmt.Errorf(`unsupported syntax for "l"; expected at least 2 points; got %d`, len(lineTokens)-1)
	}

	points := make([]geometry.Vertex, len(lineTokens)-1)
	for idx, token := range lineTokens[1:] {
		indices := strings.Split(token, "/")
		if len(indices) > 2 {
			return nil, fmt.Errorf(`unsupported polyline point %q; expected "v" or "v/vt"`, token)
		}

		vIndex, err := selectCoordIndex(indices[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return nil, fmt.Errorf("could not decode vertex index for point %d: %s", idx, err.Error())
		}
		points[idx].Position = r.vertexList[vIndex]
		points[idx].Radius = r.radiusList[vIndex]

		if len(indices) == 2 && indices[1] != "" {
			uvIndex, err := selectCoordIndex(indices[1], len(r.uvList), relUvOffset)
			if err != nil {
				return nil, fmt.Errorf("could not decode tex coord index for point %d: %s", idx, err.Error())
			}
			points[idx].TexCoord = r.uvList[uvIndex]
		}
	}

	segList := make(geometry.SegmentList, len(points)-1)
	for idx := range segList {
		segList[idx] = geometry.NewLineSegment(r.nextGeom, points[idx], points[idx+1])
		if err := segList[idx].Validate(); err != nil {
			return nil, fmt.Errorf("segment %d: %w", idx, err)
		}
	}
	return segList, nil
}

// Given a 1-based or negative (relative to the end) coordinate index,
// calculate the offset into a coord list.
func selectCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	switch {
	case index < 0:
		offset = coordListLen + int(index)
	case index == 0:
		return -1, fmt.Errorf("index 0 is not valid")
	default:
		offset = relOffset + int(index-1)
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// Parse a "v x y z [radius]" row.
func parseVertex(lineTokens []string) (types.Vec3, float32, error) {
	if len(lineTokens) != 4 && len(lineTokens) != 5 {
		return types.Vec3{}, 0, fmt.Errorf(`unsupported syntax for "v"; expected 3 or 4 arguments; got %d`, len(lineTokens)-1)
	}

	var v types.Vec3
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, 0, err
		}
		v[tokIdx-1] = float32(coord)
	}

	var radius float64
	if len(lineTokens) == 5 {
		var err error
		if radius, err = strconv.ParseFloat(lineTokens[4], 32); err != nil {
			return v, 0, err
		}
	}
	return v, float32(radius), nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) < 3 {
		return types.Vec2{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	var v types.Vec2
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
