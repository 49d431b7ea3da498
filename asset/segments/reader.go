package segments

import (
	"fmt"
	"strings"

	"github.com/achilleasa/curvegeom/asset"
	"github.com/achilleasa/curvegeom/geometry"
)

// The Reader interface is implemented by all segment readers.
type Reader interface {
	// Read segments from a resource.
	Read(*asset.Resource) (geometry.SegmentList, error)
}

// Read segments from a local file or http(s) URL. The reader is selected
// based on the file extension.
func ReadSegments(filename string) (geometry.SegmentList, error) {
	var reader Reader
	switch {
	case strings.HasSuffix(filename, ".obj"):
		reader = newWavefrontReader()
	case strings.HasSuffix(filename, ".zip"):
		reader = newZipSegmentReader()
	default:
		return nil, fmt.Errorf("readSegments: unsupported file format for %q", filename)
	}

	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
