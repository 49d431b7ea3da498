package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/achilleasa/curvegeom/asset/segments"
	"github.com/achilleasa/curvegeom/geometry"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Compile wavefront polylines into packed segment files.
func CompileSegments(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing wavefront .obj file(s)")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		objFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(objFile, ".obj") {
			logger.Warningf("skipping unsupported file %s", objFile)
			continue
		}

		logger.Noticef("compiling segments: %s", objFile)
		list, err := segments.ReadSegments(objFile)
		if err != nil {
			return err
		}

		logger.Noticef("segment information:\n%s", list.Stats())

		zipFile := strings.TrimSuffix(objFile, ".obj") + ".zip"
		if err = segments.WriteSegments(list, zipFile); err != nil {
			return err
		}
	}

	return nil
}

// Display packed segment file info.
func ShowSegmentInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	list, err := readPacked(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(ctx.App.Writer, list.Stats())
	return nil
}

// Print every segment of a packed segment file.
func DumpSegments(ctx *cli.Context) error {
	setupLogging(ctx)

	list, err := readPacked(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "Geometry", "Position 0", "Radius 0", "UV 0", "Position 1", "Radius 1", "UV 1"})
	for idx, s := range list {
		row := []string{fmt.Sprint(idx), fmt.Sprint(s.GeometryIndex)}
		for _, v := range s.Vertices {
			row = append(row, fmtVertex(v)...)
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func readPacked(ctx *cli.Context) (geometry.SegmentList, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("missing packed segment zip file")
	}

	segFile := ctx.Args().First()
	if !strings.HasSuffix(segFile, ".zip") {
		return nil, errors.New("only packed segment files with a .zip extension are supported")
	}

	return segments.ReadSegments(segFile)
}

func fmtVertex(v geometry.Vertex) []string {
	return []string{
		fmt.Sprintf("%g %g %g", v.Position[0], v.Position[1], v.Position[2]),
		fmt.Sprintf("%g", v.Radius),
		fmt.Sprintf("%g %g", v.TexCoord[0], v.TexCoord[1]),
	}
}
