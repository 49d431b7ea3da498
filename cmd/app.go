package cmd

import "github.com/urfave/cli"

// Create the curvegeom cli application.
func NewApp() *cli.App {
	// The default version flag also claims "-v" which is used for verbosity.
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "curvegeom"
	app.Usage = "pack and inspect tessellated curve segments"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "pack wavefront polylines into a binary segment file",
			Description: `
Parse the "l" polyline elements of wavefront obj files and split each
polyline into line segments. The optional fourth vertex component is used
as the curve radius at that vertex.

The segments are written in their packed binary layout to a zip archive
next to each input file.`,
			ArgsUsage: "curves1.obj curves2.obj ...",
			Action:    CompileSegments,
		},
		{
			Name:      "info",
			Usage:     "display packed segment file statistics",
			ArgsUsage: "curves.zip",
			Action:    ShowSegmentInfo,
		},
		{
			Name:      "dump",
			Usage:     "print every segment of a packed segment file",
			ArgsUsage: "curves.zip",
			Action:    DumpSegments,
		},
	}
	return app
}
