package main

import (
	"os"

	"github.com/achilleasa/curvegeom/cmd"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
