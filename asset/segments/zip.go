package segments

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/achilleasa/curvegeom/asset"
	"github.com/achilleasa/curvegeom/geometry"
	"github.com/achilleasa/curvegeom/log"
)

const (
	dataFile = "segments.bin"
)

type zipSegmentWriter struct {
	logger   log.Logger
	filename string
}

func newZipSegmentWriter(filename string) *zipSegmentWriter {
	return &zipSegmentWriter{
		logger:   log.New("zip writer"),
		filename: filename,
	}
}

// Write packed segments to a zip file.
func (w *zipSegmentWriter) Write(list geometry.SegmentList) error {
	w.logger.Noticef(`writing %d segments to "%s"`, len(list), w.filename)
	start := time.Now()

	f, err := os.Create(w.filename)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(f)
	err = writeEntry(zw, list)
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("zipSegmentWriter: failed to write %s: %w", w.filename, err)
	}

	w.logger.Noticef("wrote segments in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

func writeEntry(zw *zip.Writer, list geometry.SegmentList) error {
	cw, err := zw.Create(dataFile)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(cw)
	if _, err = list.WriteTo(bw); err != nil {
		return err
	}
	return bw.Flush()
}

type zipSegmentReader struct {
	logger log.Logger
}

func newZipSegmentReader() *zipSegmentReader {
	return &zipSegmentReader{
		logger: log.New("zip reader"),
	}
}

// Read packed segments from a zip resource.
func (p *zipSegmentReader) Read(res *asset.Resource) (geometry.SegmentList, error) {
	p.logger.Noticef(`reading packed segments from "%s"`, res.Path())
	start := time.Now()

	// zip.NewReader needs an io.ReaderAt so the resource is buffered in
	// memory; remote resources cannot be seeked.
	data, err := ioutil.ReadAll(res)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zipSegmentReader: %s: %w", res.Path(), err)
	}

	var list geometry.SegmentList
	var found bool
	for _, f := range zr.File {
		if f.Name != dataFile {
			p.logger.Warningf("unknown file %s in segment zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		list, err = geometry.ReadSegmentList(bufio.NewReader(rc))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("zipSegmentReader: failed to load %s: %w", f.Name, err)
		}
		found = true
	}

	if !found {
		return nil, fmt.Errorf("zipSegmentReader: %s does not contain %s", res.Path(), dataFile)
	}

	p.logger.Noticef("loaded %d segments in %d ms", len(list), time.Since(start).Nanoseconds()/1e6)
	return list, nil
}
