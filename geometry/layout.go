package geometry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Packed sizes of the binary representations. Fields are stored in
// declaration order, little-endian, without padding.
const (
	VertexSize      = 6 * 4
	LineSegmentSize = 4 + 2*VertexSize
)

var (
	// Returned when decoding from a buffer whose length does not match the
	// packed record size.
	ErrShortBuffer = errors.New("buffer size does not match record size")

	byteOrder = binary.LittleEndian
)

// Encode the vertex as VertexSize bytes.
func (v Vertex) MarshalBinary() ([]byte, error) {
	buf := make([]byte, VertexSize)
	putVertex(buf, v)
	return buf, nil
}

// Decode a vertex from exactly VertexSize bytes.
func (v *Vertex) UnmarshalBinary(data []byte) error {
	if len(data) != VertexSize {
		return fmt.Errorf("vertex: %w (expected %d bytes; got %d)", ErrShortBuffer, VertexSize, len(data))
	}
	*v = getVertex(data)
	return nil
}

// Encode the segment as LineSegmentSize bytes.
func (s LineSegment) MarshalBinary() ([]byte, error) {
	buf := make([]byte, LineSegmentSize)
	putSegment(buf, s)
	return buf, nil
}

// Decode a segment from exactly LineSegmentSize bytes.
func (s *LineSegment) UnmarshalBinary(data []byte) error {
	if len(data) != LineSegmentSize {
		return fmt.Errorf("line segment: %w (expected %d bytes; got %d)", ErrShortBuffer, LineSegmentSize, len(data))
	}
	*s = getSegment(data)
	return nil
}

// Write the list as a uint32 record count followed by the packed segments.
// WriteTo implements io.WriterTo.
func (l SegmentList) WriteTo(w io.Writer) (int64, error) {
	if uint64(len(l)) > math.MaxUint32 {
		return 0, fmt.Errorf("segment list: too many segments (%d)", len(l))
	}

	var written int64
	var hdr [4]byte
	byteOrder.PutUint32(hdr[:], uint32(len(l)))
	n, err := w.Write(hdr[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	rec := make([]byte, LineSegmentSize)
	for _, s := range l {
		putSegment(rec, s)
		n, err = w.Write(rec)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Read a segment list written by SegmentList.WriteTo.
func ReadSegmentList(r io.Reader) (SegmentList, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("segment list: could not read header: %w", err)
	}
	count := byteOrder.Uint32(hdr[:])

	// The header is untrusted; grow the list as records arrive.
	capHint := count
	if capHint > 1<<16 {
		capHint = 1 << 16
	}
	list := make(SegmentList, 0, capHint)

	rec := make([]byte, LineSegmentSize)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, fmt.Errorf("segment list: could not read segment %d of %d: %w", i, count, err)
		}
		list = append(list, getSegment(rec))
	}
	return list, nil
}

func putVertex(buf []byte, v Vertex) {
	byteOrder.PutUint32(buf[0:], math.Float32bits(v.Position[0]))
	byteOrder.PutUint32(buf[4:], math.Float32bits(v.Position[1]))
	byteOrder.PutUint32(buf[8:], math.Float32bits(v.Position[2]))
	byteOrder.PutUint32(buf[12:], math.Float32bits(v.Radius))
	byteOrder.PutUint32(buf[16:], math.Float32bits(v.TexCoord[0]))
	byteOrder.PutUint32(buf[20:], math.Float32bits(v.TexCoord[1]))
}

func getVertex(buf []byte) Vertex {
	var v Vertex
	v.Position[0] = math.Float32frombits(byteOrder.Uint32(buf[0:]))
	v.Position[1] = math.Float32frombits(byteOrder.Uint32(buf[4:]))
	v.Position[2] = math.Float32frombits(byteOrder.Uint32(buf[8:]))
	v.Radius = math.Float32frombits(byteOrder.Uint32(buf[12:]))
	v.TexCoord[0] = math.Float32frombits(byteOrder.Uint32(buf[16:]))
	v.TexCoord[1] = math.Float32frombits(byteOrder.Uint32(buf[20:]))
	return v
}

func putSegment(buf []byte, s LineSegment) {
	byteOrder.PutUint32(buf[0:], s.GeometryIndex)
	putVertex(buf[4:], s.Vertices[0])
	putVertex(buf[4+VertexSize:], s.Vertices[1])
}

func getSegment(buf []byte) LineSegment {
	return LineSegment{
		GeometryIndex: byteOrder.Uint32(buf[0:]),
		Vertices: [2]Vertex{
			getVertex(buf[4:]),
			getVertex(buf[4+VertexSize:]),
		},
	}
}
