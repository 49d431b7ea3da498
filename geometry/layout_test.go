package geometry

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/achilleasa/curvegeom/types"
)

func TestVertexLayout(t *testing.T) {
	v := NewVertex(types.XYZ(1, 2, 3), 4, types.XY(5, 6))
	data, err := v.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	if len(data) != VertexSize {
		t.Fatalf("expected encoded vertex to be %d bytes; got %d", VertexSize, len(data))
	}

	// Fields must appear in declaration order.
	for idx := 0; idx < 6; idx++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[idx*4:]))
		if got != float32(idx+1) {
			t.Fatalf("expected float %d to be %f; got %f", idx, float32(idx+1), got)
		}
	}

	var decoded Vertex
	if err = decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if decoded != v {
		t.Fatalf("expected decoded vertex to be %+v; got %+v", v, decoded)
	}
}

func TestLineSegmentLayout(t *testing.T) {
	s := NewLineSegment(0xdeadbeef,
		NewVertex(types.XYZ(1, 2, 3), 0.5, types.XY(0, 0)),
		NewVertex(types.XYZ(-1, -2, -3), -0.5, types.XY(1, 1)),
	)
	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	if len(data) != LineSegmentSize {
		t.Fatalf("expected encoded segment to be %d bytes; got %d", LineSegmentSize, len(data))
	}
	if got := binary.LittleEndian.Uint32(data); got != 0xdeadbeef {
		t.Fatalf("expected geometry index to be stored first; got %x", got)
	}

	var decoded LineSegment
	if err = decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if decoded != s {
		t.Fatalf("expected decoded segment to be %+v; got %+v", s, decoded)
	}
}

func TestUnmarshalWrongSize(t *testing.T) {
	var v Vertex
	if err := v.UnmarshalBinary(make([]byte, VertexSize-1)); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer; got %v", err)
	}

	var s LineSegment
	if err := s.UnmarshalBinary(make([]byte, LineSegmentSize+1)); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer; got %v", err)
	}
}

func TestNaNSurvivesEncoding(t *testing.T) {
	nanBits := uint32(0x7fc00001)
	v := Vertex{Radius: math.Float32frombits(nanBits)}

	data, _ := v.MarshalBinary()
	var decoded Vertex
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}

	if got := math.Float32bits(decoded.Radius); got != nanBits {
		t.Fatalf("expected NaN payload %x to be preserved; got %x", nanBits, got)
	}
}

func TestSegmentListStream(t *testing.T) {
	list := SegmentList{
		NewLineSegment(0, NewVertex(types.XYZ(0, 0, 0), 1, types.XY(0, 0)), NewVertex(types.XYZ(1, 0, 0), 1, types.XY(0.5, 0))),
		NewLineSegment(0, NewVertex(types.XYZ(1, 0, 0), 1, types.XY(0.5, 0)), NewVertex(types.XYZ(2, 0, 0), 0.5, types.XY(1, 0))),
		NewLineSegment(7, Vertex{}, Vertex{}),
	}

	var buf bytes.Buffer
	n, err := list.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}

	expLen := int64(4 + len(list)*LineSegmentSize)
	if n != expLen || int64(buf.Len()) != expLen {
		t.Fatalf("expected %d bytes to be written; got %d (buffer %d)", expLen, n, buf.Len())
	}

	decoded, err := ReadSegmentList(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(list) {
		t.Fatalf("expected %d segments; got %d", len(list), len(decoded))
	}
	for idx := range list {
		if decoded[idx] != list[idx] {
			t.Fatalf("expected segment %d to be %+v; got %+v", idx, list[idx], decoded[idx])
		}
	}
}

func TestReadEmptySegmentList(t *testing.T) {
	var buf bytes.Buffer
	if _, err := SegmentList(nil).WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	list, err := ReadSegmentList(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list; got %d segments", len(list))
	}
}

func TestReadTruncatedSegmentList(t *testing.T) {
	var buf bytes.Buffer
	SegmentList{{GeometryIndex: 1}, {GeometryIndex: 2}}.WriteTo(&buf)
	data := buf.Bytes()[:buf.Len()-1]

	_, err := ReadSegmentList(bytes.NewReader(data))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF; got %v", err)
	}
	if !strings.Contains(err.Error(), "segment 1 of 2") {
		t.Fatalf("expected error to mention the failing record; got %v", err)
	}

	_, err = ReadSegmentList(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF for missing header; got %v", err)
	}
}
