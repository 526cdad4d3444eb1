// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	gmath "math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"gofps/math/vec"
	"gofps/portal"
)

// The compiled form of a level uses the protobuf wire format:
//
//	message Level    { repeated Cell cells = 1; }
//	message Cell     { string id = 1; fixed32 min_x = 2; fixed32 min_y = 3;
//	                   fixed32 max_x = 4; fixed32 max_y = 5;
//	                   repeated Boundary boundaries = 6;
//	                   repeated fixed32 triangles = 7 [packed]; }
//	message Boundary { uint32 face = 1; repeated fixed32 vertices = 2 [packed]; }
//
// Floats are stored as their IEEE bits so shared walls stay bit exact.
const (
	levelCells = 1

	cellID         = 1
	cellMinX       = 2
	cellMinY       = 3
	cellMaxX       = 4
	cellMaxY       = 5
	cellBoundaries = 6
	cellTriangles  = 7

	boundaryFace     = 1
	boundaryVertices = 2
)

func appendFloat(b []byte, num protowire.Number, f float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, gmath.Float32bits(f))
}

func appendPacked(b []byte, num protowire.Number, fs []float32) []byte {
	if len(fs) == 0 {
		return b
	}
	var p []byte
	for _, f := range fs {
		p = protowire.AppendFixed32(p, gmath.Float32bits(f))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, p)
}

func appendBoundary(b []byte, f portal.Face, q portal.Quad) []byte {
	var m []byte
	m = protowire.AppendTag(m, boundaryFace, protowire.VarintType)
	m = protowire.AppendVarint(m, uint64(f))
	fs := make([]float32, 0, 12)
	for _, v := range q {
		fs = append(fs, v.X, v.Y, v.Z)
	}
	m = appendPacked(m, boundaryVertices, fs)
	b = protowire.AppendTag(b, cellBoundaries, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

func appendCell(b []byte, d *CellData) []byte {
	var m []byte
	m = protowire.AppendTag(m, cellID, protowire.BytesType)
	m = protowire.AppendString(m, d.ID)
	m = appendFloat(m, cellMinX, d.Footprint.Min[0])
	m = appendFloat(m, cellMinY, d.Footprint.Min[1])
	m = appendFloat(m, cellMaxX, d.Footprint.Max[0])
	m = appendFloat(m, cellMaxY, d.Footprint.Max[1])
	for f := portal.Face(0); f < portal.NumFaces; f++ {
		for _, q := range d.Faces[f] {
			m = appendBoundary(m, f, q)
		}
	}
	m = appendPacked(m, cellTriangles, d.Triangles)
	b = protowire.AppendTag(b, levelCells, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

// MarshalBinary encodes data in the compiled form.
func MarshalBinary(data []CellData) []byte {
	var b []byte
	for i := range data {
		b = appendCell(b, &data[i])
	}
	return b
}

// fields calls fn for every field of the message in b. Fields fn does not
// consume are skipped.
func fields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeFloat(typ protowire.Type, b []byte, f *float32) (int, error) {
	if typ != protowire.Fixed32Type {
		return 0, errors.Errorf("wire type %v, want fixed32", typ)
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*f = gmath.Float32frombits(v)
	return n, nil
}

func consumePacked(typ protowire.Type, b []byte, fs *[]float32) (int, error) {
	if typ != protowire.BytesType {
		return 0, errors.Errorf("wire type %v, want bytes", typ)
	}
	p, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	for len(p) > 0 {
		v, m := protowire.ConsumeFixed32(p)
		if m < 0 {
			return 0, protowire.ParseError(m)
		}
		*fs = append(*fs, gmath.Float32frombits(v))
		p = p[m:]
	}
	return n, nil
}

func consumeMessage(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errors.Errorf("wire type %v, want bytes", typ)
	}
	m, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return m, n, nil
}

func decodeBoundary(b []byte) (portal.Face, portal.Quad, error) {
	var (
		face uint64
		fs   []float32
		q    portal.Quad
	)
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case boundaryFace:
			if typ != protowire.VarintType {
				return 0, errors.Errorf("face wire type %v", typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			face = v
			return n, nil
		case boundaryVertices:
			return consumePacked(typ, b, &fs)
		}
		return 0, nil
	})
	if err != nil {
		return 0, q, err
	}
	if face >= uint64(portal.NumFaces) {
		return 0, q, errors.Errorf("bad face %d", face)
	}
	if len(fs) != 12 {
		return 0, q, errors.Errorf("%d vertex floats, want 12", len(fs))
	}
	for i := range q {
		q[i] = vec.Vec3{X: fs[3*i], Y: fs[3*i+1], Z: fs[3*i+2]}
	}
	return portal.Face(face), q, nil
}

func decodeCell(b []byte) (CellData, error) {
	var d CellData
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case cellID:
			m, n, err := consumeMessage(typ, b)
			if err != nil {
				return 0, errors.Wrap(err, "id")
			}
			d.ID = string(m)
			return n, nil
		case cellMinX:
			return consumeFloat(typ, b, &d.Footprint.Min[0])
		case cellMinY:
			return consumeFloat(typ, b, &d.Footprint.Min[1])
		case cellMaxX:
			return consumeFloat(typ, b, &d.Footprint.Max[0])
		case cellMaxY:
			return consumeFloat(typ, b, &d.Footprint.Max[1])
		case cellBoundaries:
			m, n, err := consumeMessage(typ, b)
			if err != nil {
				return 0, err
			}
			f, q, err := decodeBoundary(m)
			if err != nil {
				return 0, errors.Wrap(err, "boundary")
			}
			d.Faces[f] = append(d.Faces[f], q)
			return n, nil
		case cellTriangles:
			return consumePacked(typ, b, &d.Triangles)
		}
		return 0, nil
	})
	return d, err
}

// UnmarshalBinary decodes the compiled form. Unknown fields are skipped.
func UnmarshalBinary(b []byte) ([]CellData, error) {
	var data []CellData
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != levelCells {
			return 0, nil
		}
		m, n, err := consumeMessage(typ, b)
		if err != nil {
			return 0, err
		}
		d, err := decodeCell(m)
		if err != nil {
			return 0, errors.Wrapf(err, "cell %d", len(data))
		}
		data = append(data, d)
		return n, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "level binary")
	}
	return data, nil
}
