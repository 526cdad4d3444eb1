// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"io"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"gofps/math/vec"
	"gofps/portal"
)

// The authored form of a level:
//
//	{"cells": [{
//	  "id": "hall",
//	  "min": [0, 0], "max": [4, 4],
//	  "faces": {"right": [[[4,0,0],[4,4,0],[4,4,3],[4,0,3]]]},
//	  "triangles": [0,0,0, 4,0,0, 4,4,0]
//	}]}
type jsonLevel struct {
	Cells []jsonCell `json:"cells"`
}

type jsonQuad [4][3]float32

type jsonCell struct {
	ID        string                `json:"id"`
	Min       [2]float32            `json:"min"`
	Max       [2]float32            `json:"max"`
	Faces     map[string][]jsonQuad `json:"faces,omitempty"`
	Triangles []float32             `json:"triangles,omitempty"`
}

func fromJSONQuad(q jsonQuad) portal.Quad {
	var r portal.Quad
	for i, v := range q {
		r[i] = vec.VFromA(v)
	}
	return r
}

func toJSONQuad(q portal.Quad) jsonQuad {
	var r jsonQuad
	for i, v := range q {
		r[i] = v.Array()
	}
	return r
}

// DecodeJSON reads an authored level.
func DecodeJSON(r io.Reader) ([]CellData, error) {
	var l jsonLevel
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, errors.Wrap(err, "level json")
	}
	data := make([]CellData, 0, len(l.Cells))
	for i, c := range l.Cells {
		d := CellData{
			ID:        c.ID,
			Footprint: Footprint{Min: c.Min, Max: c.Max},
			Triangles: c.Triangles,
		}
		for name, qs := range c.Faces {
			f, err := portal.ParseFace(name)
			if err != nil {
				return nil, errors.Wrapf(err, "cell %d %q", i, c.ID)
			}
			for _, q := range qs {
				d.Faces[f] = append(d.Faces[f], fromJSONQuad(q))
			}
		}
		data = append(data, d)
	}
	return data, nil
}

// EncodeJSON writes data in the authored form.
func EncodeJSON(w io.Writer, data []CellData) error {
	l := jsonLevel{Cells: make([]jsonCell, 0, len(data))}
	for _, d := range data {
		c := jsonCell{
			ID:        d.ID,
			Min:       d.Footprint.Min,
			Max:       d.Footprint.Max,
			Triangles: d.Triangles,
		}
		for f := portal.Face(0); f < portal.NumFaces; f++ {
			if len(d.Faces[f]) == 0 {
				continue
			}
			if c.Faces == nil {
				c.Faces = make(map[string][]jsonQuad)
			}
			for _, q := range d.Faces[f] {
				c.Faces[f.String()] = append(c.Faces[f.String()], toJSONQuad(q))
			}
		}
		l.Cells = append(l.Cells, c)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return errors.Wrap(e.Encode(&l), "level json")
}
