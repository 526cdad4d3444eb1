// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"github.com/pkg/errors"

	"gofps/math/vec"
	"gofps/portal"
)

// Footprint is the floor plan rectangle of a cell. Height is ignored.
// Min is inclusive and Max exclusive so that two cells sharing a wall never
// both contain a point on it.
type Footprint struct {
	Min [2]float32
	Max [2]float32
}

func (f Footprint) Contains(p vec.Vec3) bool {
	return p.X >= f.Min[0] && p.X < f.Max[0] &&
		p.Y >= f.Min[1] && p.Y < f.Max[1]
}

// CellData is one cell as authored.
type CellData struct {
	ID        string
	Footprint Footprint
	Faces     [portal.NumFaces][]portal.Quad
	// Triangles is a flat list of x,y,z triples, three vertices per triangle.
	Triangles []float32
}

func (d *CellData) validate() error {
	if d.ID == "" {
		return errors.New("empty id")
	}
	if len(d.Triangles)%9 != 0 {
		return errors.Errorf("%d triangle floats is not a multiple of 9", len(d.Triangles))
	}
	if d.Footprint.Min[0] > d.Footprint.Max[0] || d.Footprint.Min[1] > d.Footprint.Max[1] {
		return errors.Errorf("footprint min %v above max %v", d.Footprint.Min, d.Footprint.Max)
	}
	return nil
}

// PayloadFunc creates the drawable of a cell.
type PayloadFunc[D portal.Drawable] func(d *CellData) (D, error)

// Cells turns authored data into unwired graph cells, in order.
func Cells[D portal.Drawable](data []CellData, payload PayloadFunc[D]) ([]*portal.Cell[D], error) {
	cells := make([]*portal.Cell[D], 0, len(data))
	for i := range data {
		d := &data[i]
		if err := d.validate(); err != nil {
			return nil, errors.Wrapf(err, "cell %d", i)
		}
		p, err := payload(d)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d %q payload", i, d.ID)
		}
		c := portal.NewCell(d.ID, p, d.Footprint)
		for f := portal.Face(0); f < portal.NumFaces; f++ {
			for _, q := range d.Faces[f] {
				c.AddBoundary(f, q)
			}
		}
		cells = append(cells, c)
	}
	return cells, nil
}
