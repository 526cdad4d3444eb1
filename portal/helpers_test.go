// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"context"
	"log/slog"
	"sync"

	"gofps/math/vec"
)

type mark struct {
	draws int
}

func (m *mark) Draw() {
	m.draws++
}

// wallX is the unit wall at x spanning [y,y+1] in the plan and [0,1] in height.
func wallX(x, y float32) Quad {
	return Quad{{X: x, Y: y, Z: 0}, {X: x, Y: y + 1, Z: 0}, {X: x, Y: y + 1, Z: 1}, {X: x, Y: y, Z: 1}}
}

func wallY(y, x float32) Quad {
	return Quad{{X: x, Y: y, Z: 0}, {X: x + 1, Y: y, Z: 0}, {X: x + 1, Y: y, Z: 1}, {X: x, Y: y, Z: 1}}
}

// reversed returns q with its vertices in the opposite order.
func reversed(q Quad) Quad {
	return Quad{q[3], q[2], q[1], q[0]}
}

// unitBox is the cell covering [x,x+1[ x [y,y+1[ with all four walls as
// unresolved boundaries.
func unitBox(id string, x, y float32) *Cell[*mark] {
	c := NewCell(id, &mark{}, VolumeFunc(func(p vec.Vec3) bool {
		return p.X >= x && p.X < x+1 && p.Y >= y && p.Y < y+1
	}))
	c.AddBoundary(Left, wallX(x, y))
	c.AddBoundary(Right, reversed(wallX(x+1, y)))
	c.AddBoundary(Bottom, wallY(y, x))
	c.AddBoundary(Top, reversed(wallY(y+1, x)))
	return c
}

// line returns n unit boxes along the x axis named A, B, ...
func line(n int) []*Cell[*mark] {
	cells := make([]*Cell[*mark], n)
	for i := range cells {
		cells[i] = unitBox(string(rune('A'+i)), float32(i), 0)
	}
	return cells
}

// ring returns a 2x2 block of boxes: A(0,0) B(1,0) C(1,1) D(0,1).
// Each cell has two neighbors and A-B-C-D-A is a cycle.
func ring() []*Cell[*mark] {
	return []*Cell[*mark]{
		unitBox("A", 0, 0),
		unitBox("B", 1, 0),
		unitBox("C", 1, 1),
		unitBox("D", 0, 1),
	}
}

func center(x, y float32) vec.Vec3 {
	return vec.Vec3{X: x + 0.5, Y: y + 0.5, Z: 0.5}
}

func ids(cells []*Cell[*mark]) []string {
	r := make([]string, 0, len(cells))
	for _, c := range cells {
		r = append(r, c.ID)
	}
	return r
}

// recorder is a slog handler keeping all records.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

func (r *recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recorder) WithGroup(string) slog.Handler      { return r }

func (r *recorder) count(level slog.Level, msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Level == level && rec.Message == msg {
			n++
		}
	}
	return n
}

func newBuilder() (*Builder[*mark], *recorder) {
	rec := &recorder{}
	return &Builder[*mark]{Logger: slog.New(rec)}, rec
}

// blockFrustum sees everything except the listed portal quads.
type blockFrustum struct {
	blocked []Quad
}

func (f blockFrustum) ClassifyBox(_, _ vec.Vec3) Containment {
	return Partial
}

func (f blockFrustum) ClassifyQuad(q Quad) Containment {
	for _, b := range f.blocked {
		if SameVertices(b, q) {
			return Outside
		}
	}
	return Inside
}
