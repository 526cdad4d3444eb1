// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofps/math/vec"
)

func TestLocateWithHint(t *testing.T) {
	cells := line(2)
	n := built(t, cells)
	a, b := cells[0], cells[1]

	out := n.locate(center(1, 0), a)
	assert.Equal(t, Stopped, out.State)
	assert.Same(t, b, out.Stop)
	assert.Equal(t, 2, out.Visited)

	// staying in the hinted cell costs a single test
	out = n.locate(center(1, 0), b)
	assert.Same(t, b, out.Stop)
	assert.Equal(t, 1, out.Visited)
}

func TestLocateMiss(t *testing.T) {
	cells := line(3)
	n := built(t, cells)
	assert.Nil(t, n.Locate(vec.Vec3{X: -5, Y: -5, Z: 0}, cells[1]))
	assert.Nil(t, n.Locate(vec.Vec3{X: -5, Y: -5, Z: 0}, nil))
}

func TestLocateIdempotent(t *testing.T) {
	cells := ring()
	n := built(t, cells)
	p := center(0, 1)
	first := n.Locate(p, cells[1])
	require.NotNil(t, first)
	assert.Same(t, first, n.Locate(p, cells[1]))
	assert.Equal(t, "D", first.ID)
}

func TestLocateHintIndependent(t *testing.T) {
	cells := append(ring(), unitBox("E", 2, 0), unitBox("F", 2, 1))
	n := built(t, cells)
	points := []vec.Vec3{
		center(0, 0), center(1, 0), center(1, 1), center(0, 1), center(2, 0), center(2, 1),
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0.2}, {X: 2.999, Y: 1.999, Z: 0}, {X: -1, Y: 0, Z: 0},
	}
	for _, p := range points {
		want := n.Locate(p, nil)
		for _, hint := range cells {
			got := n.Locate(p, hint)
			if want == nil || got == nil {
				assert.Equal(t, want == nil, got == nil, "point %v hint %s", p, hint.ID)
				continue
			}
			assert.Same(t, want, got, "point %v hint %s", p, hint.ID)
		}
	}
}

func TestLocateForeignHint(t *testing.T) {
	cells := line(2)
	n := built(t, cells)
	other := built(t, []*Cell[*mark]{unitBox("X", 0, 0)})
	// a hint from another network falls back to the root
	assert.Same(t, cells[1], n.Locate(center(1, 0), other.Root()))
}

func TestVisibleCellsGated(t *testing.T) {
	// A - B - C, portal A-B out of view
	cells := line(3)
	n := built(t, cells)
	f := blockFrustum{blocked: []Quad{wallX(1, 0)}}
	got := n.VisibleCells(center(1, 0), nil, f)
	assert.Equal(t, []string{"B", "C"}, ids(got))
}

func TestVisibleCellsAll(t *testing.T) {
	cells := line(4)
	n := built(t, cells)
	got := n.VisibleCells(center(1, 0), cells[0], blockFrustum{})
	assert.Equal(t, []string{"B", "A", "C", "D"}, ids(got))
}

func TestVisibleCellsOutsideLevel(t *testing.T) {
	cells := line(2)
	n := built(t, cells)
	assert.Empty(t, n.VisibleCells(vec.Vec3{X: -3, Y: 0, Z: 0}, nil, blockFrustum{}))
}

func TestVisibleCellsSoundness(t *testing.T) {
	// In the ring only the A-B portal is blocked. B stays visible from A
	// through D and C, everything else is reachable as well.
	cells := ring()
	n := built(t, cells)
	f := blockFrustum{blocked: []Quad{wallX(1, 0)}}
	got := n.VisibleCells(center(0, 0), nil, f)
	assert.Equal(t, []string{"A", "D", "C", "B"}, ids(got))

	// Blocking A-D too leaves A alone.
	f.blocked = append(f.blocked, wallY(1, 0))
	got = n.VisibleCells(center(0, 0), nil, f)
	assert.Equal(t, []string{"A"}, ids(got))
}

func TestVisibleFrom(t *testing.T) {
	cells := line(3)
	n := built(t, cells)
	assert.Equal(t, []string{"C", "B", "A"}, ids(n.VisibleFrom(cells[2], blockFrustum{})))
	assert.Nil(t, n.VisibleFrom(unitBox("X", 5, 5), blockFrustum{}))
}

// boxFrustum classifies only by the box, so the quad test must not be reached
// unless the box straddles.
type boxFrustum struct {
	box       Containment
	quadCalls *int
}

func (f boxFrustum) ClassifyBox(_, _ vec.Vec3) Containment { return f.box }
func (f boxFrustum) ClassifyQuad(Quad) Containment {
	*f.quadCalls++
	return Outside
}

func TestClassifyPortal(t *testing.T) {
	cells := line(2)
	n := built(t, cells)
	p := n.Portals()[0]
	calls := 0
	assert.Equal(t, Outside, classifyPortal(boxFrustum{Outside, &calls}, p))
	assert.Equal(t, Inside, classifyPortal(boxFrustum{Inside, &calls}, p))
	assert.Zero(t, calls)
	assert.Equal(t, Outside, classifyPortal(boxFrustum{Partial, &calls}, p))
	assert.Equal(t, 1, calls)
}

func TestDrawCells(t *testing.T) {
	cells := line(3)
	DrawCells(cells[1:])
	assert.Equal(t, 0, cells[0].Payload.draws)
	assert.Equal(t, 1, cells[1].Payload.draws)
	assert.Equal(t, 1, cells[2].Payload.draws)
}
