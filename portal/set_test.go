// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofps/math/vec"
)

// twoNetworks returns a set of two disjoint networks: A-B at the origin and
// X-Y far away.
func twoNetworks(t *testing.T) (*Set[*mark], []*Cell[*mark]) {
	t.Helper()
	cells := []*Cell[*mark]{
		unitBox("A", 0, 0), unitBox("B", 1, 0),
		unitBox("X", 10, 0), unitBox("Y", 11, 0),
	}
	b, _ := newBuilder()
	nets, err := b.Partition(cells)
	require.NoError(t, err)
	require.Len(t, nets, 2)
	return NewSet(nets...), cells
}

func TestSetLocateSecondNetwork(t *testing.T) {
	s, cells := twoNetworks(t)
	pos, ok := s.Locate(center(11, 0), Positioning[*mark]{})
	require.True(t, ok)
	assert.Equal(t, 1, pos.Network)
	assert.Same(t, cells[3], pos.Cell)
}

func TestSetLocateUsesHint(t *testing.T) {
	s, cells := twoNetworks(t)
	m := NewMetrics(nil)
	s.SetMetrics(m)

	prev := Positioning[*mark]{Network: 1, Cell: cells[3]}
	pos, ok := s.Locate(center(10, 0), prev)
	require.True(t, ok)
	assert.Equal(t, 1, pos.Network)
	assert.Same(t, cells[2], pos.Cell)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.networkChanges))

	// back to the first network, probing wraps around
	pos, ok = s.Locate(center(0, 0), pos)
	require.True(t, ok)
	assert.Equal(t, 0, pos.Network)
	assert.Same(t, cells[0], pos.Cell)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.networkChanges))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.locates.WithLabelValues("hit")))
}

func TestSetLocateMiss(t *testing.T) {
	s, cells := twoNetworks(t)
	m := NewMetrics(nil)
	s.SetMetrics(m)
	prev := Positioning[*mark]{Network: 1, Cell: cells[2]}
	pos, ok := s.Locate(vec.Vec3{X: 100, Y: 100, Z: 0}, prev)
	assert.False(t, ok)
	assert.Equal(t, prev, pos)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.locates.WithLabelValues("miss")))
}

func TestSetLocateBadHint(t *testing.T) {
	s, cells := twoNetworks(t)
	pos, ok := s.Locate(center(1, 0), Positioning[*mark]{Network: 7, Cell: cells[2]})
	require.True(t, ok)
	assert.Equal(t, 0, pos.Network)
	assert.Same(t, cells[1], pos.Cell)
}

func TestSetEmpty(t *testing.T) {
	s := NewSet[*mark]()
	_, ok := s.Locate(vec.Vec3{}, Positioning[*mark]{})
	assert.False(t, ok)
	cells, _, ok := s.Draw(vec.Vec3{}, blockFrustum{}, Positioning[*mark]{})
	assert.False(t, ok)
	assert.Nil(t, cells)
}

func TestSetDraw(t *testing.T) {
	s, cells := twoNetworks(t)
	got, pos, ok := s.Draw(center(10, 0), blockFrustum{}, Positioning[*mark]{})
	require.True(t, ok)
	assert.Equal(t, 1, pos.Network)
	assert.Same(t, cells[2], pos.Cell)
	assert.Equal(t, []string{"X", "Y"}, ids(got))
}

func TestTracker(t *testing.T) {
	s, cells := twoNetworks(t)
	tr := NewTracker(s)
	_, ok := tr.Position()
	assert.False(t, ok)

	c, ok := tr.Locate(center(11, 0))
	require.True(t, ok)
	assert.Same(t, cells[3], c)
	pos, ok := tr.Position()
	require.True(t, ok)
	assert.Equal(t, 1, pos.Network)

	// a miss keeps the last known cell
	c, ok = tr.Locate(vec.Vec3{X: -50, Y: 0, Z: 0})
	assert.False(t, ok)
	assert.Same(t, cells[3], c)
	assert.Same(t, cells[3], tr.Cell())

	got, ok := tr.Draw(center(0, 0), blockFrustum{blocked: []Quad{wallX(1, 0)}})
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, ids(got))
	assert.Same(t, cells[0], tr.Cell())

	tr.Reset()
	assert.Nil(t, tr.Cell())
}

func TestTrackersIndependent(t *testing.T) {
	s, cells := twoNetworks(t)
	t1, t2 := NewTracker(s), NewTracker(s)
	_, ok := t1.Locate(center(10, 0))
	require.True(t, ok)
	_, ok = t2.Locate(center(1, 0))
	require.True(t, ok)
	assert.Same(t, cells[2], t1.Cell())
	assert.Same(t, cells[1], t2.Cell())
}

func TestMetricsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	s, _ := twoNetworks(t)
	s.SetMetrics(m)
	_, _, ok := s.Draw(center(0, 0), blockFrustum{}, Positioning[*mark]{})
	require.True(t, ok)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["portal_locate_total"])
	assert.True(t, names["portal_visible_cells"])
	assert.True(t, names["portal_locate_cells_visited"])
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observeLocate(true, 1, true)
	m.observeVisible(3)
}
