// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"

	"github.com/pkg/errors"
)

var (
	ErrNoCells     = errors.New("no cells")
	ErrNilCell     = errors.New("nil cell")
	ErrDuplicateID = errors.New("duplicate cell id")
)

// BuildStats counts what a build produced.
type BuildStats struct {
	Cells       int // cells handed to the builder
	Portals     int // portals created
	Orphans     int // boundary quads without a partner
	Unreachable int // cells left out because the root can not reach them
}

// Builder wires the boundary quads of a cell list into portals.
type Builder[D Drawable] struct {
	Logger *slog.Logger
}

type boundaryRef struct {
	cell int
	face Face
}

func (b *Builder[D]) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// Build connects cells and returns the network rooted at cells[0]. Cells the
// root can not reach are logged and left out.
func (b *Builder[D]) Build(cells []*Cell[D]) (*Network[D], error) {
	stats, _, err := b.wire(cells)
	if err != nil {
		return nil, errors.Wrap(err, "portal.Build")
	}
	members := component(cells[0])
	for _, c := range cells {
		if !members.Has(c) {
			stats.Unreachable++
			b.logger().Warn("cell not reachable from root", "cell", c.ID, "root", cells[0].ID)
		}
	}
	n := newNetwork(cells[0], collect(cells, members))
	n.stats = stats
	return n, nil
}

// Partition connects cells and splits them into one network per connected
// component. Each network is rooted at its first cell in input order and the
// networks are ordered by the input position of their roots.
func (b *Builder[D]) Partition(cells []*Cell[D]) ([]*Network[D], error) {
	stats, orphans, err := b.wire(cells)
	if err != nil {
		return nil, errors.Wrap(err, "portal.Partition")
	}
	var nets []*Network[D]
	seen := make(map[*Cell[D]]bool, len(cells))
	for _, c := range cells {
		if seen[c] {
			continue
		}
		members := component(c)
		cs := collect(cells, members)
		n := newNetwork(c, cs)
		n.stats = BuildStats{
			Cells:   len(cs),
			Portals: len(n.Portals()),
		}
		for i, m := range cells {
			if members.Has(m) {
				seen[m] = true
				n.stats.Orphans += orphans[i]
			}
		}
		nets = append(nets, n)
	}
	b.logger().Debug("partitioned cells",
		"cells", len(cells),
		"networks", len(nets),
		"portals", stats.Portals,
		"orphans", stats.Orphans)
	return nets, nil
}

// Build is Builder.Build with the default logger.
func Build[D Drawable](cells []*Cell[D]) (*Network[D], error) {
	var b Builder[D]
	return b.Build(cells)
}

func validate[D Drawable](cells []*Cell[D]) error {
	if len(cells) == 0 {
		return ErrNoCells
	}
	ids := make(map[string]int, len(cells))
	for i, c := range cells {
		if c == nil {
			return errors.Wrapf(ErrNilCell, "index %d", i)
		}
		if j, ok := ids[c.ID]; ok {
			return errors.Wrapf(ErrDuplicateID, "%q at %d and %d", c.ID, j, i)
		}
		ids[c.ID] = i
	}
	return nil
}

// wire matches every boundary quad against the boundary quads of all other
// cells. The first match, scanning cells in input order and faces in Face
// order, becomes a portal unless the pair is already joined through the
// same quad. Quads without a match are sealed walls, counted per cell index
// in orphans.
func (b *Builder[D]) wire(cells []*Cell[D]) (stats BuildStats, orphans []int, err error) {
	stats.Cells = len(cells)
	if err := validate(cells); err != nil {
		return stats, nil, err
	}
	orphans = make([]int, len(cells))
	index := make(map[quadKey][]boundaryRef)
	for i, c := range cells {
		for f := Face(0); f < NumFaces; f++ {
			for _, q := range c.Boundaries[f] {
				k := q.key()
				index[k] = append(index[k], boundaryRef{cell: i, face: f})
			}
		}
	}
	log := b.logger()
	for i, c := range cells {
		for f := Face(0); f < NumFaces; f++ {
			for qi, q := range c.Boundaries[f] {
				ref, ok := firstOther(index[q.key()], i)
				if !ok {
					stats.Orphans++
					orphans[i]++
					log.Warn("orphaned portal",
						"cell", c.ID,
						"face", f.String(),
						"quad", qi)
					continue
				}
				o := cells[ref.cell]
				if c.portalTo(o, q) != nil {
					continue
				}
				p := newPortal(c, o, q)
				c.links = append(c.links, Link[D]{Face: f, Portal: p, Neighbor: o})
				o.links = append(o.links, Link[D]{Face: ref.face, Portal: p, Neighbor: c})
				stats.Portals++
			}
		}
	}
	return stats, orphans, nil
}

func firstOther(refs []boundaryRef, self int) (boundaryRef, bool) {
	for _, r := range refs {
		if r.cell != self {
			return r, true
		}
	}
	return boundaryRef{}, false
}
