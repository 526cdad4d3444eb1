// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"log/slog"

	"github.com/pkg/errors"

	"gofps/cvars"
	"gofps/frustum"
	"gofps/math/vec"
	"gofps/portal"
)

type Options struct {
	Logger  *slog.Logger
	Metrics *portal.Metrics
}

// Level drives the per frame visibility queries of a loaded level.
// It is not safe for concurrent use.
type Level[D portal.Drawable] struct {
	set     *portal.Set[D]
	tracker *portal.Tracker[D]
	log     *slog.Logger
	frames  uint64
}

// Frame is the result of one Frame call.
type Frame[D portal.Drawable] struct {
	// Cell is the eye cell. After a miss it is the last known cell.
	Cell    *portal.Cell[D]
	Network int
	Visible []*portal.Cell[D]
	// Located is false if the eye was in no cell this frame.
	Located bool
}

// New builds the networks of data. Every cell gets a payload from payload.
func New[D portal.Drawable](data []CellData, payload PayloadFunc[D], opts Options) (*Level[D], error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cells, err := Cells(data, payload)
	if err != nil {
		return nil, err
	}
	b := portal.Builder[D]{Logger: log}
	nets, err := b.Partition(cells)
	if err != nil {
		return nil, errors.Wrap(err, "level")
	}
	set := portal.NewSet(nets...)
	set.SetMetrics(opts.Metrics)
	log.Info("level loaded", slog.Int("cells", len(cells)), slog.Int("networks", len(nets)))
	return &Level[D]{
		set:     set,
		tracker: portal.NewTracker(set),
		log:     log,
	}, nil
}

func (l *Level[D]) Set() *portal.Set[D] {
	return l.set
}

// Cell returns the last known eye cell.
func (l *Level[D]) Cell() *portal.Cell[D] {
	return l.tracker.Cell()
}

// Frame locates eye, gathers the cells visible through f and draws them.
// With r_portalcull off every reachable cell is drawn. If eye is in no cell
// the view is drawn from the last known cell.
func (l *Level[D]) Frame(eye vec.Vec3, f portal.Frustum) Frame[D] {
	l.frames++
	if !cvars.RPortalCull.Bool() || f == nil {
		f = frustum.Everything
	}
	var fr Frame[D]
	if cells, ok := l.tracker.Draw(eye, f); ok {
		fr.Visible = cells
		fr.Located = true
	}
	pos, found := l.tracker.Position()
	if found {
		fr.Cell = pos.Cell
		fr.Network = pos.Network
		if !fr.Located {
			fr.Visible = l.set.Network(pos.Network).VisibleFrom(pos.Cell, f)
		}
	}
	portal.DrawCells(fr.Visible)
	if cvars.Developer.Bool() || cvars.RShowCells.Bool() {
		id := ""
		if fr.Cell != nil {
			id = fr.Cell.ID
		}
		l.log.Debug("frame",
			slog.Uint64("frame", l.frames),
			slog.String("cell", id),
			slog.Bool("located", fr.Located),
			slog.Int("visible", len(fr.Visible)))
	}
	return fr
}
