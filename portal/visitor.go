// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

// Order selects how the next cell is taken from the frontier.
type Order int

const (
	BreadthFirst Order = iota // oldest first
	DepthFirst                // newest first
)

// State tells how a walk ended.
type State int

const (
	Exhausted State = iota // frontier ran empty
	Stopped                // a task asked to stop
)

func (s State) String() string {
	switch s {
	case Exhausted:
		return "exhausted"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Outcome describes a finished walk.
type Outcome[D Drawable] struct {
	State   State
	Stop    *Cell[D] // cell whose task returned false, nil when exhausted
	Visited int      // number of cells the task ran on
}

// Visitor walks the cells reachable from a start cell. S is state carried
// along each branch of the walk, handed from a cell to the neighbors it
// admits.
//
// Task runs once per visited cell; returning false ends the walk.
// Admit decides if next, reached through portal via, joins the frontier and
// with which state. A nil Admit admits everything and passes the state on.
//
// A Visitor keeps no state between calls to Visit, so a single value can be
// shared by any number of walks.
type Visitor[D Drawable, S any] struct {
	Order Order
	Task  func(c *Cell[D], s S) bool
	Admit func(next *Cell[D], via *Portal[D], s S) (S, bool)
}

type step[D Drawable, S any] struct {
	cell  *Cell[D]
	state S
}

type walk[D Drawable, S any] struct {
	v        *Visitor[D, S]
	frontier deque.Deque[step[D, S]]
	visited  mapset.Set[*Cell[D]]
}

// Visit walks from start, seeding it with state seed. A nil start is an
// empty walk that ends Exhausted.
func (v *Visitor[D, S]) Visit(start *Cell[D], seed S) Outcome[D] {
	if start == nil {
		return Outcome[D]{State: Exhausted}
	}
	w := &walk[D, S]{
		v:       v,
		visited: mapset.New[*Cell[D]](),
	}
	return w.run(start, seed)
}

func (w *walk[D, S]) next() step[D, S] {
	if w.v.Order == DepthFirst {
		return w.frontier.PopBack()
	}
	return w.frontier.PopFront()
}

func (w *walk[D, S]) push(c *Cell[D], s S) {
	w.visited.Put(c)
	w.frontier.PushBack(step[D, S]{cell: c, state: s})
}

func (w *walk[D, S]) run(start *Cell[D], seed S) Outcome[D] {
	out := Outcome[D]{}
	w.push(start, seed)
	for w.frontier.Len() > 0 {
		cur := w.next()
		out.Visited++
		if w.v.Task != nil && !w.v.Task(cur.cell, cur.state) {
			out.State = Stopped
			out.Stop = cur.cell
			return out
		}
		for _, l := range cur.cell.links {
			if w.visited.Has(l.Neighbor) {
				continue
			}
			s := cur.state
			if w.v.Admit != nil {
				var ok bool
				if s, ok = w.v.Admit(l.Neighbor, l.Portal, cur.state); !ok {
					continue
				}
			}
			w.push(l.Neighbor, s)
		}
	}
	out.State = Exhausted
	return out
}
