// SPDX-License-Identifier: GPL-2.0-or-later

// Package portal implements the cell and portal graph of a level: cells are
// convex volumes joined through shared quads (portals). It answers two per
// frame questions: which cell holds a point, and which cells can be seen
// through the portals inside a view frustum.
package portal

import (
	"fmt"
	"sort"

	"gofps/math/vec"
)

// Face names the side of a cell a boundary quad belongs to.
type Face int

const (
	Left Face = iota
	Right
	Top
	Bottom
	NumFaces
)

var faceNames = [NumFaces]string{"left", "right", "top", "bottom"}

func (f Face) String() string {
	if f < 0 || f >= NumFaces {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// ParseFace is the inverse of Face.String.
func ParseFace(s string) (Face, error) {
	for i, n := range faceNames {
		if n == s {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("unknown face %q", s)
}

// Quad is a planar quadrilateral. Vertex order matters for drawing only.
type Quad [4]vec.Vec3

// SameVertices reports whether every vertex of a is found in b and every
// vertex of b in a. Comparison is exact, shared walls are expected to be
// authored with identical coordinates.
func SameVertices(a, b Quad) bool {
	return contained(a, b) && contained(b, a)
}

func contained(a, b Quad) bool {
outer:
	for _, v := range a {
		for _, w := range b {
			if vec.Equal(v, w) {
				continue outer
			}
		}
		return false
	}
	return true
}

// Bounds returns the axis aligned box of the quad.
func (q Quad) Bounds() (mins, maxs vec.Vec3) {
	return vec.Bounds(q[:]...)
}

// Center returns the average of the four vertices.
func (q Quad) Center() vec.Vec3 {
	var c vec.Vec3
	for _, v := range q {
		c = vec.Add(c, v)
	}
	return c.Scale(0.25)
}

// quadKey is the sorted set of distinct vertices of a quad. Two quads have
// equal keys exactly when SameVertices holds.
type quadKey struct {
	n int
	v [4]vec.Vec3
}

func (q Quad) key() quadKey {
	s := q
	sort.Slice(s[:], func(i, j int) bool { return vec.Less(s[i], s[j]) })
	var k quadKey
	for _, v := range s {
		if k.n > 0 && vec.Equal(k.v[k.n-1], v) {
			continue
		}
		k.v[k.n] = v
		k.n++
	}
	return k
}
