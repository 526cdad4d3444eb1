// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"github.com/chewxy/math32"
)

type Number interface {
	int64 | float64 | float32 | int
}

// Clamp limits val to [min,max].
func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// AngleMod changes an angle to be within [0,360[ degrees
func AngleMod(a float32) float32 {
	return a - math32.Floor(a/360)*360
}

func Deg2Rad(a float32) float32 {
	return a * (math32.Pi / 180)
}
