package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/andrewmillercode/opencraft/voxel"
)

// Hit is a block found by Raycast.
type Hit struct {
	Block voxel.Pos
	// Previous is the empty cell the ray crossed last, where a placed block goes.
	Previous voxel.Pos
	Distance float32
}

// Raycast walks the voxel grid from origin along dir and returns the first
// non-air block closer than maxDist.
func (w *World) Raycast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	var cell, step [3]int
	var tMax, tDelta [3]float32
	for i := 0; i < 3; i++ {
		cell[i] = int(math.Floor(float64(origin[i])))
		switch {
		case dir[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / dir[i]
			tMax[i] = (float32(cell[i]+1) - origin[i]) * tDelta[i]
		case dir[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / dir[i]
			tMax[i] = (origin[i] - float32(cell[i])) * tDelta[i]
		default:
			tDelta[i] = float32(math.Inf(1))
			tMax[i] = float32(math.Inf(1))
		}
	}

	prev := cell
	var t float32
	for t <= maxDist {
		if w.IsSolidBlockAt(cell[0], cell[1], cell[2]) {
			return Hit{
				Block:    voxel.Pos{X: cell[0], Y: cell[1], Z: cell[2]},
				Previous: voxel.Pos{X: prev[0], Y: prev[1], Z: prev[2]},
				Distance: t,
			}, true
		}
		prev = cell

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}
	return Hit{}, false
}
