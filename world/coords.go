package world

import "github.com/andrewmillercode/opencraft/voxel"

// ColumnPos addresses a column in chunk units.
type ColumnPos struct {
	X, Z int
}

// ChunkPos addresses one chunk; Y is the index inside its column.
type ChunkPos struct {
	X, Y, Z int
}

func (p ChunkPos) Column() ColumnPos {
	return ColumnPos{p.X, p.Z}
}

// Origin is the world position of the chunk's (0,0,0) block.
func (p ChunkPos) Origin() voxel.Pos {
	return voxel.Pos{X: p.X * voxel.ChunkSize, Y: p.Y * voxel.ChunkSize, Z: p.Z * voxel.ChunkSize}
}

// Neighbor steps one chunk in direction d. The result may lie outside the column height.
func (p ChunkPos) Neighbor(d voxel.Direction) ChunkPos {
	o := d.Offset()
	return ChunkPos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

func (p ChunkPos) less(o ChunkPos) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	if p.Z != o.Z {
		return p.Z < o.Z
	}
	return p.Y < o.Y
}

// split breaks a world coordinate into chunk and local parts, flooring for negatives.
func split(v int) (chunk, local int) {
	chunk = v >> 4
	return chunk, v - chunk*voxel.ChunkSize
}

// locate resolves a world position. ok is false above or below the world.
func locate(x, y, z int) (cp ChunkPos, local voxel.Pos, ok bool) {
	if y < 0 || y >= voxel.WorldHeight {
		return ChunkPos{}, voxel.Pos{}, false
	}
	cp.X, local.X = split(x)
	cp.Y, local.Y = split(y)
	cp.Z, local.Z = split(z)
	return cp, local, true
}
