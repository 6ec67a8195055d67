package voxel

import "iter"

// BlockIterator walks every local coordinate of a chunk, x fastest, then z, then y.
// It behaves like three nested loops from 0 to 15.
type BlockIterator struct {
	x, y, z int
}

func NewBlockIterator() *BlockIterator {
	return &BlockIterator{}
}

// Next returns the next position, or false once all 4096 have been produced.
func (it *BlockIterator) Next() (Pos, bool) {
	if it.y == ChunkSize {
		return Pos{}, false
	}
	p := Pos{it.x, it.y, it.z}
	it.x++
	if it.x >= ChunkSize {
		it.x = 0
		it.z++
		if it.z >= ChunkSize {
			it.z = 0
			it.y++
		}
	}
	return p, true
}

// Positions yields the same sequence as a fresh BlockIterator.
func Positions() iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		it := NewBlockIterator()
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			if !yield(p) {
				return
			}
		}
	}
}
