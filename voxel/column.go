package voxel

const (
	// ColumnHeight is the number of chunks stacked in a column.
	ColumnHeight = 16
	// WorldHeight is the block height of a column.
	WorldHeight = ColumnHeight * ChunkSize
)

// Column is the vertical stack of chunks at one horizontal chunk coordinate.
type Column struct {
	Chunks [ColumnHeight]*Chunk
}

// NewColumn returns an all-air column. alloc may be nil for a column without GPU buffers.
func NewColumn(alloc BufferAllocator) *Column {
	return NewFilledColumn(Air, alloc)
}

func NewFilledColumn(block BlockID, alloc BufferAllocator) *Column {
	col := &Column{}
	for i := range col.Chunks {
		var buf Buffer
		if alloc != nil {
			buf = alloc()
		}
		col.Chunks[i] = NewFilledChunk(block, buf)
	}
	return col
}

// Chunk returns the chunk at vertical index i.
func (col *Column) Chunk(i int) *Chunk {
	return col.Chunks[i]
}

func (col *Column) GetBlock(x, globalY, z int) BlockID {
	return col.Chunks[globalY/ChunkSize].GetBlock(x, globalY%ChunkSize, z)
}

// SetBlock writes into the chunk holding globalY and marks only that chunk dirty.
func (col *Column) SetBlock(block BlockID, x, globalY, z int) {
	col.Chunks[globalY/ChunkSize].SetBlock(block, x, globalY%ChunkSize, z)
}

// Release frees the GPU buffers of every chunk.
func (col *Column) Release() {
	for _, c := range col.Chunks {
		c.Release()
	}
}
