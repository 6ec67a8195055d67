package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexLayout(t *testing.T) {
	assert.Equal(t, 0, Index(0, 0, 0))
	assert.Equal(t, 1, Index(1, 0, 0))
	assert.Equal(t, 16, Index(0, 0, 1))
	assert.Equal(t, 256, Index(0, 1, 0))
	assert.Equal(t, ChunkVolume-1, Index(15, 15, 15))
}

func TestChunkSetBlockMarksDirty(t *testing.T) {
	c := NewChunk(nil)
	assert.True(t, c.NeedsCompleteRebuild, "new chunks start flagged for a complete rebuild")

	NewMesher(true).Rebuild(c, Pos{}, nil)
	require.False(t, c.NeedsRebuild())

	c.SetBlock(Stone, 3, 4, 5)
	assert.Equal(t, Stone, c.GetBlock(3, 4, 5))
	assert.Equal(t, Air, c.GetBlock(5, 4, 3))
	assert.True(t, c.IsDirty())
	assert.True(t, c.NeedsRebuild())
}

func TestChunkOutOfRangePanics(t *testing.T) {
	c := NewChunk(nil)
	assert.Panics(t, func() { c.SetBlock(Stone, 0, 16, 0) })
}

func TestChunkReleaseIsIdempotent(t *testing.T) {
	buf := &MemoryBuffer{}
	c := NewFilledChunk(Stone, buf)
	NewMesher(true).Rebuild(c, Pos{}, nil)
	require.NotZero(t, c.VerticesDrawn())

	c.Release()
	c.Release()
	assert.True(t, buf.Deleted)
	assert.Zero(t, c.VerticesDrawn())

	// uploads after release never reach the deleted store
	c.MarkDirty()
	NewMesher(true).Rebuild(c, Pos{}, nil)
	assert.Equal(t, 1, buf.Uploads)
}

func TestColumnRoutesGlobalHeight(t *testing.T) {
	col := NewColumn(NewMemoryBuffer)
	for _, c := range col.Chunks {
		NewMesher(false).Rebuild(c, Pos{}, nil)
	}

	col.SetBlock(Obsidian, 2, 37, 9)
	assert.Equal(t, Obsidian, col.Chunk(2).GetBlock(2, 5, 9))
	assert.Equal(t, Obsidian, col.GetBlock(2, 37, 9))
	for i, c := range col.Chunks {
		assert.Equal(t, i == 2, c.IsDirty(), "chunk %d", i)
	}

	col.SetBlock(Bedrock, 0, 0, 0)
	assert.Equal(t, Bedrock, col.Chunk(0).GetBlock(0, 0, 0))
	col.SetBlock(Glass, 15, WorldHeight-1, 15)
	assert.Equal(t, Glass, col.Chunk(ColumnHeight-1).GetBlock(15, 15, 15))

	col.Release()
	for _, c := range col.Chunks {
		assert.True(t, c.Buffer().(*MemoryBuffer).Deleted)
	}
}

func TestBoundaryDirections(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int
		want    []Direction
	}{
		{"interior", 5, 5, 5, nil},
		{"interior edge values", 1, 14, 7, nil},
		{"min x", 0, 5, 5, []Direction{Left}},
		{"max x", 15, 5, 5, []Direction{Right}},
		{"min y", 5, 0, 5, []Direction{Bottom}},
		{"max z", 5, 5, 15, []Direction{Front}},
		{"corner", 0, 15, 0, []Direction{Left, Top, Back}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundaryDirections(tt.x, tt.y, tt.z))
		})
	}
}
