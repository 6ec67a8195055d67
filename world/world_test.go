package world

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewmillercode/opencraft/voxel"
)

func newTestWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	w := New(opts...)
	t.Cleanup(w.Close)
	return w
}

// loadFlat loads stone columns up to y=height-1 and rebuilds so every chunk starts clean.
func loadFlat(w *World, height int, columns ...ColumnPos) {
	for _, pos := range columns {
		col := w.NewColumn()
		for p := range voxel.Positions() {
			for cy := 0; cy*voxel.ChunkSize+p.Y < height; cy++ {
				col.Chunks[cy].SetBlock(voxel.Stone, p.X, p.Y, p.Z)
			}
		}
		w.LoadColumn(pos, col)
	}
	w.RebuildDirty()
}

func TestLocateFloorsNegativeCoordinates(t *testing.T) {
	tests := []struct {
		x, y, z   int
		wantChunk ChunkPos
		wantLocal voxel.Pos
		wantOK    bool
	}{
		{0, 0, 0, ChunkPos{0, 0, 0}, voxel.Pos{}, true},
		{15, 17, 31, ChunkPos{0, 1, 1}, voxel.Pos{X: 15, Y: 1, Z: 15}, true},
		{-1, 255, -16, ChunkPos{-1, 15, -1}, voxel.Pos{X: 15, Y: 15, Z: 0}, true},
		{-17, 5, 3, ChunkPos{-2, 0, 0}, voxel.Pos{X: 15, Y: 5, Z: 3}, true},
		{0, -1, 0, ChunkPos{}, voxel.Pos{}, false},
		{0, 256, 0, ChunkPos{}, voxel.Pos{}, false},
	}
	for _, tt := range tests {
		cp, local, ok := locate(tt.x, tt.y, tt.z)
		assert.Equal(t, tt.wantOK, ok, "%d,%d,%d", tt.x, tt.y, tt.z)
		if ok {
			assert.Equal(t, tt.wantChunk, cp)
			assert.Equal(t, tt.wantLocal, local)
		}
	}
}

func TestSetBlockDirtiesBorderNeighbors(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int
		want    []ChunkPos
	}{
		{"interior", 5, 20, 5, []ChunkPos{{0, 1, 0}}},
		{"min x", 0, 20, 5, []ChunkPos{{-1, 1, 0}, {0, 1, 0}}},
		{"max x", 15, 20, 5, []ChunkPos{{0, 1, 0}, {1, 1, 0}}},
		{"bottom of chunk", 5, 16, 5, []ChunkPos{{0, 0, 0}, {0, 1, 0}}},
		{"top of chunk", 5, 31, 5, []ChunkPos{{0, 1, 0}, {0, 2, 0}}},
		{"corner", 0, 31, 15, []ChunkPos{{-1, 1, 0}, {0, 1, 0}, {0, 2, 0}, {0, 1, 1}}},
		{"world floor", 5, 0, 5, []ChunkPos{{0, 0, 0}}},
		{"world ceiling", 5, 255, 5, []ChunkPos{{0, 15, 0}}},
		{"negative column", -1, 20, -1, []ChunkPos{{-1, 1, -1}, {-1, 1, 0}, {0, 1, -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			loadFlat(w, 0,
				ColumnPos{-1, -1}, ColumnPos{0, -1}, ColumnPos{1, -1},
				ColumnPos{-1, 0}, ColumnPos{0, 0}, ColumnPos{1, 0},
				ColumnPos{-1, 1}, ColumnPos{0, 1}, ColumnPos{1, 1},
			)
			require.Empty(t, w.DirtyChunks())

			require.True(t, w.SetBlock(voxel.Stone, tt.x, tt.y, tt.z))
			assert.Equal(t, tt.want, w.DirtyChunks())
		})
	}
}

func TestSetBlockSkipsUnloadedNeighbor(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 0, ColumnPos{0, 0})

	require.True(t, w.SetBlock(voxel.Stone, 0, 40, 0))
	assert.Equal(t, []ChunkPos{{0, 2, 0}}, w.DirtyChunks())

	assert.False(t, w.SetBlock(voxel.Stone, -1, 40, 0), "no column at -1")
	assert.False(t, w.SetBlock(voxel.Stone, 0, 256, 0))
	assert.False(t, w.SetBlock(voxel.Stone, 0, -1, 0))
}

func TestGetBlock(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 10, ColumnPos{-1, 0})

	b, ok := w.GetBlock(-16, 9, 15)
	assert.True(t, ok)
	assert.Equal(t, voxel.Stone, b)

	b, ok = w.GetBlock(-16, 10, 15)
	assert.True(t, ok)
	assert.Equal(t, voxel.Air, b)

	_, ok = w.GetBlock(0, 5, 0)
	assert.False(t, ok)
	assert.Equal(t, voxel.Air, w.BlockAt(0, 5, 0))
	assert.True(t, w.IsSolidBlockAt(-1, 0, 0))
	assert.False(t, w.IsSolidBlockAt(-1, 10, 0))
}

func TestRebuildDirtyOnlyTouchesDirtyChunks(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 20, ColumnPos{0, 0}, ColumnPos{1, 0})

	before := map[ChunkPos]int{}
	w.ForEachChunk(func(cp ChunkPos, c *voxel.Chunk) {
		before[cp] = c.Buffer().(*voxel.MemoryBuffer).Uploads
	})

	require.True(t, w.SetBlock(voxel.Air, 8, 19, 8))
	assert.Equal(t, 1, w.RebuildDirty())
	assert.Zero(t, w.RebuildDirty(), "second pass finds nothing")

	w.ForEachChunk(func(cp ChunkPos, c *voxel.Chunk) {
		want := before[cp]
		if cp == (ChunkPos{0, 1, 0}) {
			want++
		}
		assert.Equal(t, want, c.Buffer().(*voxel.MemoryBuffer).Uploads, "%v", cp)
	})
}

func TestRebuildCullsAcrossColumns(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 1, ColumnPos{0, 0})

	c := w.Chunk(ChunkPos{0, 0, 0})
	// bottom row faces the unloaded -X column and air-filled neighbors
	assert.True(t, c.FaceActive(0, 0, 3, voxel.Left))
	assert.True(t, c.FaceActive(15, 0, 3, voxel.Right))

	loadFlat(w, 1, ColumnPos{1, 0})
	assert.False(t, c.FaceActive(15, 0, 3, voxel.Right), "hidden once +X column is loaded")
	assert.True(t, c.FaceActive(0, 0, 3, voxel.Left))

	// breaking the neighbor's border block exposes our face again
	require.True(t, w.SetBlock(voxel.Air, 16, 0, 3))
	w.RebuildDirty()
	assert.True(t, c.FaceActive(15, 0, 3, voxel.Right))
}

func TestBorderWriteRefreshesNeighborAO(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 16, ColumnPos{0, 0})

	c := w.Chunk(ChunkPos{0, 0, 0})
	require.True(t, c.FaceActive(5, 15, 5, voxel.Top))
	require.Zero(t, c.AO(5, 15, 5, voxel.Top, 0))

	// a block on the floor of the chunk above shades the top face below it
	require.True(t, w.SetBlock(voxel.Stone, 5, 16, 6))
	assert.Contains(t, w.DirtyChunks(), ChunkPos{0, 0, 0})
	w.RebuildDirty()
	assert.Equal(t, uint8(1), c.AO(5, 15, 5, voxel.Top, 0))
}

func TestLoadColumnDirtiesNeighbors(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 0, ColumnPos{0, 0}, ColumnPos{5, 5})

	w.LoadColumn(ColumnPos{1, 0}, w.NewColumn())
	dirty := w.DirtyChunks()
	assert.Len(t, dirty, 2*voxel.ColumnHeight)
	for _, cp := range dirty {
		assert.Contains(t, []ColumnPos{{0, 0}, {1, 0}}, cp.Column())
	}
}

func TestLoadColumnReplacesAndReleases(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 4, ColumnPos{0, 0})
	old, ok := w.Column(ColumnPos{0, 0})
	require.True(t, ok)

	w.LoadColumn(ColumnPos{0, 0}, w.NewColumn())
	for _, c := range old.Chunks {
		assert.True(t, c.Buffer().(*voxel.MemoryBuffer).Deleted)
		assert.Zero(t, c.VerticesDrawn())
	}
	assert.Equal(t, 1, w.ColumnCount())
}

func TestUnloadColumn(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 4, ColumnPos{0, 0}, ColumnPos{0, 1})
	col, _ := w.Column(ColumnPos{0, 1})

	assert.True(t, w.UnloadColumn(ColumnPos{0, 1}))
	assert.False(t, w.UnloadColumn(ColumnPos{0, 1}))
	for _, c := range col.Chunks {
		assert.True(t, c.Buffer().(*voxel.MemoryBuffer).Deleted)
	}
	assert.Len(t, w.DirtyChunks(), voxel.ColumnHeight, "neighbor column re-meshes its exposed side")

	w.RebuildDirty()
	assert.True(t, w.Chunk(ChunkPos{0, 0, 0}).FaceActive(3, 2, 15, voxel.Front))
}

func TestSetAmbientOcclusionRebuildsEverything(t *testing.T) {
	w := newTestWorld(t)
	loadFlat(w, 16, ColumnPos{0, 0})
	require.True(t, w.SetBlock(voxel.Stone, 5, 16, 6))
	w.RebuildDirty()

	w.SetAmbientOcclusion(false)
	assert.False(t, w.AmbientOcclusion())
	assert.Equal(t, voxel.ColumnHeight, w.RebuildDirty())

	buf := w.Chunk(ChunkPos{0, 0, 0}).Buffer().(*voxel.MemoryBuffer)
	for i := voxel.VertexSize - 1; i < len(buf.Vertices); i += voxel.VertexSize {
		require.Zero(t, buf.Vertices[i])
	}

	w.SetAmbientOcclusion(false)
	assert.Zero(t, w.RebuildDirty(), "no-op toggle")
}

func TestForEachChunkOrder(t *testing.T) {
	w := newTestWorld(t)
	w.LoadColumn(ColumnPos{1, 0}, w.NewColumn())
	w.LoadColumn(ColumnPos{-1, 2}, w.NewColumn())
	w.LoadColumn(ColumnPos{-1, -3}, w.NewColumn())

	var got []ChunkPos
	w.ForEachChunk(func(cp ChunkPos, _ *voxel.Chunk) { got = append(got, cp) })
	require.Len(t, got, 3*voxel.ColumnHeight)
	assert.Equal(t, ChunkPos{-1, 0, -3}, got[0])
	assert.Equal(t, ChunkPos{-1, 15, -3}, got[15])
	assert.Equal(t, ChunkPos{-1, 0, 2}, got[16])
	assert.Equal(t, ChunkPos{1, 15, 0}, got[47])
}

// gathered returns the single sample of a gauge or counter family.
func gathered(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		if m.GetCounter() != nil {
			return m.GetCounter().GetValue()
		}
		return m.GetGauge().GetValue()
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	w := newTestWorld(t, WithMetrics(NewMetrics(reg)), WithWorkers(2))

	loadFlat(w, 1, ColumnPos{0, 0}, ColumnPos{0, 1})
	assert.Equal(t, float64(2), gathered(t, reg, "voxel_loaded_columns"))
	assert.Equal(t, float64(2*voxel.ColumnHeight), gathered(t, reg, "voxel_chunk_rebuilds_total"))
	assert.Equal(t, float64(2*voxel.ColumnHeight), gathered(t, reg, "voxel_dirty_chunks"))

	var drawn int
	w.ForEachChunk(func(_ ChunkPos, c *voxel.Chunk) { drawn += c.VerticesDrawn() })
	require.NotZero(t, drawn)
	assert.Equal(t, float64(drawn), gathered(t, reg, "voxel_uploaded_vertices"))

	w.UnloadColumn(ColumnPos{0, 1})
	w.RebuildDirty()
	drawn = 0
	w.ForEachChunk(func(_ ChunkPos, c *voxel.Chunk) { drawn += c.VerticesDrawn() })
	assert.Equal(t, float64(drawn), gathered(t, reg, "voxel_uploaded_vertices"))
	assert.Equal(t, float64(1), gathered(t, reg, "voxel_loaded_columns"))
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a, b := NewGenerator(42), NewGenerator(42)
	for _, pos := range []ColumnPos{{0, 0}, {-3, 7}} {
		ca, cb := voxel.NewColumn(nil), voxel.NewColumn(nil)
		a.Fill(ca, pos)
		b.Fill(cb, pos)
		for i := range ca.Chunks {
			for p := range voxel.Positions() {
				require.Equal(t, ca.Chunks[i].GetBlock(p.X, p.Y, p.Z), cb.Chunks[i].GetBlock(p.X, p.Y, p.Z))
			}
		}
	}
}

func TestGeneratorLayers(t *testing.T) {
	g := NewGenerator(7)
	col := voxel.NewColumn(nil)
	g.Fill(col, ColumnPos{2, -2})

	for x := 0; x < voxel.ChunkSize; x++ {
		for z := 0; z < voxel.ChunkSize; z++ {
			h := g.Height(2*voxel.ChunkSize+x, -2*voxel.ChunkSize+z)
			assert.Equal(t, voxel.Bedrock, col.GetBlock(x, 0, z))
			assert.Equal(t, voxel.Stone, col.GetBlock(x, h-dirtDepth, z))
			top := col.GetBlock(x, h, z)
			assert.Contains(t, []voxel.BlockID{voxel.GrassBlock, voxel.OakLog}, top)
		}
	}
}

func TestGenerateArea(t *testing.T) {
	w := newTestWorld(t, WithWorkers(4))
	require.NoError(t, GenerateArea(context.Background(), w, NewGenerator(1), ColumnPos{0, 0}, 1))
	assert.Equal(t, 9, w.ColumnCount())
	assert.Len(t, w.DirtyChunks(), 9*voxel.ColumnHeight)

	w.RebuildDirty()
	assert.Empty(t, w.DirtyChunks())

	// already loaded columns are kept
	require.NoError(t, GenerateArea(context.Background(), w, NewGenerator(1), ColumnPos{0, 0}, 1))
	assert.Empty(t, w.DirtyChunks())
}

func TestGenerateAreaCancelled(t *testing.T) {
	w := newTestWorld(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, GenerateArea(ctx, w, NewGenerator(1), ColumnPos{}, 1), context.Canceled)
	assert.Zero(t, w.ColumnCount())
}
