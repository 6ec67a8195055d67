package world

import (
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrewmillercode/opencraft/voxel"
)

var horizontal = []voxel.Direction{voxel.Right, voxel.Left, voxel.Front, voxel.Back}

// World owns every loaded column and schedules chunk rebuilds.
//
// A World is not safe for concurrent use. Block writes, loads and rebuilds
// belong to one goroutine; RebuildDirty fans out internally only while no
// write can happen.
type World struct {
	columns map[ColumnPos]*voxel.Column

	alloc   voxel.BufferAllocator
	mesher  *voxel.Mesher
	workers int
	log     *slog.Logger
	metrics *Metrics
}

type Option func(*World)

func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(w *World) { w.metrics = m }
}

// WithWorkers bounds the goroutines computing faces during a rebuild pass.
func WithWorkers(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithBufferAllocator sets how chunk GPU buffers are created. The default keeps vertices in memory.
func WithBufferAllocator(a voxel.BufferAllocator) Option {
	return func(w *World) { w.alloc = a }
}

func WithAmbientOcclusion(on bool) Option {
	return func(w *World) { w.mesher.AmbientOcclusion = on }
}

func New(opts ...Option) *World {
	w := &World{
		columns: make(map[ColumnPos]*voxel.Column),
		alloc:   voxel.NewMemoryBuffer,
		mesher:  voxel.NewMesher(true),
		workers: runtime.GOMAXPROCS(0),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewColumn allocates an empty column with this world's buffer allocator.
// Call it from the goroutine that owns the graphics context.
func (w *World) NewColumn() *voxel.Column {
	return voxel.NewColumn(w.alloc)
}

// LoadColumn installs col at pos and flags it for a complete rebuild.
// Loaded horizontal neighbors are dirtied since their border faces were
// computed against air. A column already at pos is released.
func (w *World) LoadColumn(pos ColumnPos, col *voxel.Column) {
	if old, ok := w.columns[pos]; ok && old != col {
		w.releaseColumn(old)
	}
	w.columns[pos] = col
	for _, c := range col.Chunks {
		c.NeedsCompleteRebuild = true
	}
	w.dirtyNeighbors(pos)
	w.metrics.setColumns(len(w.columns))
	w.log.Debug("column loaded", "x", pos.X, "z", pos.Z)
}

// UnloadColumn releases the GPU buffers of the column at pos and forgets it.
func (w *World) UnloadColumn(pos ColumnPos) bool {
	col, ok := w.columns[pos]
	if !ok {
		return false
	}
	w.releaseColumn(col)
	delete(w.columns, pos)
	w.dirtyNeighbors(pos)
	w.metrics.setColumns(len(w.columns))
	w.log.Debug("column unloaded", "x", pos.X, "z", pos.Z)
	return true
}

func (w *World) releaseColumn(col *voxel.Column) {
	drawn := 0
	for _, c := range col.Chunks {
		drawn += c.VerticesDrawn()
	}
	col.Release()
	w.metrics.addVertices(-drawn)
}

func (w *World) dirtyNeighbors(pos ColumnPos) {
	for _, d := range horizontal {
		o := d.Offset()
		if n, ok := w.columns[ColumnPos{pos.X + o.X, pos.Z + o.Z}]; ok {
			for _, c := range n.Chunks {
				c.MarkDirty()
			}
		}
	}
}

func (w *World) Column(pos ColumnPos) (*voxel.Column, bool) {
	col, ok := w.columns[pos]
	return col, ok
}

func (w *World) ColumnCount() int {
	return len(w.columns)
}

// Chunk returns the loaded chunk at p, or nil.
func (w *World) Chunk(p ChunkPos) *voxel.Chunk {
	if p.Y < 0 || p.Y >= voxel.ColumnHeight {
		return nil
	}
	col, ok := w.columns[p.Column()]
	if !ok {
		return nil
	}
	return col.Chunks[p.Y]
}

// GetBlock reads a block by world position. ok is false when nothing is loaded there.
func (w *World) GetBlock(x, y, z int) (voxel.BlockID, bool) {
	cp, local, ok := locate(x, y, z)
	if !ok {
		return voxel.Air, false
	}
	c := w.Chunk(cp)
	if c == nil {
		return voxel.Air, false
	}
	return c.GetBlock(local.X, local.Y, local.Z), true
}

// BlockAt is GetBlock with unloaded space reading as air.
func (w *World) BlockAt(x, y, z int) voxel.BlockID {
	b, _ := w.GetBlock(x, y, z)
	return b
}

// IsSolidBlockAt reports whether a non-air block occupies the position.
func (w *World) IsSolidBlockAt(x, y, z int) bool {
	return !w.BlockAt(x, y, z).IsAir()
}

// SetBlock writes a block by world position. The owning chunk is dirtied,
// plus one loaded neighbor chunk per axis when the write lands on a chunk
// border. Writes into unloaded space are dropped and return false.
func (w *World) SetBlock(block voxel.BlockID, x, y, z int) bool {
	cp, local, ok := locate(x, y, z)
	if !ok {
		return false
	}
	c := w.Chunk(cp)
	if c == nil {
		return false
	}
	c.SetBlock(block, local.X, local.Y, local.Z)
	for _, d := range voxel.BoundaryDirections(local.X, local.Y, local.Z) {
		if n := w.Chunk(cp.Neighbor(d)); n != nil {
			n.MarkDirty()
		}
	}
	return true
}

// DirtyChunks lists every chunk waiting for a rebuild, in a stable order.
func (w *World) DirtyChunks() []ChunkPos {
	var dirty []ChunkPos
	for pos, col := range w.columns {
		for y, c := range col.Chunks {
			if c.NeedsRebuild() {
				dirty = append(dirty, ChunkPos{pos.X, y, pos.Z})
			}
		}
	}
	slices.SortFunc(dirty, compareChunkPos)
	return dirty
}

// RebuildDirty re-meshes every dirty chunk and uploads the results. Face
// and occlusion tables are computed concurrently, each goroutine writing
// only its own chunk; emission and upload then run on the calling
// goroutine. It returns the number of chunks rebuilt.
func (w *World) RebuildDirty() int {
	start := time.Now()
	dirty := w.DirtyChunks()
	if len(dirty) == 0 {
		return 0
	}

	var g errgroup.Group
	g.SetLimit(w.workers)
	for _, cp := range dirty {
		c := w.Chunk(cp)
		g.Go(func() error {
			voxel.ComputeFaces(c, cp.Origin(), w)
			return nil
		})
	}
	_ = g.Wait()

	for _, cp := range dirty {
		c := w.Chunk(cp)
		before := c.VerticesDrawn()
		w.mesher.Upload(c)
		w.metrics.addVertices(c.VerticesDrawn() - before)
	}

	took := time.Since(start)
	w.metrics.observePass(len(dirty), len(dirty), took)
	w.log.Debug("rebuilt dirty chunks", "count", len(dirty), "took", took)
	return len(dirty)
}

func (w *World) AmbientOcclusion() bool {
	return w.mesher.AmbientOcclusion
}

// SetAmbientOcclusion switches AO baking and flags every chunk for a complete rebuild.
func (w *World) SetAmbientOcclusion(on bool) {
	if w.mesher.AmbientOcclusion == on {
		return
	}
	w.mesher.AmbientOcclusion = on
	for _, col := range w.columns {
		for _, c := range col.Chunks {
			c.NeedsCompleteRebuild = true
		}
	}
	w.log.Info("ambient occlusion toggled", "enabled", on)
}

// ForEachChunk visits loaded chunks ordered by column, then height.
func (w *World) ForEachChunk(fn func(ChunkPos, *voxel.Chunk)) {
	positions := slices.SortedFunc(maps.Keys(w.columns), func(a, b ColumnPos) int {
		return compareChunkPos(ChunkPos{X: a.X, Z: a.Z}, ChunkPos{X: b.X, Z: b.Z})
	})
	for _, pos := range positions {
		for y, c := range w.columns[pos].Chunks {
			fn(ChunkPos{pos.X, y, pos.Z}, c)
		}
	}
}

// Close releases every loaded column.
func (w *World) Close() {
	for pos, col := range w.columns {
		w.releaseColumn(col)
		delete(w.columns, pos)
	}
	w.metrics.setColumns(0)
}

func compareChunkPos(a, b ChunkPos) int {
	switch {
	case a.less(b):
		return -1
	case b.less(a):
		return 1
	default:
		return 0
	}
}
