package voxel

const (
	ChunkSize   = 16
	ChunkArea   = ChunkSize * ChunkSize
	ChunkVolume = ChunkArea * ChunkSize

	FaceCount       = 6
	CornerCount     = 4
	VerticesPerFace = 6

	// VertexSize is the float count of one vertex: position(3) uv+layer(3) normal(3) ao(1).
	VertexSize = 10

	// MaxChunkVertices is the vertex count of a fully exposed chunk.
	MaxChunkVertices = ChunkVolume * FaceCount * VerticesPerFace

	// MaxAO is the occlusion value of a fully shaded corner.
	MaxAO = 3
)

// Pos is an integer block position, local or world depending on context.
type Pos struct {
	X, Y, Z int
}

func (p Pos) Add(o Pos) Pos {
	return Pos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// InChunk reports whether p is a valid local chunk coordinate.
func (p Pos) InChunk() bool {
	return uint(p.X) < ChunkSize && uint(p.Y) < ChunkSize && uint(p.Z) < ChunkSize
}

// Index converts local coordinates to the block array index.
func Index(x, y, z int) int {
	return y*ChunkArea + z*ChunkSize + x
}

// Chunk is a 16x16x16 block of voxels together with its cached mesh state.
type Chunk struct {
	blocks      [ChunkVolume]BlockID
	activeFaces [ChunkVolume * FaceCount / 64]uint64
	ao          [ChunkVolume][FaceCount][CornerCount]uint8
	dirty       bool

	// NeedsCompleteRebuild forces the next rebuild even without a block write.
	NeedsCompleteRebuild bool

	buffer        Buffer
	verticesDrawn int
	released      bool
}

// NewChunk returns an all-air chunk owning buf.
func NewChunk(buf Buffer) *Chunk {
	return NewFilledChunk(Air, buf)
}

// NewFilledChunk returns a chunk where every block is block.
func NewFilledChunk(block BlockID, buf Buffer) *Chunk {
	c := &Chunk{
		NeedsCompleteRebuild: true,
		buffer:               buf,
	}
	c.Fill(block)
	return c
}

func (c *Chunk) GetBlock(x, y, z int) BlockID {
	return c.blocks[Index(x, y, z)]
}

// SetBlock overwrites a block and marks the chunk dirty. Coordinates must be
// in [0,16); neighbors are not dirtied here, see BoundaryDirections.
func (c *Chunk) SetBlock(block BlockID, x, y, z int) {
	c.blocks[Index(x, y, z)] = block
	c.dirty = true
}

func (c *Chunk) Fill(block BlockID) {
	for i := range c.blocks {
		c.blocks[i] = block
	}
	c.dirty = true
}

func (c *Chunk) IsDirty() bool {
	return c.dirty
}

func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// NeedsRebuild reports whether the cached mesh is stale.
func (c *Chunk) NeedsRebuild() bool {
	return c.dirty || c.NeedsCompleteRebuild
}

// FaceActive reports whether the given face of the block emits geometry.
func (c *Chunk) FaceActive(x, y, z int, d Direction) bool {
	bit := Index(x, y, z)*FaceCount + int(d)
	return c.activeFaces[bit>>6]&(1<<(bit&63)) != 0
}

func (c *Chunk) setFaceActive(index int, d Direction, active bool) {
	bit := index*FaceCount + int(d)
	if active {
		c.activeFaces[bit>>6] |= 1 << (bit & 63)
	} else {
		c.activeFaces[bit>>6] &^= 1 << (bit & 63)
	}
}

// ActiveFaceCount returns how many faces the last rebuild flagged visible.
func (c *Chunk) ActiveFaceCount() int {
	n := 0
	for _, word := range c.activeFaces {
		for ; word != 0; word &= word - 1 {
			n++
		}
	}
	return n
}

// AO returns the baked occlusion of one face corner, 0 (open) to MaxAO.
func (c *Chunk) AO(x, y, z int, d Direction, corner int) uint8 {
	return c.ao[Index(x, y, z)][d][corner]
}

// VerticesDrawn is the vertex count of the last upload.
func (c *Chunk) VerticesDrawn() int {
	return c.verticesDrawn
}

// Buffer returns the GPU buffer owned by the chunk. Read only for renderers.
func (c *Chunk) Buffer() Buffer {
	return c.buffer
}

func (c *Chunk) upload(vertices []float32) {
	c.verticesDrawn = 0
	if !c.released {
		if c.buffer != nil {
			c.buffer.Upload(vertices)
		}
		c.verticesDrawn = len(vertices) / VertexSize
	}
	c.dirty = false
	c.NeedsCompleteRebuild = false
}

// Release frees the GPU buffer. Safe to call more than once.
func (c *Chunk) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.buffer != nil {
		c.buffer.Delete()
	}
	c.verticesDrawn = 0
}
