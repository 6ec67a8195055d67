package voxel

// Buffer is a GPU vertex store owned by exactly one chunk.
//
// Upload replaces the whole store with the given stream and must copy it;
// the caller reuses the slice for the next chunk. Delete frees the store.
type Buffer interface {
	Upload(vertices []float32)
	Delete()
}

// BufferAllocator creates the buffer for a newly constructed chunk.
type BufferAllocator func() Buffer

// MemoryBuffer keeps uploads in process memory. It backs headless worlds and tests.
type MemoryBuffer struct {
	Vertices []float32
	Uploads  int
	Deleted  bool
}

func NewMemoryBuffer() Buffer {
	return &MemoryBuffer{}
}

func (b *MemoryBuffer) Upload(vertices []float32) {
	b.Vertices = append(b.Vertices[:0], vertices...)
	b.Uploads++
}

func (b *MemoryBuffer) Delete() {
	b.Vertices = nil
	b.Deleted = true
}
