package voxel

// Mesher turns the cached face and AO tables of a chunk into a vertex stream.
// A Mesher reuses one scratch stream sized for a fully exposed chunk, so it
// must not be shared between goroutines.
type Mesher struct {
	// AmbientOcclusion false emits every AO value as 0.
	AmbientOcclusion bool

	scratch []float32
}

func NewMesher(ambientOcclusion bool) *Mesher {
	return &Mesher{
		AmbientOcclusion: ambientOcclusion,
		scratch:          make([]float32, 0, MaxChunkVertices*VertexSize),
	}
}

// Emit writes 6 vertices per active face of c. The returned slice is only
// valid until the next call.
func (m *Mesher) Emit(c *Chunk) []float32 {
	verts := m.scratch[:0]
	for p := range Positions() {
		i := Index(p.X, p.Y, p.Z)
		block := c.blocks[i]
		if block.IsAir() {
			continue
		}
		layers := block.TextureLayers()
		x, y, z := float32(p.X), float32(p.Y), float32(p.Z)

		for _, d := range Directions {
			if !c.FaceActive(p.X, p.Y, p.Z, d) {
				continue
			}
			normal := d.Normal()
			for _, corner := range quadCornerOrder {
				pos := faceCorners[d][corner]
				uv := cornerUVs[corner]
				var ao float32
				if m.AmbientOcclusion {
					ao = float32(c.ao[i][d][corner])
				}
				verts = append(verts,
					x+pos[0], y+pos[1], z+pos[2],
					uv[0], uv[1], layers[d],
					normal[0], normal[1], normal[2],
					ao,
				)
			}
		}
	}
	m.scratch = verts
	return verts
}

// Rebuild recomputes c from scratch, uploads the stream to its buffer and
// marks it clean. r serves reads outside the chunk and is never written.
func (m *Mesher) Rebuild(c *Chunk, origin Pos, r BlockReader) {
	ComputeFaces(c, origin, r)
	m.Upload(c)
}

// Upload emits c from its current tables and hands the stream to its buffer.
// Use it after ComputeFaces when face computation ran elsewhere.
func (m *Mesher) Upload(c *Chunk) {
	c.upload(m.Emit(c))
}
