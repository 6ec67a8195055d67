package voxel

// BlockReader answers block queries in world coordinates. Positions that are
// not loaded must report Air.
type BlockReader interface {
	BlockAt(x, y, z int) BlockID
}

// BlockReaderFunc adapts a function to BlockReader.
type BlockReaderFunc func(x, y, z int) BlockID

func (f BlockReaderFunc) BlockAt(x, y, z int) BlockID {
	return f(x, y, z)
}

// FaceVisible reports whether block emits its face towards neighbor.
// Opaque against transparent shows the opaque side only; two opaque or two
// non-air transparent blocks hide the shared face on both sides.
func FaceVisible(block, neighbor BlockID) bool {
	if block.IsAir() || !neighbor.IsTransparent() {
		return false
	}
	return neighbor.IsAir() || !block.IsTransparent()
}

// VertexAO combines the three samples of a corner. Two solid edges fully
// shade the corner whatever the diagonal holds.
func VertexAO(side1, side2, diagonal bool) uint8 {
	if side1 && side2 {
		return MaxAO
	}
	return b2u(side1) + b2u(side2) + b2u(diagonal)
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// ComputeFaces recomputes the visibility bitset and the AO table of every
// block in c. origin is the world position of the chunk's (0,0,0) block;
// cells outside the chunk are read through r, a nil r reads as Air.
// Only c is written.
func ComputeFaces(c *Chunk, origin Pos, r BlockReader) {
	at := func(p Pos) BlockID {
		if p.InChunk() {
			return c.blocks[Index(p.X, p.Y, p.Z)]
		}
		if r == nil {
			return Air
		}
		return r.BlockAt(origin.X+p.X, origin.Y+p.Y, origin.Z+p.Z)
	}

	for p := range Positions() {
		i := Index(p.X, p.Y, p.Z)
		block := c.blocks[i]
		for _, d := range Directions {
			visible := FaceVisible(block, at(p.Add(d.Offset())))
			c.setFaceActive(i, d, visible)
			if !visible {
				c.ao[i][d] = [CornerCount]uint8{}
				continue
			}
			for corner := 0; corner < CornerCount; corner++ {
				s1, s2, diag := d.cornerSamples(corner)
				c.ao[i][d][corner] = VertexAO(
					at(p.Add(s1)).Occludes(),
					at(p.Add(s2)).Occludes(),
					at(p.Add(diag)).Occludes(),
				)
			}
		}
	}
}
