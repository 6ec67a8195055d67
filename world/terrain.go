package world

import (
	"context"

	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/sync/errgroup"

	"github.com/andrewmillercode/opencraft/voxel"
)

const (
	baseHeight  = 64
	dirtDepth   = 3
	trunkHeight = 5
)

// Generator fills columns with noise terrain. Output depends only on the
// seed and the column position, so columns can be generated in any order.
type Generator struct {
	noise opensimplex.Noise32
	trees opensimplex.Noise32
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		noise: opensimplex.New32(seed),
		trees: opensimplex.New32(seed + 1),
	}
}

func (g *Generator) fractalNoise(x, z int, amplitude float32, octaves int, lacunarity, persistence, scale float32) int {
	val := float32(0)
	x1, z1 := float32(x), float32(z)
	for i := 0; i < octaves; i++ {
		val += g.noise.Eval2(x1/scale, z1/scale) * amplitude
		x1 *= lacunarity
		z1 *= lacunarity
		amplitude *= persistence
	}
	return int(val)
}

// Height is the y of the topmost terrain block at a world column.
func (g *Generator) Height(x, z int) int {
	h := baseHeight + g.fractalNoise(x, z, 24, 4, 2, 0.5, 160)
	return max(1, min(h, voxel.WorldHeight-trunkHeight-4))
}

// Fill writes terrain for the column at pos into col.
func (g *Generator) Fill(col *voxel.Column, pos ColumnPos) {
	ox, oz := pos.X*voxel.ChunkSize, pos.Z*voxel.ChunkSize
	for x := 0; x < voxel.ChunkSize; x++ {
		for z := 0; z < voxel.ChunkSize; z++ {
			h := g.Height(ox+x, oz+z)
			for y := 0; y <= h; y++ {
				col.SetBlock(terrainBlock(y, h), x, y, z)
			}
		}
	}

	// trees stay inside the column so generation never writes into a neighbor
	for x := 2; x < voxel.ChunkSize-2; x++ {
		for z := 2; z < voxel.ChunkSize-2; z++ {
			wx, wz := ox+x, oz+z
			if !g.hasTree(wx, wz) {
				continue
			}
			h := g.Height(wx, wz)
			if col.GetBlock(x, h, z) == voxel.GrassBlock {
				plantTree(col, x, h+1, z)
			}
		}
	}
}

func terrainBlock(y, height int) voxel.BlockID {
	switch {
	case y == 0:
		return voxel.Bedrock
	case y == height:
		return voxel.GrassBlock
	case y > height-dirtDepth:
		return voxel.Dirt
	default:
		return voxel.Stone
	}
}

func (g *Generator) hasTree(x, z int) bool {
	if (x*31+z*17)&7 != 0 {
		return false
	}
	return g.trees.Eval2(float32(x)/24, float32(z)/24) > 0.35
}

func plantTree(col *voxel.Column, x, y, z int) {
	top := y + trunkHeight - 1
	for dy := -2; dy <= 1; dy++ {
		r := 2
		if dy > -1 {
			r = 1
		}
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if col.GetBlock(x+dx, top+dy, z+dz).IsAir() {
					col.SetBlock(voxel.OakLeaves, x+dx, top+dy, z+dz)
				}
			}
		}
	}
	for dy := 0; dy < trunkHeight; dy++ {
		col.SetBlock(voxel.OakLog, x, y+dy, z)
	}
}

// GenerateArea loads every column within radius of center. Columns are
// allocated and loaded on the calling goroutine; only block filling runs
// concurrently.
func GenerateArea(ctx context.Context, w *World, g *Generator, center ColumnPos, radius int) error {
	type job struct {
		pos ColumnPos
		col *voxel.Column
	}
	var jobs []job
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			pos := ColumnPos{x, z}
			if _, ok := w.Column(pos); ok {
				continue
			}
			jobs = append(jobs, job{pos, w.NewColumn()})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g.Fill(j.col, j.pos)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		for _, j := range jobs {
			j.col.Release()
		}
		return err
	}

	for _, j := range jobs {
		w.LoadColumn(j.pos, j.col)
	}
	w.log.Info("generated terrain", "columns", len(jobs), "radius", radius)
	return nil
}
