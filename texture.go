package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"neilpa.me/go-stbi"

	"github.com/andrewmillercode/opencraft/voxel"
)

const tileSize = 16

// loadBlockTextures slices a grid atlas of 16x16 tiles, row-major, into a
// texture array with one layer per tile.
func loadBlockTextures(path string) (uint32, error) {
	rgba, err := stbi.Load(path)
	if err != nil {
		return 0, fmt.Errorf("load atlas %s: %w", path, err)
	}
	bounds := rgba.Bounds()
	cols, rows := bounds.Dx()/tileSize, bounds.Dy()/tileSize
	if cols*rows < voxel.TextureLayerCount {
		return 0, fmt.Errorf("atlas %s: %d tiles, need %d", path, cols*rows, voxel.TextureLayerCount)
	}

	pixels := make([]byte, 0, tileSize*tileSize*4*voxel.TextureLayerCount)
	for layer := 0; layer < voxel.TextureLayerCount; layer++ {
		tx := bounds.Min.X + (layer%cols)*tileSize
		ty := bounds.Min.Y + (layer/cols)*tileSize
		for y := 0; y < tileSize; y++ {
			off := rgba.PixOffset(tx, ty+y)
			pixels = append(pixels, rgba.Pix[off:off+tileSize*4]...)
		}
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, textureID)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8, tileSize, tileSize, int32(voxel.TextureLayerCount),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	var maxAnisotropy float32
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &maxAnisotropy)
	gl.TexParameterf(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_ANISOTROPY, maxAnisotropy)
	return textureID, nil
}
