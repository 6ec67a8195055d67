package voxel

// BlockID identifies the kind of block stored in a chunk cell.
type BlockID uint8

const (
	Air BlockID = iota
	Dirt
	GrassBlock
	Stone
	Cobblestone
	Bedrock
	Obsidian
	OakLog
	OakLeaves
	OakPlanks
	Glass
	Debug
	Debug2

	blockCount
)

// texture array layers, one 16x16 tile each, row-major in the atlas
const (
	layerDirt float32 = iota
	layerGrassTop
	layerGrassSide
	layerStone
	layerCobblestone
	layerBedrock
	layerObsidian
	layerOakLogSide
	layerOakLogTop
	layerOakLeaves
	layerOakPlanks
	layerGlass
	layerDebug
	layerDebug2

	// TextureLayerCount is the number of tiles the atlas must provide.
	TextureLayerCount = int(layerDebug2) + 1
)

var blockNames = [blockCount]string{
	Air:         "air",
	Dirt:        "dirt",
	GrassBlock:  "grass_block",
	Stone:       "stone",
	Cobblestone: "cobblestone",
	Bedrock:     "bedrock",
	Obsidian:    "obsidian",
	OakLog:      "oak_log",
	OakLeaves:   "oak_leaves",
	OakPlanks:   "oak_planks",
	Glass:       "glass",
	Debug:       "debug",
	Debug2:      "debug2",
}

func (b BlockID) String() string {
	if b < blockCount {
		return blockNames[b]
	}
	return "unknown"
}

func (b BlockID) IsAir() bool {
	return b == Air
}

// IsTransparent reports whether light and sight pass through the block.
func (b BlockID) IsTransparent() bool {
	switch b {
	case Air, OakLeaves, Glass:
		return true
	default:
		return false
	}
}

// IsTransparentNoLeaves is IsTransparent with leaves counted as solid.
// Occlusion sampling uses it so foliage still darkens the blocks it touches.
func (b BlockID) IsTransparentNoLeaves() bool {
	switch b {
	case Air, Glass:
		return true
	default:
		return false
	}
}

// Occludes reports whether the block counts as a solid ambient occlusion sample.
func (b BlockID) Occludes() bool {
	return !b.IsTransparentNoLeaves()
}

// TextureLayers returns the array texture layer for each face, indexed by Direction.
func (b BlockID) TextureLayers() [FaceCount]float32 {
	switch b {
	case GrassBlock:
		return sided(layerGrassTop, layerGrassSide, layerDirt)
	case OakLog:
		return sided(layerOakLogTop, layerOakLogSide, layerOakLogTop)
	case Dirt:
		return uniform(layerDirt)
	case Stone:
		return uniform(layerStone)
	case Cobblestone:
		return uniform(layerCobblestone)
	case Bedrock:
		return uniform(layerBedrock)
	case Obsidian:
		return uniform(layerObsidian)
	case OakLeaves:
		return uniform(layerOakLeaves)
	case OakPlanks:
		return uniform(layerOakPlanks)
	case Glass:
		return uniform(layerGlass)
	case Debug:
		return uniform(layerDebug)
	case Debug2:
		return uniform(layerDebug2)
	default:
		return uniform(0)
	}
}

func uniform(layer float32) [FaceCount]float32 {
	return [FaceCount]float32{layer, layer, layer, layer, layer, layer}
}

func sided(top, side, bottom float32) [FaceCount]float32 {
	var layers [FaceCount]float32
	for d := range layers {
		layers[d] = side
	}
	layers[Top] = top
	layers[Bottom] = bottom
	return layers
}
