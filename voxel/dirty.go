package voxel

// BoundaryDirections returns the neighbor chunks a write at local (x,y,z)
// leaves stale: one per axis where the coordinate sits on the chunk border.
// Interior writes return nil.
func BoundaryDirections(x, y, z int) []Direction {
	var dirs []Direction
	switch x {
	case 0:
		dirs = append(dirs, Left)
	case ChunkSize - 1:
		dirs = append(dirs, Right)
	}
	switch y {
	case 0:
		dirs = append(dirs, Bottom)
	case ChunkSize - 1:
		dirs = append(dirs, Top)
	}
	switch z {
	case 0:
		dirs = append(dirs, Back)
	case ChunkSize - 1:
		dirs = append(dirs, Front)
	}
	return dirs
}
