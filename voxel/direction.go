package voxel

import "github.com/go-gl/mathgl/mgl32"

// Direction is one of the six axis aligned cube faces.
type Direction uint8

const (
	Right  Direction = iota // +X
	Left                    // -X
	Top                     // +Y
	Bottom                  // -Y
	Front                   // +Z
	Back                    // -Z
)

// Directions lists every face in storage order.
var Directions = [FaceCount]Direction{Right, Left, Top, Bottom, Front, Back}

var directionOffsets = [FaceCount]Pos{
	Right:  {1, 0, 0},
	Left:   {-1, 0, 0},
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
	Front:  {0, 0, 1},
	Back:   {0, 0, -1},
}

var directionNames = [FaceCount]string{"right", "left", "top", "bottom", "front", "back"}

// Corner positions of each face inside the unit cube, counter-clockwise
// seen from outside. Corner k of a face owns AO slot k.
var faceCorners = [FaceCount][CornerCount][3]float32{
	Right:  {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	Left:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	Top:    {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
	Bottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	Front:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	Back:   {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
}

var cornerUVs = [CornerCount][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// two triangles per quad
var quadCornerOrder = [VerticesPerFace]int{0, 1, 2, 2, 3, 0}

func (d Direction) String() string {
	if int(d) < FaceCount {
		return directionNames[d]
	}
	return "invalid"
}

// Offset is the unit step from a block to its neighbor across this face.
func (d Direction) Offset() Pos {
	return directionOffsets[d]
}

func (d Direction) Normal() mgl32.Vec3 {
	o := directionOffsets[d]
	return mgl32.Vec3{float32(o.X), float32(o.Y), float32(o.Z)}
}

func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Axis returns 0, 1 or 2 for X, Y or Z.
func (d Direction) Axis() int {
	return int(d) / 2
}

// cornerSamples returns the edge and diagonal neighbor offsets, relative to
// the block, that shade the given corner of face d.
func (d Direction) cornerSamples(corner int) (side1, side2, diagonal Pos) {
	n := directionOffsets[d]
	c := faceCorners[d][corner]
	axis := d.Axis()
	u, v := (axis+1)%3, (axis+2)%3

	var su, sv [3]int
	su[u] = int(c[u])*2 - 1
	sv[v] = int(c[v])*2 - 1

	side1 = n.Add(Pos{su[0], su[1], su[2]})
	side2 = n.Add(Pos{sv[0], sv[1], sv[2]})
	diagonal = side1.Add(Pos{sv[0], sv[1], sv[2]})
	return side1, side2, diagonal
}
