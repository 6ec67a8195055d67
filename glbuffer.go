package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/andrewmillercode/opencraft/voxel"
)

// glBuffer is a chunk's VAO/VBO pair. Every method must run on the thread
// owning the GL context.
type glBuffer struct {
	vao, vbo uint32
}

func newGLBuffer() voxel.Buffer {
	b := &glBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	const stride = voxel.VertexSize * 4
	//position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	//u, v, texture layer
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	//normal
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 6*4)
	//ambient occlusion
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 9*4)

	gl.BindVertexArray(0)
	return b
}

// Upload reallocates the store to exactly the stream's size.
func (b *glBuffer) Upload(vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
}

func (b *glBuffer) Delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}

func drawChunk(c *voxel.Chunk) {
	b, ok := c.Buffer().(*glBuffer)
	if !ok || c.VerticesDrawn() == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(c.VerticesDrawn()))
}
