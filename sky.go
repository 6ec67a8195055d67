package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// sky draws a gradient cube around the camera.
type sky struct {
	vao, vbo uint32
	program  uint32
}

func newSky(shaderDir string) (*sky, error) {
	program, err := newProgram(shaderDir, "sky")
	if err != nil {
		return nil, err
	}

	cubeVertices := []float32{
		// +X
		1, -1, -1, 1, 1, -1, 1, 1, 1,
		1, -1, -1, 1, 1, 1, 1, -1, 1,
		// -X
		-1, -1, -1, -1, -1, 1, -1, 1, 1,
		-1, -1, -1, -1, 1, 1, -1, 1, -1,
		// +Y
		-1, 1, -1, 1, 1, -1, 1, 1, 1,
		-1, 1, -1, 1, 1, 1, -1, 1, 1,
		// -Y
		-1, -1, -1, -1, -1, 1, 1, -1, 1,
		-1, -1, -1, 1, -1, 1, 1, -1, -1,
		// +Z
		-1, -1, 1, 1, -1, 1, 1, 1, 1,
		-1, -1, 1, 1, 1, 1, -1, 1, 1,
		// -Z
		-1, -1, -1, 1, -1, -1, 1, 1, -1,
		-1, -1, -1, 1, 1, -1, -1, 1, -1,
	}

	s := &sky{program: program}
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)
	return s, nil
}

// draw must run before terrain; it leaves depth writes and culling as it found them.
func (s *sky) draw(projection, view mgl32.Mat4) {
	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(uniform(s.program, "projection"), 1, false, &projection[0])
	gl.UniformMatrix4fv(uniform(s.program, "view"), 1, false, &view[0])
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)

	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
}

func (s *sky) delete() {
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteProgram(s.program)
}
