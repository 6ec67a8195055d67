package main

import (
	"fmt"
	"image"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
)

const (
	hudCanvas   = 512
	hudFontSize = 18
	hudLeading  = 22
)

// hud renders debug lines into one canvas texture drawn in the top left corner.
type hud struct {
	ctx     *freetype.Context
	dst     *image.RGBA
	texture uint32
	vao     uint32
	vbo     uint32
	program uint32
}

func newHUD(fontPath, shaderDir string) (*hud, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := freetype.ParseFont(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontPath, err)
	}
	program, err := newProgram(shaderDir, "text")
	if err != nil {
		return nil, err
	}

	h := &hud{
		dst:     image.NewRGBA(image.Rect(0, 0, hudCanvas, hudCanvas)),
		program: program,
	}
	h.ctx = freetype.NewContext()
	h.ctx.SetFont(f)
	h.ctx.SetFontSize(hudFontSize)
	h.ctx.SetDst(h.dst)
	h.ctx.SetClip(h.dst.Bounds())
	h.ctx.SetSrc(image.White)
	h.ctx.SetHinting(font.HintingFull)

	vertices := []float32{
		0.0, 1.0, 0.0, 0.0, 1.0, // Top-left
		0.0, 0.0, 0.0, 0.0, 0.0, // Bottom-left
		1.0, 0.0, 0.0, 1.0, 0.0, // Bottom-right

		0.0, 1.0, 0.0, 0.0, 1.0, // Top-left
		1.0, 0.0, 0.0, 1.0, 0.0, // Bottom-right
		1.0, 1.0, 0.0, 1.0, 1.0, // Top-right
	}
	gl.GenVertexArrays(1, &h.vao)
	gl.BindVertexArray(h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, uintptr(3*4))
	gl.BindVertexArray(0)

	gl.GenTextures(1, &h.texture)
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, hudCanvas, hudCanvas, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(h.dst.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return h, nil
}

// update redraws the canvas with lines and re-uploads the texture.
func (h *hud) update(lines []string) error {
	clear(h.dst.Pix)
	for i, line := range lines {
		pt := freetype.Pt(8, 8+hudLeading*(i+1))
		if _, err := h.ctx.DrawString(line, pt); err != nil {
			return fmt.Errorf("draw hud line %q: %w", line, err)
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, hudCanvas, hudCanvas, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(h.dst.Pix))
	return nil
}

func (h *hud) draw(width, height int) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(h.program)
	// y grows downwards so canvas row 0 lands at the top of the window
	projection := mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
	model := mgl32.Scale3D(hudCanvas, hudCanvas, 1)
	gl.UniformMatrix4fv(uniform(h.program, "projection"), 1, false, &projection[0])
	gl.UniformMatrix4fv(uniform(h.program, "model"), 1, false, &model[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.Uniform1i(uniform(h.program, "text"), 0)
	gl.BindVertexArray(h.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

func (h *hud) delete() {
	gl.DeleteTextures(1, &h.texture)
	gl.DeleteBuffers(1, &h.vbo)
	gl.DeleteVertexArrays(1, &h.vao)
	gl.DeleteProgram(h.program)
}
