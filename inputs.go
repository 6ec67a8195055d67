package main

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/andrewmillercode/opencraft/voxel"
)

const (
	flyingSpeed  float32 = 20
	sprintFactor float32 = 2.5
	reach        float32 = 6
)

// hotbar maps the number keys to placeable blocks.
var hotbar = []voxel.BlockID{
	voxel.Dirt, voxel.GrassBlock, voxel.Stone, voxel.Cobblestone, voxel.OakPlanks,
	voxel.OakLog, voxel.OakLeaves, voxel.Glass, voxel.Obsidian,
}

// camera is a free flying first person camera.
type camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	yaw      float64
	pitch    float64

	lastX, lastY float64
	firstMouse   bool
}

func newCamera(position mgl32.Vec3) *camera {
	c := &camera{position: position, yaw: -90, firstMouse: true}
	c.look(0, 0)
	return c
}

func (c *camera) view() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *camera) look(dx, dy float64) {
	const sensitivity = 0.3
	c.yaw += dx * sensitivity
	c.pitch = max(-89, min(89, c.pitch+dy*sensitivity))

	yaw, pitch := float64(mgl32.DegToRad(float32(c.yaw))), float64(mgl32.DegToRad(float32(c.pitch)))
	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func (c *client) onCursor(_ *glfw.Window, xPos, yPos float64) {
	cam := c.camera
	if cam.firstMouse {
		cam.lastX, cam.lastY = xPos, yPos
		cam.firstMouse = false
	}
	// reversed since window y grows downwards
	cam.look(xPos-cam.lastX, cam.lastY-yPos)
	cam.lastX, cam.lastY = xPos, yPos
}

func (c *client) onKey(window *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch {
	case key == glfw.KeyF3:
		c.showDebug = !c.showDebug
	case key == glfw.KeyF6:
		c.world.SetAmbientOcclusion(!c.world.AmbientOcclusion())
	case key == glfw.KeyF11:
		c.toggleFullscreen(window)
	case key == glfw.KeyEscape:
		window.SetShouldClose(true)
	case key >= glfw.Key1 && key <= glfw.Key9:
		c.selected = hotbar[key-glfw.Key1]
		c.log.Debug("selected block", "block", c.selected)
	}
}

func (c *client) toggleFullscreen(window *glfw.Window) {
	if c.monitor == nil {
		c.monitor = glfw.GetPrimaryMonitor()
		mode := c.monitor.GetVideoMode()
		window.SetMonitor(c.monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	mode := c.monitor.GetVideoMode()
	c.monitor = nil
	w, h := c.cfg.Window.Width, c.cfg.Window.Height
	window.SetMonitor(nil, (mode.Width-w)/2, (mode.Height-h)/2, w, h, 0)
}

// onMouseButton breaks the targeted block on left click and places the
// selected block against it on right click.
func (c *client) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	hit, ok := c.world.Raycast(c.camera.position, c.camera.front, reach)
	if !ok {
		return
	}
	switch button {
	case glfw.MouseButtonLeft:
		c.world.SetBlock(voxel.Air, hit.Block.X, hit.Block.Y, hit.Block.Z)
	case glfw.MouseButtonRight:
		p := hit.Previous
		if p == hit.Block || c.insideCamera(p) {
			return
		}
		c.world.SetBlock(c.selected, p.X, p.Y, p.Z)
	}
}

func (c *client) insideCamera(p voxel.Pos) bool {
	pos := c.camera.position
	return int(math.Floor(float64(pos.X()))) == p.X &&
		int(math.Floor(float64(pos.Y()))) == p.Y &&
		int(math.Floor(float64(pos.Z()))) == p.Z
}

// movement polls held keys every frame.
func (c *client) movement(window *glfw.Window, deltaTime float32) {
	speed := flyingSpeed
	if window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		speed *= sprintFactor
	}

	cam := c.camera
	flat := mgl32.Vec3{cam.front.X(), 0, cam.front.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	var direction mgl32.Vec3
	if window.GetKey(glfw.KeyW) == glfw.Press {
		direction = direction.Add(flat)
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		direction = direction.Sub(flat)
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		direction = direction.Sub(cam.right)
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		direction = direction.Add(cam.right)
	}
	if window.GetKey(glfw.KeySpace) == glfw.Press {
		direction = direction.Add(mgl32.Vec3{0, 1, 0})
	}
	if window.GetKey(glfw.KeyLeftControl) == glfw.Press {
		direction = direction.Sub(mgl32.Vec3{0, 1, 0})
	}
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	cam.position = cam.position.Add(direction.Mul(speed * deltaTime))
}
