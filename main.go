package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrewmillercode/opencraft/config"
	"github.com/andrewmillercode/opencraft/voxel"
	"github.com/andrewmillercode/opencraft/world"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type client struct {
	cfg    *config.Config
	log    *slog.Logger
	world  *world.World
	camera *camera

	monitor   *glfw.Monitor
	showDebug bool
	selected  voxel.BlockID
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("opencraft stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	if cfg.Window.Vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	logger.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	voxelProgram, err := newProgram(cfg.Assets.ShaderDir, "voxel")
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(voxelProgram)
	blockTextures, err := loadBlockTextures(cfg.Assets.Atlas)
	if err != nil {
		return err
	}
	defer gl.DeleteTextures(1, &blockTextures)
	skybox, err := newSky(cfg.Assets.ShaderDir)
	if err != nil {
		return err
	}
	defer skybox.delete()
	debugHUD, err := newHUD(cfg.Assets.Font, cfg.Assets.ShaderDir)
	if err != nil {
		return err
	}
	defer debugHUD.delete()

	opts := []world.Option{
		world.WithLogger(logger),
		world.WithBufferAllocator(newGLBuffer),
		world.WithAmbientOcclusion(cfg.World.AmbientOcclusion),
		world.WithWorkers(cfg.World.MeshWorkers),
	}
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, world.WithMetrics(world.NewMetrics(reg)))
		stop := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer stop()
	}
	w := world.New(opts...)
	defer w.Close()

	start := time.Now()
	gen := world.NewGenerator(cfg.World.Seed)
	if err := world.GenerateArea(context.Background(), w, gen, world.ColumnPos{}, cfg.World.RenderDistance); err != nil {
		return fmt.Errorf("generate terrain: %w", err)
	}
	rebuilt := w.RebuildDirty()
	logger.Info("world ready", "columns", w.ColumnCount(), "chunks", rebuilt, "took", time.Since(start))

	spawn := mgl32.Vec3{8.5, float32(gen.Height(8, 8) + 3), 8.5}
	c := &client{
		cfg:       cfg,
		log:       logger,
		world:     w,
		camera:    newCamera(spawn),
		showDebug: true,
		selected:  hotbar[0],
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPosCallback(c.onCursor)
	window.SetKeyCallback(c.onKey)
	window.SetMouseButtonCallback(c.onMouseButton)

	stats := newFrameStats()
	previousFrame := time.Now()
	for !window.ShouldClose() {
		deltaTime := float32(time.Since(previousFrame).Seconds())
		previousFrame = time.Now()
		glfw.PollEvents()
		c.movement(window, deltaTime)

		// edits from this frame's input become visible in the same frame
		w.RebuildDirty()

		width, height := window.GetFramebufferSize()
		if width == 0 || height == 0 {
			window.SwapBuffers()
			continue
		}
		projection := mgl32.Perspective(mgl32.DegToRad(70), float32(width)/float32(height), 0.1, 1000)
		view := c.camera.view()

		gl.ClearColor(0.75, 0.85, 1.0, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		skybox.draw(projection, view)
		c.drawWorld(voxelProgram, blockTextures, projection, view)

		if stats.frame() && c.showDebug {
			if err := debugHUD.update(c.debugLines(stats)); err != nil {
				return err
			}
		}
		if c.showDebug {
			debugHUD.draw(width, height)
		}
		window.SwapBuffers()
	}
	return nil
}

func (c *client) drawWorld(program, textures uint32, projection, view mgl32.Mat4) {
	gl.UseProgram(program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, textures)
	gl.Uniform1i(uniform(program, "blocks"), 0)
	gl.UniformMatrix4fv(uniform(program, "projection"), 1, false, &projection[0])
	gl.UniformMatrix4fv(uniform(program, "view"), 1, false, &view[0])

	modelLoc := uniform(program, "model")
	c.world.ForEachChunk(func(cp world.ChunkPos, chunk *voxel.Chunk) {
		o := cp.Origin()
		model := mgl32.Translate3D(float32(o.X), float32(o.Y), float32(o.Z))
		gl.UniformMatrix4fv(modelLoc, 1, false, &model[0])
		drawChunk(chunk)
	})
}

func (c *client) debugLines(stats *frameStats) []string {
	pos := c.camera.position
	vertices := 0
	c.world.ForEachChunk(func(_ world.ChunkPos, chunk *voxel.Chunk) { vertices += chunk.VerticesDrawn() })
	return append(stats.lines(),
		fmt.Sprintf("XYZ: %.1f / %.1f / %.1f", pos.X(), pos.Y(), pos.Z()),
		fmt.Sprintf("Columns: %d  Vertices: %d", c.world.ColumnCount(), vertices),
		fmt.Sprintf("AO: %v (F6)  Block: %s", c.world.AmbientOcclusion(), c.selected),
	)
}

// serveMetrics exposes reg on addr until the returned func is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
