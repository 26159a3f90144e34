// Command demo draws bouncing sprites, and optionally a glTF mesh, through
// the glkit renderer.
package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"glkit/asset"
	"glkit/batch"
	"glkit/config"
	"glkit/core"
	"glkit/gl"
	"glkit/math"
	"glkit/opengl"
	"glkit/renderer"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "window width in pixels",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "window height in pixels",
	}
	spritesFlag = &cli.IntFlag{
		Name:  "sprites",
		Usage: "number of sprites to animate",
		Value: 2000,
	}
	textureFlag = &cli.StringFlag{
		Name:  "texture",
		Usage: "sprite image, a file path or an http(s) URL",
	}
	meshFlag = &cli.StringFlag{
		Name:  "mesh",
		Usage: "glTF or OBJ file, or \"sphere\" or \"plane\", drawn in front of the sprites",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error",
	}
	noMultiDrawFlag = &cli.BoolFlag{
		Name:  "no-multidraw",
		Usage: "issue one draw per range even when multi-draw is available",
	}
	vsyncFlag = &cli.BoolFlag{
		Name:  "vsync",
		Usage: "synchronize buffer swaps with the display",
		Value: true,
	}
)

var app = &cli.App{
	Name:  "demo",
	Usage: "glkit sprite demo",
	Flags: []cli.Flag{
		configFlag,
		widthFlag,
		heightFlag,
		spritesFlag,
		textureFlag,
		meshFlag,
		logLevelFlag,
		noMultiDrawFlag,
		vsyncFlag,
	},
	Action: run,
	Commands: []*cli.Command{
		{
			Name:   "dumpconfig",
			Usage:  "print the effective configuration as TOML",
			Action: dumpConfig,
		},
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file when given and applies flag overrides.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(widthFlag.Name) {
		cfg.Window.Width = ctx.Int(widthFlag.Name)
	}
	if ctx.IsSet(heightFlag.Name) {
		cfg.Window.Height = ctx.Int(heightFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logLevelFlag.Name)
	}
	if ctx.IsSet(noMultiDrawFlag.Name) {
		cfg.Renderer.DisableMultiDraw = ctx.Bool(noMultiDrawFlag.Name)
	}
	if ctx.IsSet(vsyncFlag.Name) {
		cfg.Window.VSync = ctx.Bool(vsyncFlag.Name)
	}
	return cfg, cfg.Validate()
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return cfg.Encode(os.Stdout)
}

// spriteImage loads the sprite texture through images, or returns the
// builtin checkerboard when src is empty.
func spriteImage(images *asset.Cache, src string) (*asset.Image, error) {
	if src == "" {
		return checkerboard(32, 4), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return images.Get(ctx, src)
}

func checkerboard(size, cells int) *asset.Image {
	return asset.Checker(size, cells, color.RGBA{255, 255, 255, 255}, color.RGBA{160, 160, 160, 255})
}

// loadMesh resolves the builtin "sphere" and "plane" names before trying
// the file system.
func loadMesh(src string) (*asset.Mesh, error) {
	switch src {
	case "sphere":
		return asset.Sphere(1, 32, 16), nil
	case "plane":
		return asset.Plane(2, 2, 4), nil
	}
	return asset.LoadMesh(src)
}

func run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	renderer.SetLogger(logger)

	var images asset.Cache
	img, err := spriteImage(&images, ctx.String(textureFlag.Name))
	if err != nil {
		return fmt.Errorf("load sprite image: %w", err)
	}
	var mesh *asset.Mesh
	if path := ctx.String(meshFlag.Name); path != "" {
		if mesh, err = loadMesh(path); err != nil {
			return err
		}
		logger.Info("mesh loaded", "path", path, "vertices", mesh.NumVertices(), "indices", len(mesh.Indices))
	}

	window, err := core.NewWindow(cfg.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	functions, err := opengl.New()
	if err != nil {
		return err
	}
	rc := renderer.NewContext(functions, cfg.Renderer)

	sprites, err := newSpriteLayer(rc, cfg.Batch, img, ctx.Int(spritesFlag.Name))
	if err != nil {
		return err
	}
	defer func() { sprites.Delete() }()

	var meshes *meshLayer
	if mesh != nil {
		if meshes, err = newMeshLayer(rc, mesh); err != nil {
			return err
		}
		defer meshes.Delete()
	}

	fw, fh := window.GetFramebufferSize()
	post, err := newPostProcess(rc, fw, fh)
	if err != nil {
		return err
	}
	defer post.Delete()

	state := rc.State()
	state.Enable(gl.BLEND)
	state.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	sky := newSkyCycle(60)
	stats := newFrameStats(time.Second)
	last := core.Time()
	resize := func() {
		fw, fh := window.GetFramebufferSize()
		state.Viewport(0, 0, fw, fh)
		post.Resize(fw, fh)
		sprites.Resize(float32(window.Width), float32(window.Height))
	}
	resize()

	reloadHeld := false
	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			break
		}
		if window.Resized() {
			resize()
		}
		held := window.IsKeyPressed(core.KeyR)
		if held && !reloadHeld {
			if next, err := reloadSprites(rc, cfg.Batch, &images, ctx.String(textureFlag.Name), sprites.Len()); err != nil {
				logger.Warn("sprite reload failed", "err", err)
			} else {
				sprites.Delete()
				sprites = next
				resize()
			}
		}
		reloadHeld = held
		now := core.Time()
		dt := float32(now - last)
		last = now

		sky.Update(dt)
		post.Begin()
		c := sky.Color()
		state.ClearColor(c[0], c[1], c[2], 1)
		rc.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		sprites.Update(dt)
		sprites.Draw()
		if meshes != nil {
			orbitKeys(window, meshes.camera, dt)
			aspect := float32(window.Width) / float32(max(window.Height, 1))
			meshes.Draw(float32(now), aspect, sky.Color())
		}
		post.End()
		window.SwapBuffers()

		if line, ok := stats.Frame(time.Duration(dt * float32(time.Second))); ok {
			window.SetTitle(fmt.Sprintf("%s | %s | gpu %s | %d sprites", cfg.Window.Title, line, post.GPUTime().Round(time.Microsecond), sprites.Len()))
			logger.Debug("frame stats", "stats", line, "gpu", post.GPUTime(), "sprites", sprites.Len(), "capacity", sprites.Capacity())
		}
	}
	return nil
}

// reloadSprites rebuilds the sprite layer with n fresh sprites. The image
// comes from images, so only the first build fetches it.
func reloadSprites(rc *renderer.Context, opts batch.Options, images *asset.Cache, src string, n int) (*spriteLayer, error) {
	img, err := spriteImage(images, src)
	if err != nil {
		return nil, err
	}
	return newSpriteLayer(rc, opts, img, n)
}

// orbitKeys turns the camera with the arrow keys.
func orbitKeys(window *core.Window, c *orbitCamera, dt float32) {
	const speed = 1.5
	var yaw, pitch float32
	if window.IsKeyPressed(core.KeyLeft) {
		yaw -= speed * dt
	}
	if window.IsKeyPressed(core.KeyRight) {
		yaw += speed * dt
	}
	if window.IsKeyPressed(core.KeyUp) {
		pitch += speed * dt
	}
	if window.IsKeyPressed(core.KeyDown) {
		pitch -= speed * dt
	}
	c.Orbit(yaw, pitch)
}

// ortho maps window pixels, origin top left, to clip space.
func ortho(width, height float32) math.Mat4 {
	return math.Ortho(0, width, height, 0, -1, 1)
}
