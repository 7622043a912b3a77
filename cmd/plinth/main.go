// plinth - 3D mesh viewer
// View GLB and glTF files in a terminal, an OpenGL window, or capture a
// single frame to PNG.
//
// Controls:
//
//	Mouse drag  - Rotate (trackball, or two axis with a fixed up vector)
//	Scroll +/-  - Zoom
//	F / L / T   - Toggle faces / wireframe / texture
//	O           - Toggle overlays (bounding box and corners)
//	V / N       - Toggle vertex / face id labels
//	U           - Toggle fixed up rotation
//	P           - Toggle orthographic projection
//	R           - Reset view
//	Q / Esc     - Quit
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
	"github.com/taigrr/plinth/pkg/gldevice"
	"github.com/taigrr/plinth/pkg/math3d"
	"github.com/taigrr/plinth/pkg/models"
	"github.com/taigrr/plinth/pkg/render"
	"github.com/taigrr/plinth/pkg/viewer"
)

var (
	capturePath = flag.String("capture", "", "Render one frame off-screen and write it to this PNG file")
	width       = flag.Int("width", 800, "Capture or window width in pixels")
	height      = flag.Int("height", 600, "Capture or window height in pixels")
	configPath  = flag.String("config", "", "Path to a TOML viewer config")
	printConfig = flag.Bool("print-config", false, "Print the default TOML config and exit")
	backend     = flag.String("backend", "terminal", "Device: terminal (software) or gl")
	ortho       = flag.Bool("ortho", false, "Orthographic projection")
	fixedUp     = flag.Bool("fixed-up", false, "Two axis rotation with a fixed up vector")
	overlay     = flag.Bool("overlay", false, "Show the bounding box overlay")
	targetFPS   = flag.Int("fps", 0, "Target FPS (0 uses animation_max_fps from the config)")
	verbose     = flag.Bool("v", false, "Debug logging")
	logPath     = flag.String("log", "", "Write logs to this file instead of stderr")
)

// The GL context belongs to the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "plinth - 3D mesh viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: plinth [options] <model.glb|model.gltf>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n%s", keyHelp)
	}
	flag.Parse()

	if *printConfig {
		b, err := viewer.DefaultConfig().Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(b)
		return
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	out, closeLog := os.Stderr, func() {}
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		out, closeLog = f, func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closeLog, nil
}

// scene is everything loaded from the command line.
type scene struct {
	name string
	cfg  viewer.Config
	data *viewer.Data
}

func loadScene(modelPath string, log *slog.Logger) (*scene, error) {
	cfg := viewer.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = viewer.LoadConfig(*configPath); err != nil {
			return nil, err
		}
	}
	if *ortho {
		cfg.Orthographic = true
	}
	if *fixedUp {
		cfg.Rotation = viewer.RotationTwoAxisValuatorFixedUp.String()
	}
	if *overlay {
		cfg.Data.ShowOverlay = true
	}

	switch ext := strings.ToLower(filepath.Ext(modelPath)); ext {
	case ".glb", ".gltf":
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
	mesh, err := models.LoadGLB(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	log.Info("loaded model", "path", modelPath, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	data := viewer.NewData(mesh)
	cfg.Data.Apply(data)
	addBoundsOverlay(data)
	return &scene{name: filepath.Base(modelPath), cfg: cfg, data: data}, nil
}

// addBoundsOverlay outlines the mesh bounding box and marks its corners.
func addBoundsOverlay(d *viewer.Data) {
	if len(d.Mesh.Vertices) == 0 {
		return
	}
	lo, hi := d.Mesh.Bounds.Min, d.Mesh.Bounds.Max
	corner := func(i int) math3d.Vec3 {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		return c
	}
	red := mgl32.Vec4{1, 0, 0, 1}
	for i := range 8 {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				d.AddLines(viewer.Line{From: corner(i), To: corner(i | bit), Color: red})
			}
		}
		d.AddPoints(viewer.Point{Pos: corner(i), Color: mgl32.Vec4{0, 0, 1, 1}})
	}
	d.AddLabel(hi, fmt.Sprintf("%.3g x %.3g x %.3g", hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z))
}

func newCore(sc *scene, log *slog.Logger, text gfx.TextRenderer) *viewer.Core {
	core := viewer.New(viewer.WithLogger(log), viewer.WithTextRenderer(text))
	core.ApplyConfig(sc.cfg)
	core.AlignCameraCenterData(sc.data)
	return core
}

// checkSize rejects capture and window sizes no device can allocate.
func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid size %dx%d: width and height must be positive", w, h)
	}
	return nil
}

func run(modelPath string) error {
	if err := checkSize(*width, *height); err != nil {
		return err
	}
	log, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := loadScene(modelPath, log)
	if err != nil {
		return err
	}

	switch {
	case *capturePath != "":
		return capture(sc, log)
	case *backend == "gl":
		return runWindow(sc, log)
	case *backend == "terminal":
		return runTerminal(sc, log)
	}
	return fmt.Errorf("unknown backend %q", *backend)
}

// capture renders one frame off-screen and writes it as PNG.
func capture(sc *scene, log *slog.Logger) error {
	var (
		dev  gfx.Device
		text gfx.TextRenderer = gfx.NopText{}
	)
	switch *backend {
	case "gl":
		gdev, terminate, err := gldevice.NewHeadless(*width, *height)
		if err != nil {
			return err
		}
		defer terminate()
		dev = gdev
	default:
		rdev := render.NewDevice(*width, *height)
		tr, err := render.NewTextRenderer(rdev, 12)
		if err != nil {
			return err
		}
		defer tr.Close()
		dev, text = rdev, tr
	}

	core := newCore(sc, log, text)
	state := viewer.NewMeshState(dev)
	defer state.Free()

	R, G, B, A := core.Capture(dev, []*viewer.Data{sc.data}, []*viewer.MeshState{state}, true, *width, *height)

	f, err := os.Create(*capturePath)
	if err != nil {
		return fmt.Errorf("create capture: %w", err)
	}
	if err := png.Encode(f, viewer.Image(R, G, B, A)); err != nil {
		f.Close()
		return fmt.Errorf("encode capture: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write capture: %w", err)
	}
	log.Info("wrote capture", "path", *capturePath, "width", *width, "height", *height)
	return nil
}

func frameRate(cfg viewer.Config) int {
	if *targetFPS > 0 {
		return *targetFPS
	}
	return max(int(cfg.AnimationMaxFPS), 1)
}
