// Package viewer bootstraps the scene from the configuration, resolves
// asynchronous asset loads on the frame thread and runs one frame per tick.
package viewer

import (
	"context"
	"image"
	"log"
	"net/http"
	"time"

	"portfolio-cube/internal/assets"
	"portfolio-cube/internal/config"
	"portfolio-cube/internal/frameloop"
	"portfolio-cube/internal/profiling"
	"portfolio-cube/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// slowFrame is the processing time above which a frame is reported
	// while profiling is on.
	slowFrame = 16 * time.Millisecond

	// fitSize is the edge length imported models are scaled to, matching the base cube.
	fitSize = 2

	studioEnvWidth  = 1024
	studioEnvHeight = 512
)

// Drawer renders the scene. The GL renderer implements it.
type Drawer interface {
	Render(s *scene.Scene, elapsed time.Duration)
}

type Option func(*Viewer)

// WithLoader uses l instead of a loader owned by the viewer.
func WithLoader(l *assets.Loader) Option {
	return func(v *Viewer) { v.loader = l }
}

// WithLogger redirects the viewer's log output.
func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) { v.logger = l }
}

// Viewer is the running application state around one scene.
type Viewer struct {
	Scene *scene.Scene

	cfg        *config.Config
	logger     *log.Logger
	loader     *assets.Loader
	ownsLoader bool

	model *assets.Pending[*assets.Model]
	env   *assets.Pending[*image.RGBA]

	failures  int
	profiling bool

	fpsFrames  int
	lastFPSLog time.Time
}

// Bootstrap builds the scene for cfg and starts the configured asset loads.
func Bootstrap(ctx context.Context, cfg *config.Config, opts ...Option) *Viewer {
	v := &Viewer{cfg: cfg, logger: log.Default()}
	for _, opt := range opts {
		opt(v)
	}

	variant := cfg.Variant
	rig := scene.RimOnlyRig()
	if variant.StudioLights {
		rig = scene.StudioRig()
	}

	// The cube stands in while a model loads and stays if it fails.
	var base *scene.Geometry
	switch {
	case variant.BaseCube:
		base = scene.NewBox(2, 2, 2)
	case variant.ModelSource == "":
		v.logger.Printf("Variant %q has no model source; showing the base cube", variant.Name)
		base = scene.NewBox(2, 2, 2)
	}

	v.Scene = scene.New(scene.Options{
		Motion:       variant.Motion,
		Background:   mgl32.Vec3{0, 0, 0},
		Rig:          rig,
		Material:     scene.IridescentMaterial(),
		BaseGeometry: base,
		Width:        cfg.Width,
		Height:       cfg.Height,
	})
	v.Scene.SetEnvironment(assets.StudioEnvironment(studioEnvWidth, studioEnvHeight))

	if variant.ModelSource == "" && variant.EnvSource == "" {
		return v
	}

	if v.loader == nil {
		v.loader = assets.NewLoader(v.loaderOptions()...)
		v.ownsLoader = true
	}
	if variant.ModelSource != "" {
		v.model = v.loader.LoadModel(ctx, variant.ModelSource)
	}
	if variant.EnvSource != "" {
		v.env = v.loader.LoadEnvironment(ctx, variant.EnvSource)
	}
	return v
}

// Poll consumes finished loads. A failure is logged once and the scene
// keeps what it already has.
func (v *Viewer) Poll() {
	if v.model != nil {
		if m, lerr, ok := v.model.Poll(); ok {
			v.model = nil
			if lerr != nil {
				v.reportFailure(lerr)
			} else {
				v.attachModel(m)
			}
		}
	}
	if v.env != nil {
		if img, lerr, ok := v.env.Poll(); ok {
			v.env = nil
			if lerr != nil {
				v.reportFailure(lerr)
			} else {
				v.Scene.SetEnvironment(img)
				v.logger.Printf("Environment map ready: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
			}
		}
	}
}

// Frame runs one tick: resolve loads, advance the scene, draw.
// d may be nil when running headless.
func (v *Viewer) Frame(f frameloop.Frame, d Drawer) {
	profiling.ResetFrame()
	start := time.Now()

	func() {
		defer profiling.Track("assets.Poll")()
		v.Poll()
	}()
	func() {
		defer profiling.Track("scene.Update")()
		v.Scene.Update(f.Elapsed)
	}()
	if d != nil {
		d.Render(v.Scene, f.Elapsed)
	}

	if v.profiling {
		if processing := time.Since(start); processing > slowFrame {
			v.logger.Printf("Slow frame: %v. Top tasks: %s", processing, profiling.TopN(5))
		}
	}
	if v.cfg.Debug {
		v.logFPS(start)
	}
}

// Loading reports whether any load is still outstanding.
func (v *Viewer) Loading() bool {
	return v.model != nil || v.env != nil
}

// Failures returns the number of loads that failed.
func (v *Viewer) Failures() int { return v.failures }

// Profiling reports whether slow-frame logging is on.
func (v *Viewer) Profiling() bool { return v.profiling }

// Close stops the loader if the viewer created it.
func (v *Viewer) Close() {
	if v.ownsLoader && v.loader != nil {
		v.loader.Close()
	}
}

// loaderOptions sizes the pool to the loads the variant starts.
func (v *Viewer) loaderOptions() []assets.LoaderOption {
	loads := 0
	if v.cfg.Variant.ModelSource != "" {
		loads++
	}
	if v.cfg.Variant.EnvSource != "" {
		loads++
	}
	opts := []assets.LoaderOption{
		assets.WithWorkers(max(1, loads)),
		assets.WithHTTPClient(&http.Client{Timeout: v.cfg.FetchTimeout}),
	}
	if v.cfg.Debug {
		opts = append(opts, assets.WithProgress(v.logProgress()))
	}
	return opts
}

func (v *Viewer) attachModel(m *assets.Model) {
	local := fitTransform(m.Bounds())
	meshes := make([]*scene.Mesh, 0, len(m.Parts))
	for _, p := range m.Parts {
		meshes = append(meshes, &scene.Mesh{Name: p.Name, Geometry: p.Geometry, Local: local})
	}
	if v.Scene.RemoveMesh(scene.BaseMeshName) {
		v.logger.Println("Model replaces the base cube")
	}
	v.Scene.AttachMeshes(meshes)
	v.logger.Printf("Model ready: %s (%d meshes)", m.Source, len(meshes))
}

func (v *Viewer) reportFailure(err *assets.LoadError) {
	v.failures++
	v.logger.Printf("Asset load failed: %v", err)
}

func (v *Viewer) logProgress() assets.ProgressFunc {
	var last time.Time
	return func(source string, read, total int64) {
		now := time.Now()
		if now.Sub(last) < 250*time.Millisecond && read != total {
			return
		}
		last = now
		if total > 0 {
			v.logger.Printf("Loading %s: %.0f%%", source, float64(read)/float64(total)*100)
		} else {
			v.logger.Printf("Loading %s: %d bytes", source, read)
		}
	}
}

func (v *Viewer) logFPS(now time.Time) {
	if v.lastFPSLog.IsZero() {
		v.lastFPSLog = now
	}
	v.fpsFrames++
	if now.Sub(v.lastFPSLog) >= time.Second {
		pose := v.Scene.Pose()
		v.logger.Printf("FPS: %d | pos %.3f,%.3f | rot %.3f", v.fpsFrames, pose.Position.X(), pose.Position.Y(), pose.Rotation.X())
		v.fpsFrames = 0
		v.lastFPSLog = now
	}
}

// fitTransform centres the bounds on the origin and scales the largest
// dimension to fitSize.
func fitTransform(lo, hi mgl32.Vec3) mgl32.Mat4 {
	size := hi.Sub(lo)
	largest := max(size.X(), size.Y(), size.Z())
	scale := float32(1)
	if largest > 0 {
		scale = fitSize / largest
	}
	center := lo.Add(hi).Mul(0.5)
	return mgl32.Scale3D(scale, scale, scale).Mul4(mgl32.Translate3D(-center.X(), -center.Y(), -center.Z()))
}
