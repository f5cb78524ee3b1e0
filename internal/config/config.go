package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"portfolio-cube/internal/motion"
)

// RenderSettings holds render configuration shared by the frame limiter.
type RenderSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = uncapped
}

var globalRenderSettings = &RenderSettings{
	fpsLimit: 0, // default value
}

// GetFPSLimit returns the current frame cap; 0 means uncapped.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// Variant is a named preset of motion constants, lights and content.
type Variant struct {
	Name         string
	Motion       motion.Params
	StudioLights bool // ambient + key light in addition to the rim light
	BaseCube     bool
	ModelSource  string
	EnvSource    string
}

var variants = map[string]Variant{
	"cube": {
		Name:     "cube",
		Motion:   motion.DefaultParams(),
		BaseCube: true,
	},
	"model": {
		Name: "model",
		Motion: motion.Params{
			EasingGain:     0.1,
			RotationStep:   0.01,
			PointerScale:   2,
			OrbitRadius:    7,
			OrbitBaseZ:     -7,
			OrbitAmplitude: 2,
		},
		StudioLights: true,
	},
}

// ErrUnknownVariant is returned for a -variant name with no preset.
var ErrUnknownVariant = errors.New("unknown variant")

// LookupVariant returns the preset with the given name.
func LookupVariant(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownVariant, name, strings.Join(VariantNames(), ", "))
	}
	return v, nil
}

// VariantNames lists the preset names in sorted order.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Config is the fully resolved startup configuration.
type Config struct {
	Variant Variant

	Width  int
	Height int
	Title  string
	VSync  bool
	FPS    int

	Headless bool
	Frames   uint64 // headless: stop after N frames, 0 = run until interrupted

	FetchTimeout time.Duration // remote asset download limit, 0 = none

	Debug bool
}

// Parse resolves a Config from command line arguments and the DEBUG
// environment variable. Explicit flags override the variant preset.
func Parse(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("portfolio-cube", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		variantName  = fs.String("variant", "cube", "Preset: "+strings.Join(VariantNames(), "|"))
		model        = fs.String("model", "", "glTF/GLB model path or URL")
		env          = fs.String("env", "", "Equirectangular environment map path or URL")
		easing       = fs.Float64("easing", -1, "Fraction of the distance to the cursor covered per frame")
		rotationStep = fs.Float64("rotation-step", -1, "Rotation per frame in radians")
		pointerScale = fs.Float64("pointer-scale", -1, "Width of the cursor target range")
		orbitRadius  = fs.Float64("orbit-radius", -1, "Rim light orbit radius")
	)
	cfg := &Config{}
	fs.IntVar(&cfg.Width, "width", 900, "Window width")
	fs.IntVar(&cfg.Height, "height", 600, "Window height")
	fs.StringVar(&cfg.Title, "title", "portfolio-cube", "Window title")
	fs.BoolVar(&cfg.VSync, "vsync", true, "Synchronize presentation with the display refresh")
	fs.IntVar(&cfg.FPS, "fps", 0, "Frame cap (0 = uncapped)")
	fs.BoolVar(&cfg.Headless, "headless", false, "Run without a window")
	fs.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever)")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 0, "Give up on a remote asset download after this long (0 = never)")
	fs.BoolVar(&cfg.Debug, "debug", os.Getenv("DEBUG") != "", "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v, err := LookupVariant(*variantName)
	if err != nil {
		return nil, err
	}
	if *model != "" {
		v.ModelSource = *model
	}
	if *env != "" {
		v.EnvSource = *env
	}
	if *easing >= 0 {
		v.Motion.EasingGain = float32(*easing)
	}
	if *rotationStep >= 0 {
		v.Motion.RotationStep = float32(*rotationStep)
	}
	if *pointerScale >= 0 {
		v.Motion.PointerScale = float32(*pointerScale)
	}
	if *orbitRadius >= 0 {
		v.Motion.OrbitRadius = float32(*orbitRadius)
	}
	cfg.Variant = v

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that would make the animation diverge.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if g := c.Variant.Motion.EasingGain; g <= 0 || g > 1 {
		return fmt.Errorf("easing gain %v outside (0, 1]", g)
	}
	if c.FPS < 0 {
		return fmt.Errorf("invalid fps cap %d", c.FPS)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("invalid fetch timeout %v", c.FetchTimeout)
	}
	return nil
}
