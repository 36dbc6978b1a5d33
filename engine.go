package thicket

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is the engine lifecycle state.
type Stage uint8

const (
	// StageUninitialized is the state before Init.
	StageUninitialized Stage = iota
	// StageRunning means frames are being scheduled.
	StageRunning
	// StageStopped means the next frame idles until Start.
	StageStopped
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageRunning:
		return "running"
	case StageStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Renderer paints the registry once per frame.
type Renderer interface {
	Viewport
	// DrawPass is called exactly once per frame after simulation.
	DrawPass()
}

// Loader tracks asset loading. While any asset is pending the engine skips
// simulation and rendering.
type Loader interface {
	PendingAssetCount() int
	Asset(id string) (*ebiten.Image, bool)
}

// poller is implemented by collaborators that need a turn on the engine
// thread at the start of every frame (AssetLoader, EbitenInput).
type poller interface {
	Poll()
}

// Settings configures Engine.Init.
type Settings struct {
	Config

	// Load is called once from Init to queue asset requests.
	Load func() error
	// Init is called once on the first frame after loading finishes.
	Init func() error
	// Update is called once per simulation step, after entity updates and
	// camera follow.
	Update func() error
	// Draw is called once per render pass after built-in drawing. Renderers
	// that build their own pass (see NewEbitenRenderer) pick it up from here.
	Draw func(screen *ebiten.Image)

	// Renderer is required. Input, Loader, Scheduler, Clock and Logger
	// default to an empty InputState, no loader, a FrameScheduler, the
	// system clock and a stderr logger.
	Renderer  Renderer
	Input     Input
	Loader    Loader
	Scheduler Scheduler
	Clock     Clock
	Logger    *log.Logger
	// Game and Camera may be supplied when entities were built before Init.
	Game   *Game
	Camera *Camera
}

// Engine runs the fixed-timestep loop: every frame it runs zero or more
// simulation steps of 1/TPS seconds, bounded by MaxUpdatesPerFrame, then
// renders exactly once.
type Engine struct {
	stage    Stage
	stopped  bool
	shutdown bool
	err      error

	settings  Settings
	game      *Game
	camera    *Camera
	renderer  Renderer
	input     Input
	loader    Loader
	scheduler Scheduler
	clock     Clock
	logger    *log.Logger

	idealTicksPerSecond int
	minFrameTime        float64 // ms
	accumulatedTime     float64 // ms
	lastUpdateTime      time.Time
	maxUpdatesPerFrame  int
	frameSkip           bool
	framesToSkip        int

	hostInitDone  bool
	loading       bool
	frameCount    int
	tickCount     int
	totalTicks    uint64
	fps, tps      int
	cancelSampler func()
	stats         frameStats
}

// NewEngine creates an uninitialized engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Init wires the collaborators, calls the host Load callback, and schedules
// the first frame and the once-per-second performance sampler.
func (e *Engine) Init(s Settings) error {
	if e.stage != StageUninitialized {
		return ErrAlreadyInitialized
	}
	if s.Renderer == nil {
		return fmt.Errorf("init: %w", ErrNoRenderer)
	}
	s.Config = s.Config.withDefaults()
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	if s.Logger == nil {
		s.Logger = NewLogger(nil, s.LogLevel)
	}
	if s.Clock == nil {
		s.Clock = SystemClock{}
	}
	if s.Scheduler == nil {
		s.Scheduler = NewFrameScheduler(s.Clock)
	}
	if s.Input == nil {
		s.Input = NewInputState()
	}
	if s.Game == nil {
		s.Game = NewGame()
	}
	if s.Camera == nil {
		s.Camera = NewCamera(s.Game, s.Renderer)
	}

	e.settings = s
	e.game = s.Game
	e.camera = s.Camera
	e.renderer = s.Renderer
	e.input = s.Input
	e.loader = s.Loader
	e.scheduler = s.Scheduler
	e.clock = s.Clock
	e.logger = s.Logger

	e.idealTicksPerSecond = s.TPS
	e.minFrameTime = 1000 / float64(s.TPS)
	e.maxUpdatesPerFrame = s.MaxUpdatesPerFrame
	e.frameSkip = s.FrameSkip
	e.framesToSkip = s.FramesToSkip
	e.accumulatedTime = 0
	e.lastUpdateTime = e.clock.Now()

	if b, ok := e.renderer.(interface{ bind(*Engine) }); ok {
		b.bind(e)
	}

	e.logger.Info("engine init", "tps", s.TPS, "maxUpdatesPerFrame", s.MaxUpdatesPerFrame,
		"frameSkip", s.FrameSkip, "framesToSkip", s.FramesToSkip)

	if s.Load != nil {
		if err := s.Load(); err != nil {
			return fmt.Errorf("init: load: %w", err)
		}
	}

	e.stage = StageRunning
	e.cancelSampler = e.scheduler.Every(time.Second, e.sample)
	e.scheduler.RequestFrame(e.frame)
	return nil
}

// Stop idles the loop from the next frame on. It takes effect at the frame
// boundary, never mid-step.
func (e *Engine) Stop() {
	if e.stage != StageRunning {
		return
	}
	e.stopped = true
	e.stage = StageStopped
	e.logger.Info("engine stopped", "ticks", e.totalTicks)
}

// Start resumes a stopped engine. Time spent stopped is discarded so there
// is no catch-up burst. No-op unless stopped.
func (e *Engine) Start() {
	if e.stage != StageStopped || e.shutdown {
		return
	}
	e.stopped = false
	e.stage = StageRunning
	e.lastUpdateTime = e.clock.Now()
	e.accumulatedTime = 0
	e.logger.Info("engine started")
	e.scheduler.RequestFrame(e.frame)
}

// Shutdown stops the loop for good: the sampler is cancelled and no frame
// is requested again. Start will not resume it.
func (e *Engine) Shutdown() {
	e.Stop()
	if e.cancelSampler != nil {
		e.cancelSampler()
		e.cancelSampler = nil
	}
	e.shutdown = true
}

// frame is the per-display-frame driver.
func (e *Engine) frame() error {
	if e.stopped {
		return nil
	}

	if p, ok := e.loader.(poller); ok {
		p.Poll()
	}
	if pending := e.pendingAssets(); pending > 0 {
		if !e.loading {
			e.loading = true
			e.logger.Debug("waiting for assets", "pending", pending)
		}
		e.scheduler.RequestFrame(e.frame)
		return nil
	}
	e.loading = false

	if p, ok := e.input.(poller); ok {
		p.Poll()
	}

	now := e.clock.Now()
	if !e.hostInitDone {
		e.hostInitDone = true
		if e.settings.Init != nil {
			if err := e.settings.Init(); err != nil {
				return e.fail(fmt.Errorf("host init: %w", err))
			}
		}
		// Loading time is not simulated.
		e.lastUpdateTime = now
	}

	if err := e.advance(now); err != nil {
		return e.fail(err)
	}

	t0 := time.Now()
	e.renderer.DrawPass()
	e.stats.drawTime += time.Since(t0)
	e.frameCount++

	if !e.stopped {
		e.scheduler.RequestFrame(e.frame)
	}
	return nil
}

// stepEpsilon absorbs the drift of repeatedly subtracting a 1000/TPS step
// that is not exactly representable.
const stepEpsilon = 1e-9 // ms

// advance runs the bounded catch-up loop for the time elapsed up to now and
// applies the frame-skip policy to whatever is left.
func (e *Engine) advance(now time.Time) error {
	delta := millis(now.Sub(e.lastUpdateTime))
	e.lastUpdateTime = now
	e.accumulatedTime += delta

	t0 := time.Now()
	updates := 0
	for e.accumulatedTime+stepEpsilon >= e.minFrameTime && updates < e.maxUpdatesPerFrame {
		if err := e.step(); err != nil {
			return err
		}
		updates++
		e.tickCount++
		e.totalTicks++
		e.accumulatedTime -= e.minFrameTime
	}
	if e.accumulatedTime < 0 {
		e.accumulatedTime = 0
	}
	e.stats.stepTime += time.Since(t0)
	if updates == e.maxUpdatesPerFrame {
		e.stats.saturated++
	}

	if e.frameSkip && e.accumulatedTime > e.minFrameTime*float64(e.framesToSkip) {
		e.stats.skipped += e.accumulatedTime
		e.accumulatedTime = 0
	} else if ceiling := 5 * e.minFrameTime; e.accumulatedTime > ceiling {
		e.stats.capped += e.accumulatedTime - ceiling
		e.accumulatedTime = ceiling
	}
	return nil
}

// step runs one simulation step: particles, sprites, camera, host update.
func (e *Engine) step() error {
	sprites, particles := e.game.snapshot()
	for _, p := range particles {
		if fn := p.Base().OnUpdate; fn != nil {
			if err := fn(); err != nil {
				return fmt.Errorf("update %s: %w", p.Base().ID(), err)
			}
		}
	}
	for _, s := range sprites {
		if fn := s.Base().OnUpdate; fn != nil {
			if err := fn(); err != nil {
				return fmt.Errorf("update %s: %w", s.Base().ID(), err)
			}
		}
	}

	e.camera.update(float32(e.minFrameTime / 1000))

	if e.settings.Update != nil {
		if err := e.settings.Update(); err != nil {
			return fmt.Errorf("host update: %w", err)
		}
	}
	return nil
}

// fail stops the loop on a callback error and records it. ebiten.Termination
// is a normal quit and is not logged as an error.
func (e *Engine) fail(err error) error {
	e.err = err
	e.stopped = true
	e.stage = StageStopped
	if errors.Is(err, ebiten.Termination) {
		e.logger.Info("engine quit", "ticks", e.totalTicks)
	} else {
		e.logger.Error("engine halted", "err", err)
	}
	return err
}

// sample snapshots and resets the per-second counters.
func (e *Engine) sample() {
	e.fps, e.tps = e.frameCount, e.tickCount
	e.frameCount, e.tickCount = 0, 0
	if e.stage == StageRunning {
		e.logger.Debug("perf", "fps", e.fps, "tps", e.tps, "sprites", len(e.game.sprites), "particles", len(e.game.particles))
		e.logStats()
	}
}

func (e *Engine) pendingAssets() int {
	if e.loader == nil {
		return 0
	}
	return e.loader.PendingAssetCount()
}

// --- Accessors ---

// Stage returns the lifecycle state.
func (e *Engine) Stage() Stage { return e.stage }

// Err returns the error that halted the loop, if any.
func (e *Engine) Err() error { return e.err }

// FPS returns the frames rendered during the last full second.
func (e *Engine) FPS() int { return e.fps }

// TPS returns the simulation steps run during the last full second.
func (e *Engine) TPS() int { return e.tps }

// Ticks returns the total number of simulation steps run.
func (e *Engine) Ticks() uint64 { return e.totalTicks }

// IdealTPS returns the configured simulation rate.
func (e *Engine) IdealTPS() int { return e.idealTicksPerSecond }

// AccumulatedTime returns unsimulated time carried to the next frame.
func (e *Engine) AccumulatedTime() time.Duration {
	return time.Duration(e.accumulatedTime * float64(time.Millisecond))
}

// Game returns the entity registry.
func (e *Engine) Game() *Game { return e.game }

// Camera returns the camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Input returns the input source.
func (e *Engine) Input() Input { return e.input }

// Loader returns the asset loader, or nil.
func (e *Engine) Loader() Loader { return e.loader }

// Assets returns the loader as an *AssetLoader, or nil when the loader is
// another implementation.
func (e *Engine) Assets() *AssetLoader {
	l, _ := e.loader.(*AssetLoader)
	return l
}

// Renderer returns the renderer.
func (e *Engine) Renderer() Renderer { return e.renderer }

// Logger returns the engine logger.
func (e *Engine) Logger() *log.Logger { return e.logger }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.settings.Config }
