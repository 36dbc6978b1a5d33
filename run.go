package thicket

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenHost adapts an Engine to ebiten.Game. ebiten's Update is the display
// frame callback: TPS is synced to FPS and each Update pumps the scheduler
// once, so the engine's own accumulator decides how many steps run.
type ebitenHost struct {
	engine    *Engine
	scheduler *FrameScheduler
	painter   interface{ Paint(*ebiten.Image) }
	layouter  interface{ Layout(int, int) (int, int) }
}

// Update implements ebiten.Game.
func (h *ebitenHost) Update() error {
	return h.scheduler.Pump()
}

// Draw implements ebiten.Game.
func (h *ebitenHost) Draw(screen *ebiten.Image) {
	if h.painter != nil {
		h.painter.Paint(screen)
	}
}

// Layout implements ebiten.Game.
func (h *ebitenHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.layouter != nil {
		return h.layouter.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run initializes e with s, opens a window and blocks until the window
// closes or a host callback fails. Nil collaborators default to the
// Ebitengine implementations: EbitenRenderer and EbitenInput. A supplied
// Scheduler must be a *FrameScheduler.
//
//	e := thicket.NewEngine()
//	err := thicket.Run(e, thicket.Settings{
//		Config: cfg,
//		Init:   func() error { return buildLevel(e.Game()) },
//		Update: func() error { return nil },
//	})
func Run(e *Engine, s Settings) error {
	s.Config = s.Config.withDefaults()
	if s.Renderer == nil {
		r := NewEbitenRenderer(s.Width, s.Height, s.ViewportScale)
		r.ShowFPS = s.ShowFPS
		s.Renderer = r
	}
	if s.Input == nil {
		s.Input = NewEbitenInput()
	}
	if s.Clock == nil {
		s.Clock = SystemClock{}
	}
	if s.Logger == nil {
		s.Logger = NewLogger(nil, s.LogLevel)
	}
	if s.Loader == nil {
		l := NewAssetLoader(s.AssetDir, s.Logger)
		defer l.Close()
		if s.WatchAssets {
			if err := l.Watch(s.AssetDir); err != nil {
				s.Logger.Warn("asset hot reload disabled", "err", err)
			}
		}
		s.Loader = l
	}
	sched, ok := s.Scheduler.(*FrameScheduler)
	if s.Scheduler == nil {
		sched, ok = NewFrameScheduler(s.Clock), true
		s.Scheduler = sched
	}
	if !ok {
		return errors.New("thicket: Run needs a *FrameScheduler")
	}

	if err := e.Init(s); err != nil {
		return err
	}

	host := &ebitenHost{engine: e, scheduler: sched}
	host.painter, _ = s.Renderer.(interface{ Paint(*ebiten.Image) })
	host.layouter, _ = s.Renderer.(interface{ Layout(int, int) (int, int) })

	ebiten.SetWindowTitle(s.Title)
	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(host)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
