// Package game hosts the panning view on ebiten. It measures the canvas,
// forwards raw input to the listener state machine, folds gain results into
// the store and draws everything; it does no coordinate math of its own.
package game

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/surround-panner/internal/config"
	"github.com/iburimskiy/surround-panner/internal/gain"
	"github.com/iburimskiy/surround-panner/internal/listener"
	"github.com/iburimskiy/surround-panner/internal/panel"
)

// Notifier tells the user about a gain service outage outside the window.
type Notifier interface {
	Notify(msg string)
}

type Game struct {
	cfg config.Config
	log zerolog.Logger

	machine  *listener.Machine
	dispatch *gain.Dispatcher
	store    *gain.Store
	results  <-chan gain.Result
	notifier Notifier
	notified bool

	// layout
	width, height int
	layout        panel.Layout
	trail         *panel.Trail

	// input edge detection
	lastCursorX, lastCursorY int

	// viz
	time      float64
	rotation  float64
	face      *text.GoTextFace
	smallFace *text.GoTextFace
}

// New wires the gain client, dispatcher, store and listener state machine
// for cfg.
func New(cfg config.Config, log zerolog.Logger, notifier Notifier) (*Game, error) {
	metrics, err := gain.NewMetrics(nil)
	if err != nil {
		return nil, fmt.Errorf("creating gain metrics: %w", err)
	}

	client := gain.NewClient(cfg.Gain.ServiceURL, cfg.Gain.Timeout, log)
	dispatch := gain.NewDispatcher(client, log,
		gain.WithCancelSuperseded(cfg.Gain.CancelSuperseded),
		gain.WithMetrics(metrics),
	)

	initial := listener.Unlocked
	if cfg.Listener.StartLocked {
		initial = listener.Locked
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		dispatch.Close()
		return nil, fmt.Errorf("loading font: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		log:       log.With().Str("component", "view").Logger(),
		machine:   listener.New(dispatch, initial, log),
		dispatch:  dispatch,
		store:     gain.NewStore(log, metrics),
		results:   dispatch.Results(),
		notifier:  notifier,
		trail:     panel.NewTrail(config.TrailSize),
		face:      &text.GoTextFace{Source: src, Size: config.PanelFontSize},
		smallFace: &text.GoTextFace{Source: src, Size: config.PanelFontSize - 3},
	}
	g.log.Info().
		Str("service", cfg.Gain.ServiceURL).
		Stringer("lock", initial).
		Msg("Panner ready")
	return g, nil
}

func (g *Game) Update() error {
	g.drainResults()
	g.measure()

	if quit := g.handleInput(); quit {
		return ebiten.Termination
	}

	if pos, ok := g.machine.Position(); ok {
		g.trail.Push(pos)
	}

	g.time += 1.0 / 60.0
	g.rotation += config.RotationSpeed
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops in-flight gain queries. Call it once the window is gone.
func (g *Game) Close() {
	g.dispatch.Close()
	g.log.Debug().Uint64("lastSeq", g.store.LastSeq()).Msg("View closed")
}

// measure re-anchors the listener when the window size changes. The first
// usable measurement mounts the view by centering the listener.
func (g *Game) measure() {
	if g.width == 0 || g.height == 0 {
		return
	}
	l := panel.Measure(g.width, g.height, g.cfg.Canvas.Margin, g.cfg.Canvas.PanelHeight)
	g.layout = l
	if !l.Ready() {
		return
	}

	old := g.machine.Canvas()
	if old.Radius == l.Radius {
		return
	}
	g.machine.Resize(l.Radius)
	if !old.Ready() {
		g.machine.Recenter()
		return
	}
	g.trail.Rescale(old.Radius, l.Radius)
}

func (g *Game) drainResults() {
	for {
		select {
		case r, ok := <-g.results:
			if !ok {
				g.results = nil
				return
			}
			g.apply(r)
		default:
			return
		}
	}
}

func (g *Game) apply(r gain.Result) {
	switch g.store.Apply(r) {
	case gain.Applied:
		g.notified = false
	case gain.Failed:
		if g.notifier != nil && !g.notified {
			g.notified = true
			g.notifier.Notify("Gain service unavailable, showing last known gains: " + r.Err.Error())
		}
	}
}
