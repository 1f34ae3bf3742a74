package simulation

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/ui"
)

// whiteImage is the 1-color source texture for batched triangle drawing.
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// Game drives the simulation: one engine step per ebiten update, then draws
// every agent from its position and heading. The engine itself knows nothing
// about any of this.
type Game struct {
	cfg     *flock.Config
	flock   flock.Flock
	engine  *flock.Engine
	palette []flock.Order
	active  int
	log     *zap.Logger

	panel       *ui.Panel
	wSeparation *ui.Slider
	wAlignment  *ui.Slider
	wCohesion   *ui.Slider
	wViewRadius *ui.Slider
	wOmniFOV    *ui.Checkbox
	showPanel   bool

	// Per-second stats
	ticks     int
	lastStats time.Time

	// Rolling averages in milliseconds
	updateAvg float64
	drawAvg   float64
}

// NewGame wires a flock, an engine and the tuning panel together.
func NewGame(cfg *flock.Config, f flock.Flock, log *zap.Logger) *Game {
	panel := ui.NewPanel("Tuning", 10, 10, 220)
	g := &Game{
		cfg:         cfg,
		flock:       f,
		engine:      flock.NewEngine(),
		palette:     flock.Palette(),
		log:         log,
		panel:       panel,
		wSeparation: panel.AddSlider("Separation", 0, 0.2, cfg.SeparationWeight),
		wAlignment:  panel.AddSlider("Alignment", 0, 0.2, cfg.AlignmentWeight),
		wCohesion:   panel.AddSlider("Cohesion", 0, 0.05, cfg.CohesionWeight),
		wViewRadius: panel.AddSlider("View radius", 10, 150, cfg.ViewRadius),
		wOmniFOV:    panel.AddCheckbox("Omnidirectional", cfg.Omnidirectional()),
		showPanel:   true,
		lastStats:   time.Now(),
	}
	return g
}

// ActiveOrder returns the rule order currently driving the engine.
func (g *Game) ActiveOrder() flock.Order {
	return g.palette[g.active]
}

// currentConfig folds the live tuning widgets into a fresh config value.
// The base config is never mutated.
func (g *Game) currentConfig() flock.Config {
	cfg := *g.cfg
	cfg.SeparationWeight = g.wSeparation.Value
	cfg.AlignmentWeight = g.wAlignment.Value
	cfg.CohesionWeight = g.wCohesion.Value
	cfg.ViewRadius = g.wViewRadius.Value
	if g.wOmniFOV.Value {
		cfg.FOVDegrees = flock.OmniFOV
	} else if g.cfg.Omnidirectional() {
		// Unchecking on a config that started omnidirectional needs a
		// concrete cone; fall back to the default 270 degrees.
		cfg.FOVDegrees = 270
	} else {
		cfg.FOVDegrees = g.cfg.FOVDegrees
	}
	return cfg
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// Rule-order palette hotkeys. Swapping never resets the flock.
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(key) && i != g.active {
			g.active = i
			g.log.Info("rule order swapped", zap.Stringer("order", g.ActiveOrder()))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showPanel = !g.showPanel
	}

	if g.showPanel {
		g.panel.Update()
	}

	cfg := g.currentConfig()
	if err := g.engine.Step(g.flock, g.ActiveOrder(), &cfg); err != nil {
		return fmt.Errorf("simulation step failed: %w", err)
	}
	g.ticks++

	if time.Since(g.lastStats) >= time.Second {
		g.log.Info("simulation stats",
			zap.Int("tps", g.ticks),
			zap.Int("agents", len(g.flock)),
			zap.Stringer("order", g.ActiveOrder()),
			zap.Float64("updateMs", g.updateAvg),
			zap.Float64("drawMs", g.drawAvg),
		)
		g.ticks = 0
		g.lastStats = time.Now()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	for _, a := range g.flock {
		drawAgent(screen, a)
	}

	if g.showPanel {
		g.panel.Draw(screen)
	}

	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nOrder [1-3]: %s\nUpdate: %.2fms  Draw: %.2fms\nTab toggles the panel",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.ActiveOrder(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-280, 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}

// drawAgent renders one agent as a triangle pointing along its heading:
// tip 10 ahead of the position, base corners 6 away at ±120 degrees.
func drawAgent(screen *ebiten.Image, a *flock.Agent) {
	angle := a.Heading()
	tip := a.Pos.Add(a.Vel.Normalize().Mul(10))
	leftX := a.Pos.X + math.Cos(angle+2*math.Pi/3)*6
	leftY := a.Pos.Y + math.Sin(angle+2*math.Pi/3)*6
	rightX := a.Pos.X + math.Cos(angle-2*math.Pi/3)*6
	rightY := a.Pos.Y + math.Sin(angle-2*math.Pi/3)*6

	vertices := []ebiten.Vertex{
		{DstX: float32(tip.X), DstY: float32(tip.Y), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}
