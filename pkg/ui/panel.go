package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything a panel can lay out in its single column.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
}

// Panel stacks widgets vertically with their labels, on a translucent
// background. Layout is recomputed every frame, so widget positions follow
// the panel.
type Panel struct {
	Title       string
	X, Y        float64
	Width       float64
	widgets     []Widget
	bgColor     color.RGBA
	borderColor color.RGBA
}

// NewPanel creates an empty panel anchored at (x, y).
func NewPanel(title string, x, y, width float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		bgColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		borderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSlider appends a slider widget and returns it for direct value access.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, 0, p.Width-20, label, min, max, value)
	p.widgets = append(p.widgets, s)
	return s
}

// AddCheckbox appends a checkbox widget and returns it.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, 0, label, value)
	p.widgets = append(p.widgets, c)
	return c
}

// Update repositions widgets and forwards input handling to each of them.
func (p *Panel) Update() {
	p.layout()
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the background, labels and every widget.
func (p *Panel) Draw(screen *ebiten.Image) {
	p.layout()

	h := p.contentHeight()
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), p.bgColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), 2, p.borderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	y := p.Y + 28
	for _, w := range p.widgets {
		switch widget := w.(type) {
		case *Slider:
			ebitenutil.DebugPrintAt(screen,
				fmt.Sprintf("%s: %.3f", widget.Label, widget.Value),
				int(p.X+10), int(y))
		case *Checkbox:
			ebitenutil.DebugPrintAt(screen, widget.Label, int(widget.X+widget.Size+8), int(widget.Y))
		}
		w.Draw(screen)
		y += w.Height()
	}
}

// layout assigns each widget its y position for this frame.
func (p *Panel) layout() {
	y := p.Y + 28
	for _, w := range p.widgets {
		switch widget := w.(type) {
		case *Slider:
			widget.Y = y + 16 // below its label line
		case *Checkbox:
			widget.Y = y
		}
		y += w.Height()
	}
}

func (p *Panel) contentHeight() float64 {
	h := 36.0
	for _, w := range p.widgets {
		h += w.Height()
	}
	return h
}
