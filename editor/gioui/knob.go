package gioui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
	"github.com/vsariola/gainknob"
	"github.com/vsariola/gainknob/editor"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	C = layout.Context
	D = layout.Dimensions

	KnobStyle struct {
		Diameter    unit.Dp
		StrokeWidth unit.Dp
		Color       color.NRGBA
		Bg          color.NRGBA
		Indicator   struct {
			Color     color.NRGBA
			Width     unit.Dp
			InnerDiam unit.Dp
			OuterDiam unit.Dp
		}
	}

	Theme struct {
		Material  *material.Theme
		Bg        color.NRGBA
		Fg        color.NRGBA
		Dragging  color.NRGBA
		Knob      KnobStyle
		VolumeOn  *widget.Icon
		VolumeOff *widget.Icon
	}

	// KnobWidget draws the knob at one of Frames discrete positions, with the
	// parameter name above and the value in decibels below.
	KnobWidget struct {
		Theme  *Theme
		Knob   *editor.Knob
		Name   string
		Frames int
	}
)

var (
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	darkGray    = color.NRGBA{R: 32, G: 32, B: 36, A: 255}
	mediumGray  = color.NRGBA{R: 70, G: 70, B: 78, A: 255}
	lightBlue   = color.NRGBA{R: 120, G: 180, B: 255, A: 255}
	lightOrange = color.NRGBA{R: 255, G: 180, B: 90, A: 255}
)

func NewTheme(prefs Preferences) (*Theme, error) {
	th := &Theme{
		Material: material.NewTheme(),
		Bg:       darkGray,
		Fg:       white,
		Dragging: lightOrange,
	}
	th.Material.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Knob.Diameter = unit.Dp(prefs.Knob.Diameter)
	th.Knob.StrokeWidth = unit.Dp(prefs.Knob.StrokeWidth)
	th.Knob.Color = lightBlue
	th.Knob.Bg = mediumGray
	th.Knob.Indicator.Color = white
	th.Knob.Indicator.Width = unit.Dp(prefs.Knob.IndicatorWidth)
	th.Knob.Indicator.InnerDiam = unit.Dp(prefs.Knob.Diameter / 4)
	th.Knob.Indicator.OuterDiam = unit.Dp(prefs.Knob.Diameter - 2*prefs.Knob.StrokeWidth)
	var err error
	if th.VolumeOn, err = widget.NewIcon(icons.AVVolumeUp); err != nil {
		return th, err
	}
	if th.VolumeOff, err = widget.NewIcon(icons.AVVolumeOff); err != nil {
		return th, err
	}
	return th, nil
}

func Knob(th *Theme, k *editor.Knob, name string, frames int) KnobWidget {
	return KnobWidget{
		Theme:  th,
		Knob:   k,
		Name:   cases.Title(language.English).String(name),
		Frames: frames,
	}
}

func (k *KnobWidget) Layout(gtx C) D {
	value := k.Knob.Displayed()
	frame := editor.FrameIndex(value, k.Frames)
	var amount float32
	if k.Frames > 1 {
		amount = float32(frame) / float32(k.Frames-1)
	}
	fg := k.Theme.Fg
	if k.Knob.State() == editor.Dragging {
		fg = k.Theme.Dragging
	}
	knob := func(gtx C) D {
		sw := gtx.Dp(k.Theme.Knob.StrokeWidth)
		d := gtx.Dp(k.Theme.Knob.Diameter)
		defer clip.Rect(image.Rectangle{Max: image.Pt(d, d)}).Push(gtx.Ops).Pop()
		k.strokeKnobArc(gtx, k.Theme.Knob.Bg, sw, d, amount, 1)
		k.strokeKnobArc(gtx, k.Theme.Knob.Color, sw, d, 0, amount)
		k.strokeIndicator(gtx, amount)
		return D{Size: image.Pt(d, d)}
	}
	name := material.Label(k.Theme.Material, unit.Sp(16), k.Name)
	name.Color = k.Theme.Fg
	readout := material.Label(k.Theme.Material, unit.Sp(14), gainknob.FormatDecibels(value))
	readout.Color = fg
	icon := k.Theme.VolumeOn
	if frame == 0 {
		icon = k.Theme.VolumeOff
	}
	return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(name.Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(knob),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					if icon == nil {
						return D{}
					}
					sz := gtx.Dp(unit.Dp(18))
					gtx.Constraints.Min = image.Pt(sz, sz)
					return icon.Layout(gtx, fg)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
				layout.Rigid(readout.Layout),
			)
		}),
	)
}

func (k *KnobWidget) strokeKnobArc(gtx C, color color.NRGBA, strokeWidth, diameter int, start, end float32) {
	rad := float32(diameter) / 2
	end = min(max(end, 0), 1)
	if end <= start {
		return
	}
	startAngle := float64((start*8 + 1) / 10 * 2 * math.Pi)
	deltaAngle := (end - start) * 8 * math.Pi / 5
	center := f32.Point{X: rad, Y: rad}
	r2 := rad - float32(strokeWidth)/2
	startPt := f32.Point{X: rad - r2*float32(math.Sin(startAngle)), Y: rad + r2*float32(math.Cos(startAngle))}
	segments := [...]stroke.Segment{
		stroke.MoveTo(startPt),
		stroke.ArcTo(center, deltaAngle),
	}
	s := stroke.Stroke{
		Path:  stroke.Path{Segments: segments[:]},
		Width: float32(strokeWidth),
		Cap:   stroke.FlatCap,
	}
	paint.FillShape(gtx.Ops, color, s.Op(gtx.Ops))
}

func (k *KnobWidget) strokeIndicator(gtx C, amount float32) {
	innerRad := float32(gtx.Dp(k.Theme.Knob.Indicator.InnerDiam)) / 2
	outerRad := float32(gtx.Dp(k.Theme.Knob.Indicator.OuterDiam)) / 2
	center := float32(gtx.Dp(k.Theme.Knob.Diameter)) / 2
	angle := (float64(amount)*8 + 1) / 10 * 2 * math.Pi
	start := f32.Point{
		X: center - innerRad*float32(math.Sin(angle)),
		Y: center + innerRad*float32(math.Cos(angle)),
	}
	end := f32.Point{
		X: center - outerRad*float32(math.Sin(angle)),
		Y: center + outerRad*float32(math.Cos(angle)),
	}
	segments := [...]stroke.Segment{
		stroke.MoveTo(start),
		stroke.LineTo(end),
	}
	s := stroke.Stroke{
		Path:  stroke.Path{Segments: segments[:]},
		Width: float32(gtx.Dp(k.Theme.Knob.Indicator.Width)),
		Cap:   stroke.RoundCap,
	}
	paint.FillShape(gtx.Ops, k.Theme.Knob.Indicator.Color, s.Op(gtx.Ops))
}
