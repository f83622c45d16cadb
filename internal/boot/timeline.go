// Package boot drives the boot animation: a single progress value mapped
// through keyframed curves into the visual state of each frame.
package boot

import (
	"time"

	"github.com/hosbabel/hosbabel/internal/models"
)

// Frame is the visual state of the boot screen at one instant. Opacities,
// scales and reveal fractions are in [0,1]; rotation is in degrees.
type Frame struct {
	Progress         float64
	CrosshairOpacity float64
	CrosshairScale   float64
	EmblemOpacity    float64
	EmblemRotation   float64
	FrameOpacity     float64
	TitleOpacity     float64
	TitleReveal      float64
	ScanlineY        float64
	Opacity          float64
}

// keyframes in milliseconds of the default 9300ms timeline
var (
	crosshairOpacity = curve{[]float64{0, 1200, 3500, 4200}, []float64{0, 1, 1, 0.35}}
	crosshairScale   = curve{[]float64{0, 1200}, []float64{0.6, 1}}
	emblemOpacity    = curve{[]float64{1200, 2400, 3500}, []float64{0, 0.8, 1}}
	emblemRotation   = curve{[]float64{1200, 3500, 9300}, []float64{-90, 0, 30}}
	frameOpacity     = curve{[]float64{2500, 4000}, []float64{0, 1}}
	titleOpacity     = curve{[]float64{4000, 4600}, []float64{0, 1}}
	titleReveal      = curve{[]float64{4000, 6500}, []float64{0, 1}}
	scanline         = curve{[]float64{0, 8500}, []float64{0, 1}}
	fadeOut          = curve{[]float64{8500, 9300}, []float64{1, 0}}
)

// At computes the frame for progress p in [0,1]. There is no branching on
// state: every channel is a function of p alone.
func At(p float64) Frame {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	total := float64(models.BootDuration / time.Millisecond)
	return Frame{
		Progress:         p,
		CrosshairOpacity: crosshairOpacity.at(p, total),
		CrosshairScale:   crosshairScale.at(p, total),
		EmblemOpacity:    emblemOpacity.at(p, total),
		EmblemRotation:   emblemRotation.at(p, total),
		FrameOpacity:     frameOpacity.at(p, total),
		TitleOpacity:     titleOpacity.at(p, total),
		TitleReveal:      titleReveal.at(p, total),
		ScanlineY:        scanline.at(p, total),
		Opacity:          fadeOut.at(p, total),
	}
}
