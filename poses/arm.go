package poses

import (
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/vars"
)

// Arm holds the geometry of the planar two-link arm and the preview canvas size.
type Arm struct {
	Link1      float64
	Link2      float64
	CanvasSize int
}

func DefaultArm() Arm {
	return Arm{
		Link1:      50,
		Link2:      40,
		CanvasSize: 150,
	}
}

func (Module) Arm(
	loader configs.Loader,
) Arm {
	def := DefaultArm()
	return Arm{
		Link1: vars.FirstNonZero(
			configs.First[float64](loader, "link1_length"),
			def.Link1,
		),
		Link2: vars.FirstNonZero(
			configs.First[float64](loader, "link2_length"),
			def.Link2,
		),
		CanvasSize: vars.FirstNonZero(
			configs.First[int](loader, "canvas_size"),
			def.CanvasSize,
		),
	}
}

// MaxCanvasSize bounds the side of a rendered canvas in pixels.
const MaxCanvasSize = 2048

// WithSize returns a copy drawn on a canvas of size, keeping link lengths.
// Non-positive sizes are ignored and sizes above MaxCanvasSize are clamped.
func (a Arm) WithSize(size int) Arm {
	if size > 0 {
		a.CanvasSize = min(size, MaxCanvasSize)
	}
	return a
}
