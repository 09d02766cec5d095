package poses

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	linkStyle     = "stroke:#1f2937;stroke-width:5;stroke-linecap:round"
	jointStyle    = "fill:#2563eb;stroke:#ffffff;stroke-width:2"
	effectorStyle = "fill:#f59e0b;stroke:#ffffff;stroke-width:2"
	baseStyle     = "fill:#6b7280"
)

func px(v float64) int {
	return int(math.Round(v))
}

// drawPose draws in a viewport centered on the base, shifted down a quarter canvas.
func drawPose(canvas *svg.SVG, pose Pose, arm Arm) {
	canvas.Gtransform(fmt.Sprintf("translate(0,%d)", arm.CanvasSize/4))
	canvas.Roundrect(px(pose.Base.X)-15, px(pose.Base.Y), 30, 10, 2, 2, baseStyle)
	canvas.Line(px(pose.Base.X), px(pose.Base.Y), px(pose.Elbow.X), px(pose.Elbow.Y), linkStyle)
	canvas.Circle(px(pose.Base.X), px(pose.Base.Y), 7, jointStyle)
	canvas.Circle(px(pose.Elbow.X), px(pose.Elbow.Y), 7, jointStyle)
	canvas.Line(px(pose.Elbow.X), px(pose.Elbow.Y), px(pose.End.X), px(pose.End.Y), linkStyle)
	canvas.Circle(px(pose.End.X), px(pose.End.Y), 5, effectorStyle)
	canvas.Gend()
}

// RenderSVG writes a single pose as a standalone SVG document.
func RenderSVG(w io.Writer, pose Pose, arm Arm) {
	size := arm.CanvasSize
	canvas := svg.New(w)
	canvas.Startview(size, size, -size/2, -size/2, size, size)
	drawPose(canvas, pose, arm)
	canvas.End()
}

// RenderStripSVG writes poses side by side, one canvas per frame.
func RenderStripSVG(w io.Writer, poses []Pose, arm Arm) {
	size := arm.CanvasSize
	width := size * max(len(poses), 1)
	canvas := svg.New(w)
	canvas.Startview(width, size, -size/2, -size/2, width, size)
	for i, pose := range poses {
		canvas.Gtransform(fmt.Sprintf("translate(%d,0)", i*size))
		drawPose(canvas, pose, arm)
		canvas.Gend()
	}
	canvas.End()
}
