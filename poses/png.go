package poses

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
)

// RenderPNG rasterizes a single pose with the same layout as RenderSVG.
func RenderPNG(w io.Writer, pose Pose, arm Arm) error {
	size := float64(arm.CanvasSize)
	origin := r2.Point{X: size / 2, Y: size/2 + size/4}
	at := func(p r2.Point) r2.Point {
		return origin.Add(p)
	}

	dc := gg.NewContext(arm.CanvasSize, arm.CanvasSize)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	base := at(pose.Base)
	elbow := at(pose.Elbow)
	end := at(pose.End)

	dc.SetHexColor("#6b7280")
	dc.DrawRoundedRectangle(base.X-15, base.Y, 30, 10, 2)
	dc.Fill()

	dc.SetHexColor("#1f2937")
	dc.SetLineWidth(5)
	dc.SetLineCap(gg.LineCapRound)
	dc.DrawLine(base.X, base.Y, elbow.X, elbow.Y)
	dc.DrawLine(elbow.X, elbow.Y, end.X, end.Y)
	dc.Stroke()

	dc.SetHexColor("#2563eb")
	dc.DrawCircle(base.X, base.Y, 7)
	dc.DrawCircle(elbow.X, elbow.Y, 7)
	dc.Fill()

	dc.SetHexColor("#f59e0b")
	dc.DrawCircle(end.X, end.Y, 5)
	dc.Fill()

	return dc.EncodePNG(w)
}
