package editors

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/reusee/armplan/motions"
)

func formatAngles(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%.2f", v))
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderPlan renders the plan as a text table, one row per step.
func RenderPlan(plan motions.Plan) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "ID", "Primitive", "Frames", motions.Joint1, motions.Joint2})
	for i, step := range plan {
		t.AppendRow(table.Row{
			i + 1,
			shortID(step.ID),
			step.MotionPrimitive,
			step.JointAngles.FrameCount(),
			formatAngles(step.JointAngles[motions.Joint1]),
			formatAngles(step.JointAngles[motions.Joint2]),
		})
	}
	return t.Render()
}
