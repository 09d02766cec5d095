package poses

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/reusee/armplan/motions"
)

// Pose is one instant of the arm in screen coordinates, y growing downward, base at the origin.
type Pose struct {
	Base  r2.Point
	Elbow r2.Point
	End   r2.Point
}

func toDegrees(angle float64) float64 {
	return angle * 180
}

// direction is the unit vector for degrees measured clockwise from straight up.
func direction(degrees float64) r2.Point {
	rad := (degrees - 90) * math.Pi / 180
	return r2.Point{
		X: math.Cos(rad),
		Y: math.Sin(rad),
	}
}

// Project computes link endpoints from normalized joint angles. joint2 is relative to joint1; missing joints count as 0.
func Project(angles map[string]float64, arm Arm) Pose {
	angle1 := toDegrees(angles[motions.Joint1])
	angle2 := angle1 + toDegrees(angles[motions.Joint2])

	var pose Pose
	pose.Elbow = pose.Base.Add(direction(angle1).Mul(arm.Link1))
	pose.End = pose.Elbow.Add(direction(angle2).Mul(arm.Link2))
	return pose
}

// Frames projects every frame of a step. The frame count follows joint1.
func Frames(angles motions.JointAngles, arm Arm) []Pose {
	n := angles.FrameCount()
	ret := make([]Pose, 0, n)
	for i := range n {
		ret = append(ret, Project(angles.At(i), arm))
	}
	return ret
}

// Reach is the distance from base to end effector.
func (p Pose) Reach() float64 {
	return p.End.Sub(p.Base).Norm()
}
