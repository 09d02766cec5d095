package motions

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

const (
	Joint1 = "joint1"
	Joint2 = "joint2"

	MinAngle = -1.0
	MaxAngle = 1.0
)

// JointAngles maps joint names to normalized angle sequences, one value per frame.
type JointAngles map[string][]float64

var (
	ErrMissingJoint = errors.New("missing joint")
	ErrRaggedJoints = errors.New("joint sequences differ in length")
	ErrNotFinite    = errors.New("angle is not finite")
)

// Joints returns joint names in sorted order.
func (j JointAngles) Joints() []string {
	return slices.Sorted(maps.Keys(j))
}

// FrameCount is the length of joint1's sequence. Previews step through this many poses.
func (j JointAngles) FrameCount() int {
	return len(j[Joint1])
}

// Validate checks that joint1 and joint2 exist, all sequences share one length, and every value is finite.
func (j JointAngles) Validate() error {
	for _, name := range []string{Joint1, Joint2} {
		if _, ok := j[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingJoint, name)
		}
	}
	n := j.FrameCount()
	for _, name := range j.Joints() {
		values := j[name]
		if len(values) != n {
			return fmt.Errorf("%w: %s has %d values, %s has %d", ErrRaggedJoints, Joint1, n, name, len(values))
		}
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s[%d]", ErrNotFinite, name, i)
			}
		}
	}
	return nil
}

// At returns the angles of every joint at frame. Joints shorter than frame count as 0.
func (j JointAngles) At(frame int) map[string]float64 {
	ret := make(map[string]float64, len(j))
	for name, values := range j {
		if frame >= 0 && frame < len(values) {
			ret[name] = values[frame]
		} else {
			ret[name] = 0
		}
	}
	return ret
}

func (j JointAngles) Clone() JointAngles {
	if j == nil {
		return nil
	}
	ret := make(JointAngles, len(j))
	for name, values := range j {
		ret[name] = slices.Clone(values)
	}
	return ret
}
