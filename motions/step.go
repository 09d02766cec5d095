package motions

import (
	"fmt"
	"strings"
)

// Step is one primitive of a plan with its resolved joint angles.
type Step struct {
	ID              string      `json:"id"`
	MotionPrimitive string      `json:"motionPrimitive"`
	JointAngles     JointAngles `json:"jointAngles"`
}

func (s Step) Validate() error {
	if strings.TrimSpace(s.MotionPrimitive) == "" {
		return fmt.Errorf("step %q: empty motion primitive", s.ID)
	}
	if err := s.JointAngles.Validate(); err != nil {
		return fmt.Errorf("step %q (%s): %w", s.ID, s.MotionPrimitive, err)
	}
	return nil
}

func (s Step) Clone() Step {
	s.JointAngles = s.JointAngles.Clone()
	return s
}

// Mapping is a primitive resolved to joint angles, before it is assigned an id.
type Mapping struct {
	MotionPrimitive string      `json:"motionPrimitive"`
	JointAngles     JointAngles `json:"jointAngles"`
}
