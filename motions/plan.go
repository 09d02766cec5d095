package motions

import (
	"errors"
	"fmt"
)

// Plan is an ordered list of steps. Order is execution order.
type Plan []Step

var (
	ErrStepNotFound     = errors.New("step not found")
	ErrJointNotFound    = errors.New("joint not found")
	ErrIndexOutOfRange  = errors.New("frame index out of range")
	ErrAngleOutOfRange  = errors.New("angle out of range")
	ErrDuplicatedStepID = errors.New("duplicated step id")
)

func (p Plan) Validate() error {
	ids := make(map[string]bool, len(p))
	for _, step := range p {
		if ids[step.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatedStepID, step.ID)
		}
		ids[step.ID] = true
		if err := step.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the index of the step with id.
func (p Plan) Find(id string) (int, bool) {
	for i, step := range p {
		if step.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (p Plan) Clone() Plan {
	if p == nil {
		return nil
	}
	ret := make(Plan, 0, len(p))
	for _, step := range p {
		ret = append(ret, step.Clone())
	}
	return ret
}

// SetAngle replaces a single angle in place. Values must lie in [MinAngle, MaxAngle].
func (p Plan) SetAngle(id string, joint string, frame int, value float64) error {
	i, ok := p.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrStepNotFound, id)
	}
	values, ok := p[i].JointAngles[joint]
	if !ok {
		return fmt.Errorf("%w: %s in step %s", ErrJointNotFound, joint, id)
	}
	if frame < 0 || frame >= len(values) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, frame, len(values))
	}
	if !(value >= MinAngle && value <= MaxAngle) {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrAngleOutOfRange, value, MinAngle, MaxAngle)
	}
	values[frame] = value
	return nil
}

// Primitives returns the primitive names in plan order.
func (p Plan) Primitives() []string {
	ret := make([]string, 0, len(p))
	for _, step := range p {
		ret = append(ret, step.MotionPrimitive)
	}
	return ret
}
