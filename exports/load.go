package exports

import (
	"encoding/json"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/reusee/armplan/motions"
	"go.yaml.in/yaml/v3"
)

type loadedStep struct {
	ID              string              `json:"id" yaml:"id"`
	MotionPrimitive string              `json:"motionPrimitive" yaml:"motionPrimitive"`
	JointAngles     motions.JointAngles `json:"jointAngles" yaml:"jointAngles"`
}

// Load parses a plan file written by Export, detecting the format from content.
// Steps without an id get one from newID.
func Load(data []byte, newID func() string) (motions.Plan, error) {
	var steps []loadedStep

	mime := mimetype.Detect(data)
	isText := false
	for t := mime; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			isText = true
			break
		}
	}

	switch {
	case mime.Is("application/json"):
		if err := json.Unmarshal(data, &steps); err != nil {
			return nil, fmt.Errorf("decode json plan: %w", err)
		}
	case isText:
		if err := yaml.Unmarshal(data, &steps); err != nil {
			return nil, fmt.Errorf("decode yaml plan: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime.String())
	}

	plan := make(motions.Plan, 0, len(steps))
	for _, step := range steps {
		if step.ID == "" {
			step.ID = newID()
		}
		plan = append(plan, motions.Step(step))
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}
