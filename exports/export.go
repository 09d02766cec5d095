package exports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/reusee/armplan/motions"
	"go.yaml.in/yaml/v3"
)

// Export writes plan in format. An empty plan is ErrNoPlan.
func Export(w io.Writer, plan motions.Plan, format Format) error {
	if len(plan) == 0 {
		return ErrNoPlan
	}
	switch format {
	case FormatJSON:
		return WriteJSON(w, plan)
	case FormatYAML:
		return WriteYAML(w, plan)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func WriteJSON(w io.Writer, plan motions.Plan) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(plan)
}

func scalar(value string, tag string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}

// yamlNode lays out steps as motionPrimitive then jointAngles, joints sorted, angles with two decimals.
func yamlNode(plan motions.Plan) *yaml.Node {
	steps := &yaml.Node{
		Kind: yaml.SequenceNode,
	}
	for _, step := range plan {
		joints := &yaml.Node{
			Kind: yaml.MappingNode,
		}
		for _, name := range step.JointAngles.Joints() {
			values := &yaml.Node{
				Kind: yaml.SequenceNode,
			}
			for _, v := range step.JointAngles[name] {
				values.Content = append(values.Content, scalar(strconv.FormatFloat(v, 'f', 2, 64), "!!float"))
			}
			joints.Content = append(joints.Content, scalar(name, "!!str"), values)
		}
		steps.Content = append(steps.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				scalar("motionPrimitive", "!!str"),
				scalar(step.MotionPrimitive, "!!str"),
				scalar("jointAngles", "!!str"),
				joints,
			},
		})
	}
	return steps
}

func WriteYAML(w io.Writer, plan motions.Plan) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlNode(plan)); err != nil {
		return err
	}
	return encoder.Close()
}

// Bytes renders plan in format.
func Bytes(plan motions.Plan, format Format) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Export(buf, plan, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
