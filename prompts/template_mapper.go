package prompts

// TemplateMapper is a text/template rendered with .Templates (name and angles per known template) and .Primitives.
const TemplateMapper = (`You are a robot motion planning expert. You will receive a list of motion primitives and map them to predefined joint angle templates.

The joint angle templates are as follows:
{{- range .Templates}}
{{.Name}}: {joint1: {{json .Joint1}}, joint2: {{json .Joint2}}}
{{- end}}

Map the motion primitives to the correct joint angles.
If a primitive has no template, generalize from the templates above to an equivalent joint angle sequence.
Return exactly one entry per motion primitive, in the given order, using the primitive names as given.
All joint angle sequences of one entry must have the same length, and every angle must lie in [-1, 1].
You must respond with a valid JSON object that adheres to the following schema:
{ "motionPlan": [{ "motionPrimitive": "name", "jointAngles": { "joint1": [0, 0, 0], "joint2": [0, 0, 0] } }] }

Motion Primitives: {{json .Primitives}}
`)
