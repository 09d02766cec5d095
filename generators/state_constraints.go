package generators

// Constraints wraps a state with output requirements for the next generation.
type Constraints struct {
	upstream       State
	ResponseSchema *Var
	Safety         SafetySettings
}

func WithConstraints(upstream State, schema *Var, safety SafetySettings) Constraints {
	return Constraints{
		upstream:       upstream,
		ResponseSchema: schema,
		Safety:         safety,
	}
}

var _ State = Constraints{}

func (c Constraints) AppendContent(content *Content) (State, error) {
	upstream, err := c.upstream.AppendContent(content)
	if err != nil {
		return nil, err
	}
	c.upstream = upstream
	return c, nil
}

func (c Constraints) Contents() []*Content {
	return c.upstream.Contents()
}

func (c Constraints) SystemPrompt() string {
	return c.upstream.SystemPrompt()
}

func (c Constraints) Flush() (State, error) {
	upstream, err := c.upstream.Flush()
	if err != nil {
		return nil, err
	}
	c.upstream = upstream
	return c, nil
}

func (c Constraints) Unwrap() State {
	return c.upstream
}
