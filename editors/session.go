package editors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/reusee/armplan/exports"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/motions"
	"github.com/reusee/armplan/plans"
)

var ErrNoPlan = errors.New("no motion plan")

// Session owns the current plan of one user.
type Session struct {
	mu       sync.Mutex
	plan     motions.Plan
	generate plans.Generate
	newID    plans.NewID
	logger   logs.Logger
}

type NewSession func() *Session

func (Module) NewSession(
	generate plans.Generate,
	newID plans.NewID,
	logger logs.Logger,
) NewSession {
	return func() *Session {
		return &Session{
			generate: generate,
			newID:    newID,
			logger:   logger,
		}
	}
}

// Generate replaces the current plan with a fresh one. On failure the session holds no plan.
func (s *Session) Generate(ctx context.Context, prompt string) plans.Result {
	s.mu.Lock()
	s.plan = nil
	s.mu.Unlock()

	plan, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "generate plan", "err", err)
		return plans.NewResult(nil, err)
	}

	s.mu.Lock()
	s.plan = plan
	s.mu.Unlock()
	return plans.NewResult(plan, nil)
}

// Plan returns a copy of the current plan.
func (s *Session) Plan() motions.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Clone()
}

func (s *Session) Replace(plan motions.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan.Clone()
	return nil
}

func (s *Session) SetAngle(id string, joint string, frame int, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.plan) == 0 {
		return ErrNoPlan
	}
	return s.plan.SetAngle(id, joint, frame, value)
}

// Resolve maps a step reference to a step id. A reference is a 1-based index, a full id or an id prefix.
func (s *Session) Resolve(ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.plan) == 0 {
		return "", ErrNoPlan
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.plan) {
			return "", fmt.Errorf("%w: step %d", motions.ErrStepNotFound, n)
		}
		return s.plan[n-1].ID, nil
	}
	var found string
	for _, step := range s.plan {
		if step.ID == ref {
			return ref, nil
		}
		if strings.HasPrefix(step.ID, ref) {
			if found != "" {
				return "", fmt.Errorf("ambiguous step reference: %s", ref)
			}
			found = step.ID
		}
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s", motions.ErrStepNotFound, ref)
	}
	return found, nil
}

func (s *Session) Export(w io.Writer, format exports.Format) error {
	return exports.Export(w, s.Plan(), format)
}

// Load replaces the current plan with one read from an exported file.
func (s *Session) Load(data []byte) error {
	plan, err := exports.Load(data, s.newID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan
	return nil
}
