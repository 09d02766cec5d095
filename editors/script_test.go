package editors

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reusee/armplan/motions"
)

func TestRunScript(t *testing.T) {
	testScope(t, parserReply).Call(func(
		newSession NewSession,
		runScript RunScript,
	) {
		session := newSession()
		out := new(bytes.Buffer)
		err := runScript(t.Context(), session, "edit.star", []byte(`
err = generate("wave then rest")
if err != None:
    fail(err)
steps = plan()
print(len(steps), steps[0]["motionPrimitive"])
for i in range(len(steps[0]["jointAngles"]["joint1"])):
    set_angle(0, "joint2", i, -0.5)
set_angle(steps[1]["id"], "joint1", 0, 1)
`), out)
		if err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(out.String()) != "2 wave" {
			t.Fatalf("got %q", out.String())
		}
		plan := session.Plan()
		if diff := cmp.Diff([]float64{-0.5, -0.5, -0.5}, plan[0].JointAngles[motions.Joint2]); diff != "" {
			t.Fatal(diff)
		}
		if plan[1].JointAngles[motions.Joint1][0] != 1 {
			t.Fatalf("got %v", plan[1])
		}
	})
}

func TestRunScriptSetPlan(t *testing.T) {
	testScope(t, parserReply).Call(func(
		newSession NewSession,
		runScript RunScript,
	) {
		session := newSession()
		err := runScript(t.Context(), session, "plan.star", []byte(`
set_plan([
    {"motionPrimitive": "nod", "jointAngles": {"joint1": [0, 0.25], "joint2": [0, 0]}},
])
`), new(bytes.Buffer))
		if err != nil {
			t.Fatal(err)
		}
		plan := session.Plan()
		if len(plan) != 1 || plan[0].MotionPrimitive != "nod" || plan[0].ID == "" {
			t.Fatalf("got %v", plan)
		}
	})
}

func TestRunScriptErrors(t *testing.T) {
	testScope(t, parserReply).Call(func(
		newSession NewSession,
		runScript RunScript,
	) {
		session := newSession()
		err := runScript(t.Context(), session, "bad.star", []byte(`set_angle(0, "joint1", 0, 0)`), new(bytes.Buffer))
		if !errors.Is(err, ErrNoPlan) {
			t.Fatalf("got %v", err)
		}
		err = runScript(t.Context(), session, "syntax.star", []byte(`def (`), new(bytes.Buffer))
		if err == nil {
			t.Fatal("expected syntax error")
		}
	})
}
