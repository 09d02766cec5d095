package plans

import "github.com/reusee/armplan/motions"

// Result is the envelope returned to clients. Exactly one of Plan and Error is non-nil.
type Result struct {
	Plan  motions.Plan `json:"plan"`
	Error *string      `json:"error"`
}

func NewResult(plan motions.Plan, err error) Result {
	if err != nil {
		msg := Classify(err).Error()
		return Result{
			Error: &msg,
		}
	}
	return Result{
		Plan: plan,
	}
}
