package editors

import (
	"github.com/reusee/armplan/debugs"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/plans"
	"github.com/reusee/armplan/poses"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Plans  plans.Module
	Poses  poses.Module
	Debugs debugs.Module
	Logs   logs.Module
}
