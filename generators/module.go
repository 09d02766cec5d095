package generators

import (
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/debugs"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Nets    nets.Module
	Logs    logs.Module
	Debugs  debugs.Module
}
