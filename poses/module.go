package poses

import (
	"github.com/reusee/armplan/configs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
}
