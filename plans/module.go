package plans

import (
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/mappers"
	"github.com/reusee/armplan/parsers"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Parsers parsers.Module
	Mappers mappers.Module
	Logs    logs.Module
}
