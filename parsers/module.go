package parsers

import (
	"github.com/reusee/armplan/generators"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Generators generators.Module
}
