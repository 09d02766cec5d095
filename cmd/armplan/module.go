package main

import (
	"github.com/reusee/armplan/armconfigs"
	"github.com/reusee/armplan/editors"
	"github.com/reusee/armplan/servers"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs armconfigs.Module
	Editors editors.Module
	Servers servers.Module
}
