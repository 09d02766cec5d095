package servers

import (
	"github.com/reusee/armplan/cmds"
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/vars"
)

var addrFlag = cmds.Var[string]("-addr", "listen address of the http api")

type ListenAddr string

func (Module) ListenAddr(
	loader configs.Loader,
) ListenAddr {
	return vars.FirstNonZero(
		ListenAddr(*addrFlag),
		configs.First[ListenAddr](loader, "listen_addr"),
		"127.0.0.1:8080",
	)
}

// MaxConcurrentGenerations bounds in-flight plan generations. Zero is unbounded.
type MaxConcurrentGenerations int

func (Module) MaxConcurrentGenerations(
	loader configs.Loader,
) MaxConcurrentGenerations {
	return configs.First[MaxConcurrentGenerations](loader, "max_concurrent_generations")
}
