package app

import (
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/modules/exec"
	"github.com/vk/taskgridgo/modules/httpcheck"
	"github.com/vk/taskgridgo/modules/print"
)

// coreModules lists the runner modules compiled into the default binary.
// Tests and embedders may pass their own set to NewApp instead.
var coreModules = []registry.Module{
	&exec.Module{},
	&print.Module{},
	&httpcheck.Module{},
}
