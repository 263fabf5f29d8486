package app

import (
	"github.com/vk/chipgrid/internal/registry"
	"github.com/vk/chipgrid/modules/potsdam"
)

// coreModules is the definitive list of all experiment sets that are
// compiled into the chipgrid binary.
var coreModules = []registry.Module{
	&potsdam.Module{},
}
