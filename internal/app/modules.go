package app

import (
	"github.com/vk/parsekit/internal/handlers"
	"github.com/vk/parsekit/parsers/bmp"
)

// coreModules is the definitive list of all parser modules that are compiled
// into the parsekit binary.
var coreModules = []handlers.Module{
	&bmp.Module{},
}
