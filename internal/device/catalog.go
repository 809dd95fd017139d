package device

import (
	"github.com/bendichter/aind-data-schema/internal/reference"
	"github.com/bendichter/aind-data-schema/internal/units"
	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// Модули встроенных типов в каталоге.
const (
	ModuleDevice  = "device"
	ModuleRig     = "rig"
	ModuleSession = "session"
)

// Catalog — встроенный каталог: реестры, единицы, величины, устройства, установка и сессия.
func Catalog() (*reference.Catalog, error) {
	enums := append([]*vocab.Enum{vocab.Registry}, units.Families()...)
	enums = append(enums, Enums()...)
	return reference.NewCatalog(
		reference.WithEnums(enums...),
		reference.WithQuantities(units.Quantities()...),
		reference.WithEntities(ModuleDevice, Devices()...),
		reference.WithEntities(ModuleRig, Rig),
		reference.WithEntities(ModuleSession, Sessions()...),
	)
}
