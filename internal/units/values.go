package units

import "github.com/bendichter/aind-data-schema/internal/schema"

var (
	value = schema.Names("value")

	coord3D             = schema.Names("x", "y", "z")
	coord2D             = schema.Names("x", "y")
	orientation3D       = schema.Names("pitch", "yaw", "roll")
	moduleOrientation3D = schema.Names("arc_angle", "module_angle", "rotation_angle")
	moduleOrientation2D = schema.Names("arc_angle", "module_angle")
	size3D              = schema.Names("length", "width", "height")
	size2D              = schema.Names("width", "height")
	filterSize          = schema.Names("diameter", "width", "height")
)

// Величины с одним полем value.
var (
	SizeValueMM      = schema.MustQuantity("SizeValueMM", value, Size, SizeMM)
	SizeValueCM      = schema.MustQuantity("SizeValueCM", value, Size, SizeCM)
	SizeValuePX      = schema.MustQuantity("SizeValuePX", value, Size, SizePX, schema.KindInt)
	SizeValueIN      = schema.MustQuantity("SizeValueIN", value, Size, SizeIN)
	SizeValueNM      = schema.MustQuantity("SizeValueNM", value, Size, SizeNM)
	WaveLengthNM     = schema.MustQuantity("WaveLengthNM", value, Size, SizeNM, schema.KindInt)
	MassValue        = schema.MustQuantity("MassValue", value, Mass, MassMG)
	VolumeValue      = schema.MustQuantity("VolumeValue", value, Volume, VolNL)
	FrequencyValueHZ = schema.MustQuantity("FrequencyValue", value, Frequency, FreqHZ)
	AngleValue       = schema.MustQuantity("AngleValue", value, Angle, AngleDEG)
	TimeValue        = schema.MustQuantity("TimeValue", value, Time, TimeS)
	PowerValue       = schema.MustQuantity("PowerValue", value, Power, PowerMW)
	CurrentValue     = schema.MustQuantity("CurrentValue", value, Current, CurrentUA)
)

// Многомерные величины.
var (
	CoordValue3D             = schema.MustQuantity("CoordValue3D", coord3D, Size, SizeMM)
	CoordValue2D             = schema.MustQuantity("CoordValue2D", coord2D, Size, SizeMM)
	SizeValue2DPX            = schema.MustQuantity("SizeValue2DPX", size2D, Size, SizePX, schema.KindInt)
	SizeValue2DMM            = schema.MustQuantity("SizeValue2DMM", size2D, Size, SizeMM)
	SizeValue3DMM            = schema.MustQuantity("SizeValue3DMM", size3D, Size, SizeMM)
	FilterSizeValue          = schema.MustQuantity("FilterSizeValue", filterSize, Size, SizeMM)
	OrientationValue3D       = schema.MustQuantity("OrientationValue3D", orientation3D, Angle, AngleDEG)
	ModuleOrientationValue2D = schema.MustQuantity("ModuleOrientationValue2D", moduleOrientation2D, Angle, AngleDEG)
	ModuleOrientationValue3D = schema.MustQuantity("ModuleOrientationValue3D", moduleOrientation3D, Angle, AngleDEG)
)

// Quantities — все готовые типы величин.
func Quantities() []*schema.Entity {
	return []*schema.Entity{
		SizeValueMM, SizeValueCM, SizeValuePX, SizeValueIN, SizeValueNM, WaveLengthNM,
		MassValue, VolumeValue, FrequencyValueHZ, AngleValue, TimeValue, PowerValue, CurrentValue,
		CoordValue3D, CoordValue2D, SizeValue2DPX, SizeValue2DMM, SizeValue3DMM, FilterSizeValue,
		OrientationValue3D, ModuleOrientationValue2D, ModuleOrientationValue3D,
	}
}
