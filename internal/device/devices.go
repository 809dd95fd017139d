package device

import (
	"github.com/bendichter/aind-data-schema/internal/schema"
	"github.com/bendichter/aind-data-schema/internal/units"
)

var (
	Software = schema.MustEntity("Software",
		schema.Text("name", "Software name").Req(),
		schema.Text("version", "Software version").Req(),
		schema.Dict("parameters", "Software parameters"),
	)

	// Device — общие поля любого устройства.
	Device = schema.MustEntity("Device",
		schema.Text("name", "Device name"),
		schema.Text("serial_number", "Serial number"),
		schema.EnumOf("manufacturer", "Manufacturer", Manufacturer),
		schema.Text("model", "Model"),
		schema.Text("notes", "Notes"),
	)

	RelativePosition = schema.MustEntity("RelativePosition",
		schema.Nested("relative_position", "Geometric coordinates (pitch, yaw, roll)", units.OrientationValue3D),
		schema.Text("coordinate_system", "Description of the coordinate system used"),
	)

	MotorizedStage = Device.MustExtend("MotorizedStage",
		schema.Nested("travel", "Travel of device (mm)", units.SizeValueMM).Req(),
		schema.Text("firmware", "Firmware"),
	)

	Camera = Device.MustExtend("Camera",
		schema.SubsetOf("manufacturer", "Manufacturer", CameraManufacturers).Req(),
		schema.EnumOf("data_interface", "Type of connection to PC", DataInterface).Req(),
		schema.Text("computer_name", "Name of computer receiving data from this camera").Req(),
		schema.Nested("max_frame_rate", "Maximum frame rate (Hz)", units.FrequencyValueHZ).Req(),
		schema.Nested("pixel_width", "Width of the sensor in pixels", units.SizeValuePX).Req(),
		schema.Nested("pixel_height", "Height of the sensor in pixels", units.SizeValuePX).Req(),
		schema.EnumOf("chroma", "Color or Monochrome", CameraChroma).Req(),
		schema.Text("sensor_format", "Size of the sensor"),
		schema.Text("format_unit", "Format unit"),
		schema.Nested("recording_software", "Recording software", Software),
		schema.EnumOf("driver", "Driver", DeviceDriver),
		schema.Text("driver_version", "Driver version"),
	)

	Lens = Device.MustExtend("Lens",
		schema.SubsetOf("manufacturer", "Manufacturer", LensManufacturers).Req(),
		schema.Nested("focal_length", "Focal length of the lens (mm)", units.SizeValueMM),
		schema.Nested("size", "Size (inches)", units.SizeValueIN),
		schema.Nested("optimized_wavelength_range", "Optimized wavelength range (nm)", units.SizeValueNM),
		schema.Text("max_aperture", "Max aperture (e.g. f/2)"),
	)

	Filter = Device.MustExtend("Filter",
		schema.SubsetOf("manufacturer", "Manufacturer", FilterManufacturers).Req(),
		schema.EnumOf("filter_type", "Type of filter", FilterType).Req(),
		schema.Nested("filter_size", "Filter size (width, height)", units.SizeValue2DMM),
		schema.Nested("filter_diameter", "Filter diameter (mm)", units.SizeValueMM),
		schema.Nested("thickness", "Thickness (mm)", units.SizeValueMM),
		schema.Int("filter_wheel_index", "Filter wheel index"),
		schema.Nested("cut_off_wavelength", "Cut-off wavelength (nm)", units.WaveLengthNM),
		schema.Nested("cut_on_wavelength", "Cut-on wavelength (nm)", units.WaveLengthNM),
		schema.Nested("center_wavelength", "Center wavelength (nm)", units.WaveLengthNM),
		schema.Text("description", "Description"),
	)

	Objective = Device.MustExtend("Objective",
		schema.Decimal("numerical_aperture", "Numerical aperture (in air)").Req(),
		schema.Decimal("magnification", "Magnification").Req(),
		schema.EnumOf("immersion", "Immersion", Immersion).Req(),
	)

	CameraAssembly = schema.MustEntity("CameraAssembly",
		schema.Text("camera_assembly_name", "Camera assembly name").Req(),
		schema.EnumOf("camera_target", "Camera target", CameraTarget).Req(),
		schema.Nested("camera", "Camera", Camera).Req(),
		schema.Nested("lens", "Lens", Lens).Req(),
		schema.Nested("filter", "Filter", Filter),
		schema.Nested("position", "Relative position of this assembly", RelativePosition),
	)

	DAQChannel = schema.MustEntity("DAQChannel",
		schema.Text("channel_name", "DAQ channel name").Req(),
		schema.Text("device_name", "Name of connected device").Req(),
		schema.EnumOf("channel_type", "DAQ channel type", DaqChannelType).Req(),
		schema.Int("port", "DAQ port"),
		schema.Int("channel_index", "DAQ channel index"),
		schema.Nested("sample_rate", "DAQ channel sample rate (Hz)", units.FrequencyValueHZ),
		schema.Bool("event_based_sampling", "Set to true if DAQ channel is sampled at irregular intervals").WithDefault(false),
	)

	DAQDevice = Device.MustExtend("DAQDevice",
		schema.SubsetOf("manufacturer", "Manufacturer", DAQManufacturers).Req(),
		schema.EnumOf("data_interface", "Type of connection to PC", DataInterface).Req(),
		schema.Text("computer_name", "Name of computer controlling this DAQ").Req(),
		schema.ListOf("channels", "DAQ channels", schema.Nested("", "DAQ channel", DAQChannel)),
	)

	// HarpDevice — DAQ по протоколу Harp: производитель по умолчанию OEPS, подключение только USB.
	HarpDevice = DAQDevice.MustExtend("HarpDevice",
		schema.EnumOf("manufacturer", "Manufacturer", Manufacturer).WithDefault(OEPS),
		schema.EnumOf("data_interface", "Type of connection to PC", DataInterface).Fixed(USB),
		schema.EnumOf("harp_device_type", "Type of Harp device", HarpDeviceType).Req(),
		schema.Text("harp_device_version", "Device version").Req(),
	)

	// Источники света различаются полем lightsource_type.
	Laser = Device.MustExtend("Laser",
		schema.Text("lightsource_type", "Lightsource type").Fixed("Laser"),
		schema.SubsetOf("manufacturer", "Manufacturer", LaserManufacturers).Req(),
		schema.Nested("wavelength", "Wavelength (nm)", units.WaveLengthNM).Req(),
		schema.Nested("maximum_power", "Maximum power (mW)", units.PowerValue),
		schema.EnumOf("coupling", "Coupling", Coupling),
		schema.Decimal("coupling_efficiency", "Coupling efficiency (percent)").Min(0).Max(100),
		schema.Text("coupling_efficiency_unit", "Coupling efficiency unit").WithDefault("percent"),
		schema.Text("item_number", "Item number"),
		schema.Text("calibration_data", "Calibration data"),
		schema.DateTime("calibration_date", "Calibration date"),
	)

	LightEmittingDiode = Device.MustExtend("LightEmittingDiode",
		schema.Text("lightsource_type", "Lightsource type").Fixed("LED"),
		schema.SubsetOf("manufacturer", "Manufacturer", LEDManufacturers).Req(),
		schema.Nested("wavelength", "Wavelength (nm)", units.WaveLengthNM).Req(),
	)

	// Patch — оптоволоконный патч-корд.
	Patch = Device.MustExtend("Patch",
		schema.SubsetOf("manufacturer", "Manufacturer", PatchManufacturers).Req(),
		schema.Decimal("core_diameter", "Core diameter (um)").Req(),
		schema.Decimal("numerical_aperture", "Numerical aperture").Req(),
		schema.Date("photobleaching_date", "Photobleaching date"),
	)

	Detector = Device.MustExtend("Detector",
		schema.EnumOf("detector_type", "Detector type", DetectorType).Req(),
		schema.EnumOf("data_interface", "Data interface", DataInterface).Req(),
		schema.EnumOf("cooling", "Cooling", Cooling).Req(),
		schema.EnumOf("immersion", "Immersion", Immersion),
		schema.EnumOf("chroma", "Camera chroma", CameraChroma),
		schema.Int("bit_depth", "Bit depth"),
		schema.EnumOf("bin_mode", "Detector binning mode", BinMode),
		schema.Int("bin_width", "Bin width").Min(1),
		schema.Int("bin_height", "Bin height").Min(1),
		schema.Int("crop_width", "Crop width").Min(0),
		schema.Int("crop_height", "Crop height").Min(0),
		schema.Decimal("gain", "Gain"),
	)

	mousePlatform = Device.MustExtend("MousePlatform",
		schema.Text("surface_material", "Surface material"),
		schema.DateTime("date_surface_replaced", "Date surface replaced"),
	)

	Disc = mousePlatform.MustExtend("Disc",
		schema.Text("platform_type", "Platform type").Fixed("Disc"),
		schema.Nested("radius", "Radius (cm)", units.SizeValueCM).Req(),
		schema.EnumOf("output", "Analog or digital electronics", DaqChannelType),
		schema.Text("encoder", "Encoder hardware type"),
		schema.Text("decoder", "Decoder chip type"),
		schema.Nested("encoder_firmware", "Encoder firmware", Software),
	)

	Tube = mousePlatform.MustExtend("Tube",
		schema.Text("platform_type", "Platform type").Fixed("Tube"),
		schema.Nested("diameter", "Diameter (cm)", units.SizeValueCM).Req(),
	)

	Treadmill = mousePlatform.MustExtend("Treadmill",
		schema.Text("platform_type", "Platform type").Fixed("Treadmill"),
		schema.Nested("treadmill_width", "Width of treadmill (cm)", units.SizeValueCM).Req(),
	)

	Monitor = Device.MustExtend("Monitor",
		schema.SubsetOf("manufacturer", "Manufacturer", MonitorManufacturers).Req(),
		schema.Nested("refresh_rate", "Refresh rate (Hz)", units.FrequencyValueHZ).Req(),
		schema.Nested("size", "Size (width, height) in pixels", units.SizeValue2DPX).Req(),
		schema.Nested("viewing_distance", "Viewing distance (cm)", units.SizeValueCM).Req(),
		schema.Int("contrast", "Contrast").Min(0).Max(100),
		schema.Int("brightness", "Brightness").Min(0).Max(100),
	)

	Calibration = schema.MustEntity("Calibration",
		schema.DateTime("calibration_date", "Date and time of calibration").Req(),
		schema.Text("device_name", "Device name").Req(),
		schema.Text("description", "Description").Req(),
		schema.Dict("input", "Calibration input").Req(),
		schema.Dict("output", "Calibration output").Req(),
		schema.Text("notes", "Notes"),
	)
)

// Devices — все типы устройств и вспомогательных записей.
func Devices() []*schema.Entity {
	return []*schema.Entity{
		Software, Device, RelativePosition, MotorizedStage, Camera, Lens, Filter, Objective,
		CameraAssembly, DAQChannel, DAQDevice, HarpDevice, Laser, LightEmittingDiode,
		Patch, Detector, Disc, Tube, Treadmill, Monitor, Calibration,
	}
}
