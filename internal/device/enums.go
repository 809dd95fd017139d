package device

import "github.com/bendichter/aind-data-schema/internal/vocab"

func modality(tag, name, abbr string) vocab.Def {
	return vocab.Entry(tag, vocab.PIDName{Name: name, Abbreviation: abbr})
}

// Modality — методы сбора данных; в файлах пишется полное имя, аббревиатура разрешается отдельно.
var Modality = vocab.MustEnum("Modality",
	modality("BEHAVIOR", "Behavior", "behavior"),
	modality("BEHAVIOR_VIDEOS", "Behavior videos", "behavior-videos"),
	modality("CONFOCAL", "Confocal microscopy", "confocal"),
	modality("ECEPHYS", "Extracellular electrophysiology", "ecephys"),
	modality("EMG", "Electromyography", "EMG"),
	modality("FMOST", "Fluorescence micro-optical sectioning tomography", "fMOST"),
	modality("ICEPHYS", "Intracellular electrophysiology", "icephys"),
	modality("FIB", "Fiber photometry", "fib"),
	modality("ISI", "Intrinsic signal imaging", "ISI"),
	modality("MERFISH", "Multiplexed error-robust fluorescence in situ hybridization", "merfish"),
	modality("MRI", "Magnetic resonance imaging", "MRI"),
	modality("POPHYS", "Planar optical physiology", "ophys"),
	modality("SLAP", "Scanned line projection imaging", "slap"),
	modality("SPIM", "Selective plane illumination microscopy", "SPIM"),
)

var (
	DeviceDriver = vocab.MustEnum("DeviceDriver",
		vocab.Label("OPENGL", "OpenGL"),
		vocab.Label("VIMBA", "Vimba"),
		vocab.Label("NVIDIA", "Nvidia Graphics"),
	)
	Coupling = vocab.MustEnum("Coupling",
		vocab.Label("FREE_SPACE", "Free-space"),
		vocab.Label("MMF", "Multi-mode fiber"),
		vocab.Label("SMF", "Single-mode fiber"),
		vocab.Label("OTHER", "Other"),
	)
	DataInterface = vocab.MustEnum("DataInterface",
		vocab.Label("CAMERALINK", "CameraLink"),
		vocab.Label("COAX", "Coax"),
		vocab.Label("ETH", "Ethernet"),
		vocab.Label("PCIE", "PCIe"),
		vocab.Label("PXI", "PXI"),
		vocab.Label("USB", "USB"),
		vocab.Label("OTHER", "Other"),
	)
	FilterType = vocab.MustEnum("FilterType",
		vocab.Label("BANDPASS", "Band pass"),
		vocab.Label("DICHROIC", "Dichroic"),
		vocab.Label("LONGPASS", "Long pass"),
		vocab.Label("MULTIBAND", "Multiband"),
		vocab.Label("ND", "Neutral density"),
		vocab.Label("NOTCH", "Notch"),
		vocab.Label("SHORTPASS", "Short pass"),
	)
	CameraChroma = vocab.MustEnum("CameraChroma",
		vocab.Label("COLOR", "Color"),
		vocab.Label("BW", "Monochrome"),
	)
	DaqChannelType = vocab.MustEnum("DaqChannelType",
		vocab.Label("AI", "Analog Input"),
		vocab.Label("AO", "Analog Output"),
		vocab.Label("DI", "Digital Input"),
		vocab.Label("DO", "Digital Output"),
	)
	Immersion = vocab.MustEnum("Immersion",
		vocab.Label("AIR", "air"),
		vocab.Label("MULTI", "multi"),
		vocab.Label("OIL", "oil"),
		vocab.Label("WATER", "water"),
		vocab.Label("OTHER", "other"),
	)
	CameraTarget = vocab.MustEnum("CameraTarget",
		vocab.Label("BODY", "Body"),
		vocab.Label("BOTTOM", "Bottom"),
		vocab.Label("EYE", "Eye"),
		vocab.Label("FACE_BOTTOM", "Face bottom"),
		vocab.Label("FACE_SIDE", "Face side"),
		vocab.Label("SIDE", "Side"),
		vocab.Label("TONGUE", "Tongue"),
		vocab.Label("OTHER", "Other"),
	)
	HarpDeviceType = vocab.MustEnum("HarpDeviceType",
		vocab.Label("BEHAVIOR", "Behavior"),
		vocab.Label("CAMERA_CONTROLLER", "Camera Controller"),
		vocab.Label("LOAD_CELLS", "Load Cells"),
		vocab.Label("SOUND_BOARD", "Sound Board"),
		vocab.Label("TIMESTAMP_GENERATOR", "Timestamp Generator"),
		vocab.Label("INPUT_EXPANDER", "Input Expander"),
	)
	DetectorType = vocab.MustEnum("DetectorType",
		vocab.Label("CAMERA", "Camera"),
		vocab.Label("PMT", "Photomultiplier Tube"),
		vocab.Label("OTHER", "Other"),
	)
	Cooling = vocab.MustEnum("Cooling",
		vocab.Label("AIR", "air"),
		vocab.Label("WATER", "water"),
	)
	BinMode = vocab.MustEnum("BinMode",
		vocab.Label("ADDITIVE", "additive"),
		vocab.Label("AVERAGE", "average"),
		vocab.Label("NONE", "none"),
	)
)

// Справочники сессии электрофизиологии.
var (
	SessionType = vocab.MustEnum("SessionType",
		vocab.Label("TEST", "Test"),
		vocab.Label("OPTO", "Optotagging"),
		vocab.Label("VISUAL_ORIENTATION", "Visual Orientation"),
	)
	ExpectedDataStream = vocab.MustEnum("ExpectedDataStream",
		vocab.Label("NEUROPIXELS_PROBES", "Neuropixels probes"),
		vocab.Label("BODY_CAMERA", "Body camera"),
		vocab.Label("FACE_CAMERA", "Face camera"),
		vocab.Label("EYE_CAMERA", "Eye camera"),
		vocab.Label("BONSAI_FILE", "Bonsai file"),
		vocab.Label("HARP_FILE", "Harp bin file"),
		vocab.Label("OTHER", "Other"),
	)
	CcfVersion = vocab.MustEnum("CcfVersion",
		vocab.Label("CCFv3", "CCFv3"),
	)
)

var (
	ModalityFib     = Modality.MustTag("FIB")
	ModalityEcephys = Modality.MustTag("ECEPHYS")
	USB             = DataInterface.MustTag("USB")
	CCFv3           = CcfVersion.MustTag("CCFv3")
)

// Enums — все справочники пакета в порядке объявления.
func Enums() []*vocab.Enum {
	return []*vocab.Enum{
		Manufacturer, Modality, DeviceDriver, Coupling, DataInterface, FilterType,
		CameraChroma, DaqChannelType, Immersion, CameraTarget, HarpDeviceType,
		DetectorType, Cooling, BinMode, SessionType, ExpectedDataStream, CcfVersion,
	}
}
