// Package device — справочники и типы записей для описания установок и сессий.
package device

import "github.com/bendichter/aind-data-schema/internal/vocab"

func ror(name, id string) vocab.PIDName {
	return vocab.PIDName{Name: name, Registry: vocab.ROR, RegistryIdentifier: id}
}

// Manufacturer — производители оборудования; часть с идентификаторами ROR.
var Manufacturer = vocab.MustEnum("Manufacturer",
	vocab.Label("ALLIED", "Allied"),
	vocab.Entry("ASI", vocab.PIDName{Name: "Applied Scientific Instrumentation", Abbreviation: "ASI"}),
	vocab.Label("BASLER", "Basler"),
	vocab.Label("CAMBRIDGE_TECHNOLOGY", "Cambridge Technology"),
	vocab.Label("CHROMA", "Chroma"),
	vocab.Entry("COHERENT_SCIENTIFIC", ror("Coherent Scientific", "031tysd23")),
	vocab.Label("COMPUTAR", "Computar"),
	vocab.Label("CUSTOM", "Custom"),
	vocab.Entry("DORIC", ror("Doric", "059n53q30")),
	vocab.Label("EALING", "Ealing"),
	vocab.Entry("EDMUND_OPTICS", ror("Edmund Optics", "01j1gwp17")),
	vocab.Label("AILIPU", "Ailipu Technology Co"),
	vocab.Entry("FLIR", vocab.PIDName{
		Name:               "Teledyne FLIR",
		Abbreviation:       "FLIR",
		Registry:           vocab.ROR,
		RegistryIdentifier: "01j1gwp17",
	}),
	vocab.Entry("HAMAMATSU", ror("Hamamatsu", "03natb733")),
	vocab.Label("IMAGING_SOURCE", "The Imaging Source"),
	vocab.Entry("IMEC", vocab.PIDName{
		Name:               "Interuniversity Microelectronics Center",
		Abbreviation:       "IMEC",
		Registry:           vocab.ROR,
		RegistryIdentifier: "02kcbn207",
	}),
	vocab.Label("JULABO", "Julabo"),
	vocab.Label("LEICA", "Leica"),
	vocab.Entry("LG", ror("LG", "02b948n83")),
	vocab.Label("LIFECANVAS", "LifeCanvas"),
	vocab.Label("MIGHTY_ZAP", "IR Robot Co"),
	vocab.Entry("MKS_NEWPORT", ror("MKS Newport", "00k17f049")),
	vocab.Entry("MPI", vocab.PIDName{Name: "MPI", Abbreviation: "MPI"}),
	vocab.Entry("NATIONAL_INSTRUMENTS", ror("National Instruments", "026exqw73")),
	vocab.Label("NEW_SCALE_TECHNOLOGIES", "New Scale Technologies"),
	vocab.Entry("NIKON", ror("Nikon", "0280y9h11")),
	vocab.Entry("OEPS", vocab.PIDName{
		Name:               "Open Ephys Production Site",
		Abbreviation:       "OEPS",
		Registry:           vocab.ROR,
		RegistryIdentifier: "007rkz355",
	}),
	vocab.Entry("OLYMPUS", ror("Olympus", "02vcdte90")),
	vocab.Label("OPTOTUNE", "Optotune"),
	vocab.Label("OXXIUS", "Oxxius"),
	vocab.Label("PRIZMATIX", "Prizmatix"),
	vocab.Label("QUANTIFI", "Quantifi"),
	vocab.Label("SEMROCK", "Semrock"),
	vocab.Entry("THORLABS", ror("Thorlabs", "04gsnvb07")),
	vocab.Entry("TMC", vocab.PIDName{Name: "Technical Manufacturing Corporation", Abbreviation: "TMC"}),
	vocab.Label("VIEWORKS", "Vieworks"),
	vocab.Label("VORTRAN", "Vortran"),
	vocab.Label("OTHER", "Other"),
)

var (
	Ailipu              = Manufacturer.MustTag("AILIPU")
	Allied              = Manufacturer.MustTag("ALLIED")
	Basler              = Manufacturer.MustTag("BASLER")
	Chroma              = Manufacturer.MustTag("CHROMA")
	CoherentScientific  = Manufacturer.MustTag("COHERENT_SCIENTIFIC")
	Computar            = Manufacturer.MustTag("COMPUTAR")
	Doric               = Manufacturer.MustTag("DORIC")
	EdmundOptics        = Manufacturer.MustTag("EDMUND_OPTICS")
	FLIR                = Manufacturer.MustTag("FLIR")
	Hamamatsu           = Manufacturer.MustTag("HAMAMATSU")
	ImagingSource       = Manufacturer.MustTag("IMAGING_SOURCE")
	IMEC                = Manufacturer.MustTag("IMEC")
	LG                  = Manufacturer.MustTag("LG")
	NationalInstruments = Manufacturer.MustTag("NATIONAL_INSTRUMENTS")
	Nikon               = Manufacturer.MustTag("NIKON")
	OEPS                = Manufacturer.MustTag("OEPS")
	Oxxius              = Manufacturer.MustTag("OXXIUS")
	Prizmatix           = Manufacturer.MustTag("PRIZMATIX")
	Quantifi            = Manufacturer.MustTag("QUANTIFI")
	Semrock             = Manufacturer.MustTag("SEMROCK")
	Thorlabs            = Manufacturer.MustTag("THORLABS")
	OtherManufacturer   = Manufacturer.MustTag("OTHER")
)

// Допустимые производители по типам устройств.
var (
	CameraManufacturers  = Manufacturer.MustRestrict(Ailipu, Allied, Basler, EdmundOptics, FLIR, ImagingSource, Thorlabs, OtherManufacturer)
	LensManufacturers    = Manufacturer.MustRestrict(Computar, EdmundOptics, Thorlabs, OtherManufacturer)
	FilterManufacturers  = Manufacturer.MustRestrict(EdmundOptics, Chroma, Semrock, Thorlabs, OtherManufacturer)
	DAQManufacturers     = Manufacturer.MustRestrict(NationalInstruments, IMEC, OEPS, OtherManufacturer)
	LaserManufacturers   = Manufacturer.MustRestrict(CoherentScientific, Hamamatsu, Oxxius, Quantifi, OtherManufacturer)
	LEDManufacturers     = Manufacturer.MustRestrict(Doric, Prizmatix, Thorlabs, OtherManufacturer)
	PatchManufacturers   = Manufacturer.MustRestrict(Doric, Prizmatix, Thorlabs, OtherManufacturer)
	MonitorManufacturers = Manufacturer.MustRestrict(LG)
)
