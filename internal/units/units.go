// Package units — семейства единиц измерения и готовые типы величин.
package units

import "github.com/bendichter/aind-data-schema/internal/vocab"

var (
	Size = vocab.MustEnum("SizeUnit",
		vocab.Label("M", "meter"),
		vocab.Label("CM", "centimeter"),
		vocab.Label("MM", "millimeter"),
		vocab.Label("UM", "micrometer"),
		vocab.Label("NM", "nanometer"),
		vocab.Label("IN", "inch"),
		vocab.Label("PX", "pixel"),
	)
	Mass = vocab.MustEnum("MassUnit",
		vocab.Label("KG", "kilogram"),
		vocab.Label("G", "gram"),
		vocab.Label("MG", "milligram"),
		vocab.Label("UG", "microgram"),
		vocab.Label("NG", "nanogram"),
	)
	Frequency = vocab.MustEnum("FrequencyUnit",
		vocab.Label("KHZ", "kilohertz"),
		vocab.Label("HZ", "hertz"),
		vocab.Label("mHZ", "millihertz"),
	)
	Volume = vocab.MustEnum("VolumeUnit",
		vocab.Label("L", "liter"),
		vocab.Label("ML", "milliliter"),
		vocab.Label("UL", "microliter"),
		vocab.Label("NL", "nanoliter"),
	)
	Angle = vocab.MustEnum("AngleUnit",
		vocab.Label("RAD", "radians"),
		vocab.Label("DEG", "degrees"),
	)
	Time = vocab.MustEnum("TimeUnit",
		vocab.Label("HR", "hour"),
		vocab.Label("M", "minute"),
		vocab.Label("S", "second"),
		vocab.Label("MS", "millisecond"),
		vocab.Label("US", "microsecond"),
		vocab.Label("NS", "nanosecond"),
	)
	Power = vocab.MustEnum("PowerUnit",
		vocab.Label("UW", "microwatt"),
		vocab.Label("MW", "milliwatt"),
	)
	Current = vocab.MustEnum("CurrentUnit",
		vocab.Label("UA", "microamps"),
	)
)

var (
	SizeM  = Size.MustTag("M")
	SizeCM = Size.MustTag("CM")
	SizeMM = Size.MustTag("MM")
	SizeUM = Size.MustTag("UM")
	SizeNM = Size.MustTag("NM")
	SizeIN = Size.MustTag("IN")
	SizePX = Size.MustTag("PX")

	MassKG = Mass.MustTag("KG")
	MassG  = Mass.MustTag("G")
	MassMG = Mass.MustTag("MG")
	MassUG = Mass.MustTag("UG")
	MassNG = Mass.MustTag("NG")

	FreqKHZ = Frequency.MustTag("KHZ")
	FreqHZ  = Frequency.MustTag("HZ")
	FreqMHZ = Frequency.MustTag("mHZ") // миллигерц

	VolL  = Volume.MustTag("L")
	VolML = Volume.MustTag("ML")
	VolUL = Volume.MustTag("UL")
	VolNL = Volume.MustTag("NL")

	AngleRAD = Angle.MustTag("RAD")
	AngleDEG = Angle.MustTag("DEG")

	TimeHR = Time.MustTag("HR")
	TimeM  = Time.MustTag("M")
	TimeS  = Time.MustTag("S")
	TimeMS = Time.MustTag("MS")
	TimeUS = Time.MustTag("US")
	TimeNS = Time.MustTag("NS")

	PowerUW = Power.MustTag("UW")
	PowerMW = Power.MustTag("MW")

	CurrentUA = Current.MustTag("UA")
)

// Families — все семейства единиц в порядке объявления.
func Families() []*vocab.Enum {
	return []*vocab.Enum{Size, Mass, Frequency, Volume, Angle, Time, Power, Current}
}
