package device

import (
	"github.com/bendichter/aind-data-schema/internal/schema"
	"github.com/bendichter/aind-data-schema/internal/units"
)

var (
	CcfCoords = schema.MustEntity("CcfCoords",
		schema.Float("ml", "ML").Req(),
		schema.Float("ap", "AP").Req(),
		schema.Float("dv", "DV").Req(),
		schema.EnumOf("unit", "Coordinate unit", units.Size).WithDefault(units.SizeUM),
		schema.EnumOf("ccf_version", "CCF version", CcfVersion).WithDefault(CCFv3),
	)

	// LaserConfig — настройка лазера в потоке сессии; не путать с устройством Laser.
	LaserConfig = schema.MustEntity("LaserConfig",
		schema.Text("name", "Name").Req(),
		schema.Int("wavelength", "Wavelength").Req(),
		schema.EnumOf("wavelength_unit", "Wavelength unit", units.Size).WithDefault(units.SizeNM),
		schema.Float("power", "Power").Req(),
		schema.EnumOf("power_unit", "Power unit", units.Power).WithDefault(units.PowerMW),
		schema.Nested("manipulator_coordinates", "Manipulator coordinates", units.CoordValue3D).Req(),
		schema.Text("targeted_structure", "Targeted structure"),
		schema.Nested("targeted_ccf_coordinates", "Targeted CCF coordinates", CcfCoords),
	)

	EphysProbe = schema.MustEntity("EphysProbe",
		schema.Text("name", "Name").Req(),
		schema.Text("tip_targeted_structure", "Tip targeted structure").Req(),
		schema.Nested("manipulator_coordinates", "Manipulator coordinates", units.CoordValue3D).Req(),
		schema.ListOf("other_targeted_structures", "Other targeted structures", schema.Text("", "")),
		schema.Nested("targeted_ccf_coordinates", "Targeted CCF coordinates", CcfCoords),
	)

	Stream = schema.MustEntity("Stream",
		schema.DateTime("stream_start_time", "Stream start time").Req(),
		schema.DateTime("stream_stop_time", "Stream stop time").Req(),
		schema.ListOf("probes", "Probes", schema.Nested("", "", EphysProbe)).UniqueItems(),
		schema.ListOf("lasers", "Lasers", schema.Nested("", "", LaserConfig)).UniqueItems(),
	)

	// EphysSession — сессия записи электрофизиологии. Записывается в <prefix>_ephyssession.json.
	EphysSession = schema.MustCoreEntity("EphysSession", "0.3.0", describedByBase+"ephys/ephys_session.py",
		schema.Text("experimenter_full_name", "Experimenter full name").Req(),
		schema.DateTime("session_start_time", "Session start time").Req(),
		schema.DateTime("session_end_time", "Session end time").Req(),
		schema.Int("subject_id", "Subject ID").Req(),
		schema.EnumOf("session_type", "Session type", SessionType).Req(),
		schema.Text("session_description", "Session description"),
		schema.Text("stimulus_protocol_id", "Stimulus protocol ID"),
		schema.Text("iacuc_protocol", "IACUC protocol"),
		schema.Text("rig_id", "Rig ID").Req(),
		schema.ListOf("expected_data_streams", "Expected data streams", schema.EnumOf("", "", ExpectedDataStream)),
		schema.ListOf("probe_streams", "Probe streams", schema.Nested("", "", Stream)).UniqueItems().Req(),
		schema.Text("ccf_coordinate_transform", "CCF coordinate transform"),
		schema.Text("notes", "Notes"),
	)
)

// Sessions — типы записей сессии.
func Sessions() []*schema.Entity {
	return []*schema.Entity{CcfCoords, LaserConfig, EphysProbe, Stream, EphysSession}
}
