package device

import "github.com/bendichter/aind-data-schema/internal/schema"

// Базовый адрес исходников типов; попадает в поле describedBy.
const describedByBase = "https://raw.githubusercontent.com/AllenNeuralDynamics/aind-data-schema/main/src/aind_data_schema/"

// Rig — описание установки целиком. Записывается в <prefix>_rig.json.
var Rig = schema.MustCoreEntity("Rig", "0.1.0", describedByBase+"rig.py",
	schema.Text("rig_id", "Rig ID").Req(),
	schema.Date("modification_date", "Date of modification").Req(),
	schema.ListOf("modalities", "Modalities", schema.EnumOf("", "", Modality)).UniqueItems().Req(),
	schema.OneOf("mouse_platform", "Mouse platform", Disc, Treadmill, Tube).Req(),
	schema.ListOf("stimulus_devices", "Stimulus devices", schema.OneOf("", "", Monitor)).UniqueItems(),
	schema.ListOf("cameras", "Camera assemblies", schema.Nested("", "", CameraAssembly)).UniqueItems(),
	schema.ListOf("daqs", "Data acquisition devices", schema.OneOf("", "", HarpDevice, DAQDevice)),
	schema.ListOf("patch_cords", "Patch cords", schema.Nested("", "", Patch)).UniqueItems(),
	schema.ListOf("light_sources", "Light sources", schema.OneOf("", "", Laser, LightEmittingDiode)).UniqueItems(),
	schema.ListOf("detectors", "Detectors", schema.Nested("", "", Detector)).UniqueItems(),
	schema.ListOf("objectives", "Objectives", schema.Nested("", "", Objective)).UniqueItems(),
	schema.ListOf("filters", "Filters", schema.Nested("", "", Filter)).UniqueItems(),
	schema.ListOf("lenses", "Lenses", schema.Nested("", "", Lens)).UniqueItems(),
	schema.ListOf("additional_devices", "Additional devices", schema.Nested("", "", Device)).UniqueItems(),
	schema.ListOf("calibrations", "Full calibration of devices", schema.Nested("", "", Calibration)).UniqueItems().Req(),
	schema.Text("ccf_coordinate_transform", "CCF coordinate transform"),
	schema.Text("notes", "Notes"),
)
