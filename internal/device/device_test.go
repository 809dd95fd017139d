package device

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendichter/aind-data-schema/internal/schema"
	"github.com/bendichter/aind-data-schema/internal/units"
	"github.com/bendichter/aind-data-schema/internal/vocab"
)

type obj = map[string]any

func v(x any) obj { return obj{"value": x} }

func fipCamera(n string) obj {
	return obj{
		"name":               "ELP Camera USB 1080P Infrared Webcam " + n,
		"serial_number":      "TBD",
		"manufacturer":       Ailipu,
		"model":              "ELP-USBFHD05MT-KL170IR",
		"notes":              "The light intensity sensor was removed; IR illumination is constantly on",
		"data_interface":     "USB",
		"computer_name":      "W10DTJK7N0M3",
		"max_frame_rate":     v(120),
		"pixel_width":        v(640),
		"pixel_height":       v(480),
		"chroma":             "Color",
		"recording_software": obj{"name": "Bonsai", "version": "2.5"},
	}
}

func fipDetector(channel string) obj {
	return obj{
		"name":           "FLIR CMOS for " + channel + " Channel",
		"serial_number":  "21396991",
		"manufacturer":   FLIR,
		"model":          "BFS-U3-20S40M",
		"detector_type":  "Camera",
		"data_interface": "USB",
		"cooling":        "air",
		"immersion":      "air",
		"bin_width":      4,
		"bin_height":     4,
		"bin_mode":       "additive",
		"crop_width":     200,
		"crop_height":    200,
		"gain":           2,
		"chroma":         "Monochrome",
		"bit_depth":      16,
	}
}

func fipChannel(i int, device string) obj {
	return obj{
		"event_based_sampling": false,
		"channel_name":         []string{"AI0", "AI1", "AI2"}[i],
		"device_name":          device,
		"channel_type":         "Analog Input",
		"port":                 i,
		"channel_index":        i,
		"sample_rate":          v(1000),
	}
}

// fipRig — установка фотометрии с двумя камерами поведения.
func fipRig() obj {
	return obj{
		"rig_id":            "428_FIP1_2",
		"modification_date": time.Date(2023, 10, 3, 0, 0, 0, 0, time.UTC),
		"modalities":        []any{ModalityFib},
		"cameras": []any{
			obj{
				"camera_assembly_name": "BehaviorVideography_FaceSide",
				"camera_target":        CameraTarget.MustTag("FACE_SIDE"),
				"camera":               fipCamera("1"),
				"lens": obj{
					"name": "Xenocam 1", "model": "XC0922LENS", "serial_number": "unknown",
					"manufacturer": OtherManufacturer, "max_aperture": "f/1.4",
					"notes": `Focal Length 9-22mm 1/3" IR F1.4`,
				},
			},
			obj{
				"camera_assembly_name": "BehaviorVideography_FaceBottom",
				"camera_target":        "Face bottom",
				"camera":               fipCamera("2"),
				"lens": obj{
					"name": "Xenocam 2", "model": "XC0922LENS", "serial_number": "unknown",
					"manufacturer": "Other", "max_aperture": "f/1.4",
				},
			},
		},
		"patch_cords": []any{obj{
			"name":               "Bundle Branching Fiber-optic Patch Cord",
			"manufacturer":       Doric,
			"model":              "BBP(4)_200/220/900-0.37_Custom_FCM-4xMF1.25",
			"core_diameter":      200,
			"numerical_aperture": "0.37",
		}},
		"light_sources": []any{
			obj{"name": "470nm LED", "manufacturer": Thorlabs, "model": "M470F3", "wavelength": v(470)},
			obj{"name": "415nm LED", "manufacturer": Thorlabs, "model": "M415F3", "wavelength": v(415)},
			obj{"name": "565nm LED", "manufacturer": Thorlabs, "model": "M565F3", "wavelength": v(565)},
		},
		"detectors": []any{fipDetector("Green"), fipDetector("Red")},
		"objectives": []any{obj{
			"name":               "Nikon 10x Objective",
			"serial_number":      "128022336",
			"manufacturer":       Nikon,
			"model":              "CFI Plan Apochromat Lambda D 10x",
			"numerical_aperture": 0.45,
			"magnification":      10,
			"immersion":          "air",
		}},
		"filters": []any{
			obj{
				"name": "Green emission bandpass filter", "manufacturer": Semrock, "model": "FF01-520/35-25",
				"filter_type": "Band pass", "center_wavelength": v(520), "filter_diameter": v(25),
			},
			obj{
				"name": "Emission Dichroic", "manufacturer": Semrock, "model": "FF562-Di03-25x36",
				"filter_type": "Dichroic", "filter_size": obj{"width": 36, "height": 25},
				"cut_off_wavelength": v(562),
			},
			obj{
				"name": "450nm, 25.2 x 35.6mm, Dichroic Longpass Filter", "manufacturer": EdmundOptics,
				"model": "#69-898", "filter_type": "Dichroic", "cut_off_wavelength": v(450),
				"filter_size": obj{"width": "35.6", "height": "25.2"},
			},
		},
		"lenses": []any{obj{
			"manufacturer": Thorlabs,
			"model":        "AC254-080-A-ML",
			"name":         "Image focusing lens",
			"focal_length": v(80),
			"size":         v(1),
		}},
		"daqs": []any{obj{
			"name":           "USB DAQ",
			"manufacturer":   NationalInstruments,
			"model":          "USB-6212",
			"notes":          "To record behavior events and licks via AnalogInput node in Bonsai",
			"data_interface": "USB",
			"computer_name":  "W10DTJK7N0M3",
			"channels": []any{
				fipChannel(0, "Bpod DO"),
				fipChannel(1, "Janelia lick-o-meter circuit board, Left"),
				fipChannel(2, "Janelia lick-o-meter circuit board, Right"),
			},
		}},
		"mouse_platform": obj{"radius": v(8.5)},
		"calibrations": []any{obj{
			"calibration_date": time.Date(2023, 10, 2, 3, 15, 22, 0, time.UTC),
			"device_name":      "470nm LED",
			"description":      "LED calibration",
			"input":            obj{"Power setting": []int{1, 2, 3}},
			"output":           obj{"Power mW": []int{5, 10, 13}},
		}},
	}
}

func TestFipRigRoundTrip(t *testing.T) {
	r, err := Rig.New(fipRig())
	require.NoError(t, err)

	mp, _ := r.Get("mouse_platform")
	assert.Equal(t, "Disc", mp.(*schema.Record).Entity().Name())
	radius, _ := mp.(*schema.Record).Get("radius")
	unit, _ := radius.(*schema.Record).Get("unit")
	assert.Equal(t, units.SizeCM, unit)

	ls, _ := r.Get("light_sources")
	for _, it := range ls.([]any) {
		assert.Equal(t, "LightEmittingDiode", it.(*schema.Record).Entity().Name())
	}
	daqs, _ := r.Get("daqs")
	assert.Equal(t, "DAQDevice", daqs.([]any)[0].(*schema.Record).Entity().Name())

	data, err := r.ToJSON()
	require.NoError(t, err)
	back, err := Rig.FromJSON(data)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))

	again, err := back.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestFipRigWriteStandardFile(t *testing.T) {
	r, err := Rig.New(fipRig())
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := r.WriteStandardFileTo(dir, "fip_ophys")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fip_ophys_rig.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"describedBy": "`+describedByBase+`rig.py"`)
	assert.Contains(t, string(data), `"schema_version": "0.1.0"`)
	assert.Contains(t, string(data), `"modalities": [`+"\n"+`      "Fiber photometry"`)
}

func TestRigRequiresCalibrations(t *testing.T) {
	in := fipRig()
	delete(in, "calibrations")
	_, err := Rig.New(in)
	var ve *schema.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"calibrations"}, ve.Fields())
}

func TestRigModalitiesUnique(t *testing.T) {
	in := fipRig()
	in["modalities"] = []any{"Fiber photometry", ModalityFib}
	_, err := Rig.New(in)
	assert.ErrorIs(t, err, schema.ErrDuplicateItem)
}

func TestManufacturerIdentity(t *testing.T) {
	id := Thorlabs.Identity()
	assert.Equal(t, "Thorlabs", id.Name)
	assert.Equal(t, vocab.ROR, id.Registry)
	assert.Equal(t, "04gsnvb07", id.RegistryIdentifier)

	m, err := Manufacturer.ResolveByName("Teledyne FLIR")
	require.NoError(t, err)
	assert.Equal(t, FLIR, m)
	m, err = Manufacturer.ResolveByAbbreviation("OEPS")
	require.NoError(t, err)
	assert.Equal(t, OEPS, m)

	assert.Equal(t, EdmundOptics.Identity().RegistryIdentifier, FLIR.Identity().RegistryIdentifier)

	_, err = Manufacturer.ResolveByName("Thorlabs Inc")
	assert.ErrorIs(t, err, vocab.ErrNotFound)
}

func TestManufacturerSubsets(t *testing.T) {
	tests := []struct {
		entity  *schema.Entity
		subset  *vocab.Subset
		allowed []string
	}{
		{Camera, CameraManufacturers, []string{"Ailipu Technology Co", "Allied", "Basler", "Edmund Optics", "Teledyne FLIR", "The Imaging Source", "Thorlabs", "Other"}},
		{Lens, LensManufacturers, []string{"Computar", "Edmund Optics", "Thorlabs", "Other"}},
		{Filter, FilterManufacturers, []string{"Edmund Optics", "Chroma", "Semrock", "Thorlabs", "Other"}},
		{DAQDevice, DAQManufacturers, []string{"National Instruments", "Interuniversity Microelectronics Center", "Open Ephys Production Site", "Other"}},
		{Laser, LaserManufacturers, []string{"Coherent Scientific", "Hamamatsu", "Oxxius", "Quantifi", "Other"}},
		{LightEmittingDiode, LEDManufacturers, []string{"Doric", "Prizmatix", "Thorlabs", "Other"}},
		{Monitor, MonitorManufacturers, []string{"LG"}},
	}
	for _, tt := range tests {
		t.Run(tt.entity.Name(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.subset.Names())
			f, ok := tt.entity.Field("manufacturer")
			require.True(t, ok)
			assert.Same(t, tt.subset, f.Allowed)
			assert.True(t, f.Required)
		})
	}
}

func TestCameraRejectsForeignManufacturer(t *testing.T) {
	in := fipCamera("1")
	in["manufacturer"] = Nikon
	_, err := Camera.New(in)
	var ve *schema.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "manufacturer", ve.Errors[0].Field)
	assert.Equal(t, schema.CodeEnumInvalid, ve.Errors[0].Code)
	assert.ErrorIs(t, err, schema.ErrInvalidEnumMember)

	in["manufacturer"] = Basler
	r, err := Camera.New(in)
	require.NoError(t, err)
	m, _ := r.Get("manufacturer")
	assert.True(t, Manufacturer.Contains(m.(vocab.Member)))
}

func TestLightSourceKeepsItsType(t *testing.T) {
	led, err := LightEmittingDiode.New(obj{"name": "custom", "manufacturer": "Other", "wavelength": v(590)})
	require.NoError(t, err)
	ltype, _ := led.Get("lightsource_type")
	assert.Equal(t, "LED", ltype)

	in := fipRig()
	in["light_sources"] = []any{led}
	r, err := Rig.New(in)
	require.NoError(t, err)
	ls, _ := r.Get("light_sources")
	assert.Equal(t, "LightEmittingDiode", ls.([]any)[0].(*schema.Record).Entity().Name())

	data, err := r.ToJSON()
	require.NoError(t, err)
	back, err := Rig.FromJSON(data)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))

	_, err = Laser.New(obj{"manufacturer": "Oxxius", "wavelength": v(488), "lightsource_type": "LED"})
	assert.ErrorIs(t, err, schema.ErrFrozenField)
}

func TestHarpDeviceDefaults(t *testing.T) {
	r, err := HarpDevice.New(obj{
		"name":                "Harp Behavior",
		"computer_name":       "W10DT714046",
		"harp_device_type":    "Behavior",
		"harp_device_version": "1.1",
	})
	require.NoError(t, err)
	m, _ := r.Get("manufacturer")
	assert.Equal(t, OEPS, m)
	di, _ := r.Get("data_interface")
	assert.Equal(t, USB, di)

	_, err = HarpDevice.New(obj{
		"computer_name":       "W10DT714046",
		"harp_device_type":    "Behavior",
		"harp_device_version": "1.1",
		"data_interface":      "Ethernet",
	})
	assert.ErrorIs(t, err, schema.ErrFrozenField)

	in := fipRig()
	in["daqs"] = []any{r}
	rig, err := Rig.New(in)
	require.NoError(t, err)
	daqs, _ := rig.Get("daqs")
	assert.Equal(t, "HarpDevice", daqs.([]any)[0].(*schema.Record).Entity().Name())
}

func TestMonitorRanges(t *testing.T) {
	in := obj{
		"manufacturer":     LG,
		"refresh_rate":     v(60),
		"size":             obj{"width": 1920, "height": 1200},
		"viewing_distance": v(15.5),
		"contrast":         101,
	}
	_, err := Monitor.New(in)
	assert.ErrorIs(t, err, schema.ErrOutOfRange)

	in["contrast"] = 80
	r, err := Monitor.New(in)
	require.NoError(t, err)
	size, _ := r.Get("size")
	w, _ := size.(*schema.Record).Get("width")
	assert.Equal(t, int64(1920), w)
}

func TestModalityByAbbreviation(t *testing.T) {
	m, err := Modality.ResolveByAbbreviation("fib")
	require.NoError(t, err)
	assert.Equal(t, ModalityFib, m)
	assert.Equal(t, "Fiber photometry", m.Name())

	for _, m := range Modality.Members() {
		got, err := Modality.ResolveByName(m.Name())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func ephysSession() obj {
	coords := obj{"x": 1000, "y": 1000, "z": 1000}
	return obj{
		"experimenter_full_name": "Jane Doe",
		"session_start_time":     "2023-01-10T08:40:00Z",
		"session_end_time":       "2023-01-10T09:46:00Z",
		"subject_id":             100001,
		"session_type":           "Test",
		"iacuc_protocol":         "1294",
		"rig_id":                 "323_EPHYS1",
		"expected_data_streams":  []any{"Neuropixels probes", "Face camera"},
		"probe_streams": []any{obj{
			"stream_start_time": "2023-01-10T08:43:00Z",
			"stream_stop_time":  "2023-01-10T09:43:00Z",
			"probes": []any{
				obj{"name": "Probe A", "tip_targeted_structure": "VISp", "manipulator_coordinates": coords},
				obj{
					"name": "Probe B", "tip_targeted_structure": "VISl", "manipulator_coordinates": coords,
					"targeted_ccf_coordinates": obj{"ml": 1.5, "ap": -2, "dv": 3.25},
				},
			},
			"lasers": []any{obj{
				"name": "Red Laser", "wavelength": 700, "power": 100,
				"manipulator_coordinates": coords, "targeted_structure": "VISp",
			}},
		}},
	}
}

func TestEphysSessionRoundTrip(t *testing.T) {
	r, err := EphysSession.New(ephysSession())
	require.NoError(t, err)

	streams, _ := r.Get("probe_streams")
	probes, _ := streams.([]any)[0].(*schema.Record).Get("probes")
	ccf, _ := probes.([]any)[1].(*schema.Record).Get("targeted_ccf_coordinates")
	ver, _ := ccf.(*schema.Record).Get("ccf_version")
	assert.Equal(t, CCFv3, ver)
	u, _ := ccf.(*schema.Record).Get("unit")
	assert.Equal(t, units.SizeUM, u)

	data, err := r.ToJSON()
	require.NoError(t, err)
	back, err := EphysSession.FromJSON(data)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))

	assert.Equal(t, "ephys_ephyssession.json", EphysSession.StandardFileName("ephys"))
	assert.Equal(t, "0.3.0", EphysSession.SchemaVersion())
}

func TestEphysSessionRejectsWrongVersion(t *testing.T) {
	in := ephysSession()
	in["schema_version"] = "0.2.0"
	in["subject_id"] = "mouse"
	_, err := EphysSession.New(in)
	var ve *schema.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ElementsMatch(t, []string{"schema_version", "subject_id"}, ve.Fields())
	assert.ErrorIs(t, err, schema.ErrFrozenField)
}

func TestCatalogLintsClean(t *testing.T) {
	cat, err := Catalog()
	require.NoError(t, err)
	assert.Empty(t, cat.Lint())

	fqn, e, ok := cat.Entity("rig.Rig")
	require.True(t, ok)
	assert.Equal(t, "rig.Rig", fqn)
	assert.Same(t, Rig, e)

	_, ok = cat.Enum("manufacturer")
	assert.True(t, ok)
	_, ok = cat.Enum("SizeUnit")
	assert.True(t, ok)
}
