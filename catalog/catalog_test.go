package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeOverlay(t *testing.T, dir, category, file, content string) {
	t.Helper()
	sub := filepath.Join(dir, category)
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", sub, err)
	}
	if err := os.WriteFile(filepath.Join(sub, file), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", file, err)
	}
}

func TestRegistryListings(t *testing.T) {
	r := New()

	cases := []struct {
		category string
		list     func() ([]string, error)
		want     string
	}{
		{"transceivers", r.Transceivers, "uhf-cubesat"},
		{"antennas", r.Antennas, "uhf-monopole"},
		{"groundstations", r.GroundStations, "svalbard"},
		{"bands", r.Bands, "x-band"},
		{"missions", r.Missions, "uhf-cubesat-demo"},
	}
	for _, tc := range cases {
		t.Run(tc.category, func(t *testing.T) {
			names, err := tc.list()
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(names) == 0 {
				t.Fatal("no embedded datasheets found")
			}
			if !sort.StringsAreSorted(names) {
				t.Errorf("names not sorted: %v", names)
			}
			found := false
			for _, n := range names {
				if n == tc.want {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q among %v", tc.want, names)
			}
		})
	}
}

func TestTransceiverLookup(t *testing.T) {
	r := New()

	trx, err := r.Transceiver("uhf-cubesat")
	if err != nil {
		t.Fatalf("Transceiver: %v", err)
	}
	if trx.Name != "uhf-cubesat" {
		t.Errorf("Name = %q", trx.Name)
	}
	if trx.FrequencyHz != 437.25e6 {
		t.Errorf("FrequencyHz = %g, want 437.25e6", trx.FrequencyHz)
	}
	if trx.TxPowerDBm != 33.0 {
		t.Errorf("TxPowerDBm = %g, want 33", trx.TxPowerDBm)
	}
	if trx.Modulation != "BPSK" {
		t.Errorf("Modulation = %q", trx.Modulation)
	}
}

func TestGroundStationLookup(t *testing.T) {
	r := New()

	gs, err := r.GroundStation("svalbard")
	if err != nil {
		t.Fatalf("GroundStation: %v", err)
	}
	if gs.Operator != "KSAT" {
		t.Errorf("Operator = %q", gs.Operator)
	}
	if gs.LatitudeDeg < 78 || gs.LatitudeDeg > 79 {
		t.Errorf("LatitudeDeg = %g, want polar", gs.LatitudeDeg)
	}
	if len(gs.FrequencyBands) != 2 {
		t.Errorf("FrequencyBands = %v, want s-band and x-band", gs.FrequencyBands)
	}
}

func TestBandAllocations(t *testing.T) {
	r := New()

	xband, err := r.Band("x-band")
	if err != nil {
		t.Fatalf("Band: %v", err)
	}
	if !xband.ContainsDownlink(8.2e9) {
		t.Error("8.2 GHz should sit inside the X-band downlink allocation")
	}
	if xband.ContainsDownlink(2.2e9) {
		t.Error("2.2 GHz should not sit inside the X-band downlink allocation")
	}
	if xband.ContainsUplink(2.05e9) {
		t.Error("a band with no uplink allocation should contain no uplink frequency")
	}

	sband, err := r.Band("s-band")
	if err != nil {
		t.Fatalf("Band: %v", err)
	}
	if !sband.ContainsUplink(2.05e9) {
		t.Error("2.05 GHz should sit inside the S-band uplink allocation")
	}
}

func TestLookupUnknownName(t *testing.T) {
	r := New()

	_, err := r.Transceiver("no-such-radio")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "uhf-cubesat") {
		t.Errorf("error should list available names, got %q", err)
	}

	if _, err := r.Mission("no-such-mission"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Mission err = %v, want ErrNotFound", err)
	}
}

func TestDatasheetDefaults(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "transceivers", "bare.json", `{"frequency_hz": 1e9}`)
	writeOverlay(t, dir, "antennas", "bare.json", `{"type": "patch"}`)
	writeOverlay(t, dir, "groundstations", "bare.json", `{"latitude_deg": 10}`)
	r := NewWithOverlay(dir)

	trx, err := r.Transceiver("bare")
	if err != nil {
		t.Fatalf("Transceiver: %v", err)
	}
	if trx.Name != "bare" {
		t.Errorf("Name = %q, want file stem", trx.Name)
	}
	if trx.RxSensitivityDBm != defaultRxSensitivityDBm {
		t.Errorf("RxSensitivityDBm = %g", trx.RxSensitivityDBm)
	}
	if trx.DataRateBps != defaultDataRateBps || trx.Modulation != defaultModulation {
		t.Errorf("rate/modulation = %g/%q, want defaults", trx.DataRateBps, trx.Modulation)
	}

	ant, err := r.Antenna("bare")
	if err != nil {
		t.Fatalf("Antenna: %v", err)
	}
	if ant.BeamwidthDeg != defaultBeamwidthDeg {
		t.Errorf("BeamwidthDeg = %g", ant.BeamwidthDeg)
	}
	if ant.Efficiency != defaultEfficiency || ant.NumElements != defaultNumElements {
		t.Errorf("efficiency/elements = %g/%d, want defaults", ant.Efficiency, ant.NumElements)
	}
	if ant.Polarization != defaultAntennaPolarization {
		t.Errorf("Polarization = %q", ant.Polarization)
	}

	gs, err := r.GroundStation("bare")
	if err != nil {
		t.Fatalf("GroundStation: %v", err)
	}
	if gs.MinElevationDeg != defaultMinElevationDeg {
		t.Errorf("MinElevationDeg = %g", gs.MinElevationDeg)
	}
	if gs.SystemNoiseTempK != defaultSystemNoiseTempK || gs.LNANoiseFigureDB != defaultLNANoiseFigureDB {
		t.Errorf("noise temp/LNA NF = %g/%g, want defaults", gs.SystemNoiseTempK, gs.LNANoiseFigureDB)
	}
	if gs.AntennaType != defaultStationAntennaType || gs.Polarization != defaultStationPolarization {
		t.Errorf("antenna type/polarization = %q/%q, want defaults", gs.AntennaType, gs.Polarization)
	}
}

func TestOverlayReplacesAndAdds(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "transceivers", "uhf-cubesat.json",
		`{"frequency_hz": 437e6, "tx_power_dbm": 27}`)
	writeOverlay(t, dir, "transceivers", "custom-radio.json",
		`{"frequency_hz": 915e6, "tx_power_dbm": 30}`)
	r := NewWithOverlay(dir)

	trx, err := r.Transceiver("uhf-cubesat")
	if err != nil {
		t.Fatalf("Transceiver: %v", err)
	}
	if trx.TxPowerDBm != 27 {
		t.Errorf("overlay should replace embedded entry, TxPowerDBm = %g", trx.TxPowerDBm)
	}

	custom, err := r.Transceiver("custom-radio")
	if err != nil {
		t.Fatalf("Transceiver: %v", err)
	}
	if custom.FrequencyHz != 915e6 {
		t.Errorf("FrequencyHz = %g", custom.FrequencyHz)
	}

	names, err := r.Transceivers()
	if err != nil {
		t.Fatalf("Transceivers: %v", err)
	}
	haveCustom, haveEmbedded := false, false
	for _, n := range names {
		switch n {
		case "custom-radio":
			haveCustom = true
		case "sband-smallsat":
			haveEmbedded = true
		}
	}
	if !haveCustom || !haveEmbedded {
		t.Errorf("listing should merge overlay and embedded names, got %v", names)
	}
}

func TestDatasheetValidation(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "transceivers", "broken.json", `{not json`)
	writeOverlay(t, dir, "transceivers", "silent.json", `{"tx_power_dbm": 30}`)
	writeOverlay(t, dir, "antennas", "untyped.json", `{"gain_dbi": 3}`)
	r := NewWithOverlay(dir)

	if _, err := r.Transceiver("broken"); err == nil || !strings.Contains(err.Error(), "decode failed") {
		t.Errorf("broken JSON err = %v", err)
	}
	if _, err := r.Transceiver("silent"); err == nil || !strings.Contains(err.Error(), "frequency_hz") {
		t.Errorf("missing frequency err = %v", err)
	}
	if _, err := r.Antenna("untyped"); err == nil || !strings.Contains(err.Error(), "type is required") {
		t.Errorf("missing type err = %v", err)
	}
}

func TestMissionPresetBytes(t *testing.T) {
	r := New()

	raw, err := r.Mission("uhf-cubesat-demo")
	if err != nil {
		t.Fatalf("Mission: %v", err)
	}
	for _, want := range []string{"frequency_hz", "orbit", "ground_station: wallops"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("preset should contain %q", want)
		}
	}
}
