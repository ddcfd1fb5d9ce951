package mission

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/core"
)

func TestBuildInlineMission(t *testing.T) {
	m, err := Build(validConfig(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Engine == nil {
		t.Fatal("Build returned no engine")
	}
	if m.Station.Name != "Custom" {
		t.Errorf("Station.Name = %q", m.Station.Name)
	}
	if m.Station.LatitudeDeg != 45 {
		t.Errorf("Station.LatitudeDeg = %g, want the atmosphere latitude", m.Station.LatitudeDeg)
	}
	if m.Station.MinElevationDeg != defaultMinElevationDeg {
		t.Errorf("Station.MinElevationDeg = %g", m.Station.MinElevationDeg)
	}
	if m.Evaluator.Tx.PowerDBW != 3.0 {
		t.Errorf("Tx.PowerDBW = %g, want 3 for 33 dBm", m.Evaluator.Tx.PowerDBW)
	}
	if m.Evaluator.Rx.AntennaGainDBi != 14 || m.Evaluator.Rx.SystemNoiseTempK != 500 {
		t.Errorf("receive chain = %+v, want the inline values", m.Evaluator.Rx)
	}
	// Uncoded BPSK at 1e-5 needs about 9.6 dB; plus 1 dB implementation loss.
	if got := m.Evaluator.RequiredEbN0DB; got < 10 || got > 11.5 {
		t.Errorf("RequiredEbN0DB = %g, want about 10.6", got)
	}
}

func TestBuildCatalogReferences(t *testing.T) {
	cfg := validConfig()
	cfg.FrequencyHz = 437.25e6
	cfg.Transmitter.Transceiver = "uhf-cubesat"
	cfg.Transmitter.Antenna = "uhf-monopole"
	cfg.Transmitter.FeedLossDB = 0.5
	cfg.Transmitter.PointingErrorDeg = 10
	cfg.Transmitter.PowerDBm = 20 // overridden by the datasheet
	cfg.Receiver.GroundStation = "wallops"
	cfg.Receiver.AntennaGainDBi = 3    // overridden by the datasheet
	cfg.Receiver.SystemNoiseTempK = 90 // overridden by the datasheet

	m, err := Build(cfg, catalog.New())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Station.Name != "wallops" {
		t.Errorf("Station.Name = %q", m.Station.Name)
	}
	if math.Abs(m.Station.LatitudeDeg-37.94) > 1e-9 {
		t.Errorf("Station.LatitudeDeg = %g", m.Station.LatitudeDeg)
	}
	if m.Evaluator.Tx.PowerDBW != 3.0 {
		t.Errorf("Tx.PowerDBW = %g, want the datasheet's 33 dBm", m.Evaluator.Tx.PowerDBW)
	}
	if m.Evaluator.Tx.AntennaGainDBi != 5.15 {
		t.Errorf("Tx.AntennaGainDBi = %g, want the monopole's 5.15", m.Evaluator.Tx.AntennaGainDBi)
	}
	wantPointing := 12 * math.Pow(10.0/120.0, 2)
	if math.Abs(m.Evaluator.Tx.PointingLossDB-wantPointing) > 1e-9 {
		t.Errorf("Tx.PointingLossDB = %g, want %g from the datasheet beamwidth", m.Evaluator.Tx.PointingLossDB, wantPointing)
	}
	if m.Evaluator.Rx.AntennaGainDBi != 14 || m.Evaluator.Rx.SystemNoiseTempK != 500 {
		t.Errorf("receive chain = %+v, want the wallops datasheet values", m.Evaluator.Rx)
	}
}

func TestBuildReceiverPointing(t *testing.T) {
	// Svalbard carries a 3.7 m dish: at 8.2 GHz the beamwidth is
	// 21/(8.2*3.7) deg, so a 0.2 deg error costs about 1 dB.
	cfg := validConfig()
	cfg.FrequencyHz = 8.2e9
	cfg.Receiver.GroundStation = "svalbard"
	cfg.Receiver.PointingErrorDeg = 0.2

	m, err := Build(cfg, catalog.New())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bw := 21.0 / (8.2 * 3.7)
	want := 12 * math.Pow(0.2/bw, 2)
	if math.Abs(m.Evaluator.Rx.PointingLossDB-want) > 1e-9 {
		t.Errorf("Rx.PointingLossDB = %g, want %g", m.Evaluator.Rx.PointingLossDB, want)
	}

	// Wallops lists no dish diameter, so the error has no beamwidth to
	// lose against.
	cfg.Receiver.GroundStation = "wallops"
	m, err = Build(cfg, catalog.New())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Evaluator.Rx.PointingLossDB != 0 {
		t.Errorf("Rx.PointingLossDB = %g, want 0 without a dish diameter", m.Evaluator.Rx.PointingLossDB)
	}
}

func TestBuildUnknownComponent(t *testing.T) {
	cfg := validConfig()
	cfg.Transmitter.Transceiver = "no-such-radio"
	if _, err := Build(cfg, catalog.New()); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown transceiver err = %v, want catalog.ErrNotFound", err)
	}

	cfg = validConfig()
	cfg.Receiver.GroundStation = "no-such-site"
	if _, err := Build(cfg, catalog.New()); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown station err = %v, want catalog.ErrNotFound", err)
	}

	cfg = validConfig()
	cfg.Transmitter.Transceiver = "uhf-cubesat"
	if _, err := Build(cfg, nil); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("catalog reference without a registry err = %v, want ErrConfiguration", err)
	}
}

func TestBuildUnknownModemScheme(t *testing.T) {
	cfg := validConfig()
	cfg.Modem.Modulation = "64APSK"
	_, err := Build(cfg, nil)
	if !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
	if !strings.Contains(err.Error(), "64APSK") {
		t.Errorf("error should name the unknown modulation, got %q", err)
	}

	cfg = validConfig()
	cfg.Modem.Coding = "polar"
	if _, err := Build(cfg, nil); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("unknown coding err = %v, want ErrConfiguration", err)
	}
}

func TestMissionPresetEndToEnd(t *testing.T) {
	reg := catalog.New()
	raw, err := reg.Mission("uhf-cubesat-demo")
	if err != nil {
		t.Fatalf("Mission: %v", err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Name != "uhf-cubesat-demo" {
		t.Fatalf("Name = %q", cfg.Name)
	}

	m, err := Build(cfg, reg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.PassCount < 1 {
		t.Fatalf("PassCount = %d, want at least one pass over 24 orbits", res.PassCount)
	}
	if res.FrequencyHz != 437.25e6 {
		t.Errorf("FrequencyHz = %g", res.FrequencyHz)
	}
	if res.TotalDataBits <= 0 {
		t.Error("a closing UHF link should move data")
	}
	for i, w := range res.Windows {
		if w.RiseTimeS >= w.SetTimeS {
			t.Errorf("window %d: rise %g >= set %g", i, w.RiseTimeS, w.SetTimeS)
		}
		if len(w.Samples) == 0 {
			t.Errorf("window %d carries no samples", i)
		}
	}
}
