package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/core"
	"github.com/signalsfoundry/satlink-simulator/mission"
)

// TestIntegration_PresetMission runs a short simulation end to end through
// the same preset path the CLI takes.
func TestIntegration_PresetMission(t *testing.T) {
	reg := catalog.New()

	cfg, err := loadConfig(reg, "", "uhf-cubesat-demo")
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Name != "uhf-cubesat-demo" {
		t.Fatalf("cfg.Name = %q, want uhf-cubesat-demo", cfg.Name)
	}

	// Shrink the preset's 24 orbits so the test stays quick.
	cfg.Simulation.DurationOrbits = 2
	cfg.Simulation.DtS = 5
	cfg.Simulation.ContactDtS = 30

	m, err := mission.Build(cfg, reg)
	if err != nil {
		t.Fatalf("mission.Build error: %v", err)
	}

	res, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if res.DurationS < 10000 || res.DurationS > 13000 {
		t.Errorf("DurationS = %v, want about two 550 km orbital periods", res.DurationS)
	}
	if res.TimeStepS != 5 {
		t.Errorf("TimeStepS = %v, want the overridden 5", res.TimeStepS)
	}
	if res.ContactStepS != 30 {
		t.Errorf("ContactStepS = %v, want the overridden 30", res.ContactStepS)
	}
	if res.FrequencyHz != 437.25e6 {
		t.Errorf("FrequencyHz = %v, want 437.25e6", res.FrequencyHz)
	}
	if res.PassCount != len(res.Windows) {
		t.Errorf("PassCount = %d but %d windows", res.PassCount, len(res.Windows))
	}
	for _, w := range res.Windows {
		if w.SetTimeS <= w.RiseTimeS {
			t.Errorf("window rise %v >= set %v", w.RiseTimeS, w.SetTimeS)
		}
	}
	if res.PassCount > 0 && res.TotalContactTimeS <= 0 {
		t.Errorf("TotalContactTimeS = %v with %d passes", res.TotalContactTimeS, res.PassCount)
	}
}

func TestLoadConfigSourceSelection(t *testing.T) {
	reg := catalog.New()

	if _, err := loadConfig(reg, "mission.yaml", "uhf-cubesat-demo"); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("both sources: err = %v, want ErrConfiguration", err)
	}
	if _, err := loadConfig(reg, "", ""); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("no source: err = %v, want ErrConfiguration", err)
	}

	_, err := loadConfig(reg, "", "no-such-preset")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("unknown preset: err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "no-such-preset") {
		t.Fatalf("unknown preset error %q does not name the preset", err)
	}
}

func TestOffsetClock(t *testing.T) {
	cases := []struct {
		offsetS float64
		want    string
	}{
		{0, "00:00:00"},
		{59.6, "00:01:00"},
		{3661.4, "01:01:01"},
		{86399, "23:59:59"},
	}
	for _, tc := range cases {
		if got := offsetClock(tc.offsetS); got != tc.want {
			t.Errorf("offsetClock(%v) = %q, want %q", tc.offsetS, got, tc.want)
		}
	}
}
