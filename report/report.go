// report/report.go

// Package report renders pass-simulation results as a fixed-width text
// report and as JSON. Output is deterministic for identical inputs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signalsfoundry/satlink-simulator/core"
)

// Pass is the per-window slice of a Summary.
type Pass struct {
	Number            int     `json:"number"`
	RiseTimeS         float64 `json:"rise_time_s"`
	SetTimeS          float64 `json:"set_time_s"`
	DurationS         float64 `json:"duration_s"`
	MaxElevationDeg   float64 `json:"max_elevation_deg"`
	MaxElevationTimeS float64 `json:"max_elevation_time_s"`
	PeakDopplerHz     float64 `json:"peak_doppler_hz"`
	MinMarginDB       float64 `json:"min_margin_db"`
	MaxMarginDB       float64 `json:"max_margin_db"`
	DataVolumeBits    float64 `json:"data_volume_bits"`
}

// Summary is the flattened, serializable view of a simulation result.
type Summary struct {
	Mission              string  `json:"mission,omitempty"`
	FrequencyHz          float64 `json:"frequency_hz"`
	DataRateBps          float64 `json:"data_rate_bps"`
	DurationS            float64 `json:"duration_s"`
	TimeStepS            float64 `json:"time_step_s"`
	ContactStepS         float64 `json:"contact_step_s"`
	PassCount            int     `json:"pass_count"`
	PassesPerDay         float64 `json:"passes_per_day"`
	TotalContactTimeS    float64 `json:"total_contact_time_s"`
	AveragePassDurationS float64 `json:"average_pass_duration_s"`
	DutyCyclePercent     float64 `json:"duty_cycle_percent"`
	TotalDataBits        float64 `json:"total_data_bits"`
	TotalDataMegabytes   float64 `json:"total_data_megabytes"`
	Passes               []Pass  `json:"passes"`
}

// Summarize flattens a result. The mission name may be empty.
func Summarize(mission string, res *core.PassSimulationResult) Summary {
	s := Summary{
		Mission:              mission,
		FrequencyHz:          res.FrequencyHz,
		DataRateBps:          res.DataRateBps,
		DurationS:            res.DurationS,
		TimeStepS:            res.TimeStepS,
		ContactStepS:         res.ContactStepS,
		PassCount:            res.PassCount,
		PassesPerDay:         res.PassesPerDay(),
		TotalContactTimeS:    res.TotalContactTimeS,
		AveragePassDurationS: res.AveragePassDurationS,
		TotalDataBits:        res.TotalDataBits,
		TotalDataMegabytes:   res.TotalDataBits / 8 / 1e6,
		Passes:               make([]Pass, 0, len(res.Windows)),
	}
	if res.DurationS > 0 {
		s.DutyCyclePercent = 100 * res.TotalContactTimeS / res.DurationS
	}
	for i, w := range res.Windows {
		s.Passes = append(s.Passes, Pass{
			Number:            i + 1,
			RiseTimeS:         w.RiseTimeS,
			SetTimeS:          w.SetTimeS,
			DurationS:         w.DurationS(),
			MaxElevationDeg:   w.MaxElevationDeg,
			MaxElevationTimeS: w.MaxElevationTimeS,
			PeakDopplerHz:     w.PeakDopplerHz(),
			MinMarginDB:       w.MinMarginDB(),
			MaxMarginDB:       w.MaxMarginDB(),
			DataVolumeBits:    w.DataVolumeBits(),
		})
	}
	return s
}

// Text renders the fixed-width report the CLI prints.
func Text(mission string, res *core.PassSimulationResult) string {
	s := Summarize(mission, res)

	rule := strings.Repeat("=", 70)
	thin := strings.Repeat("-", 40)
	wide := strings.Repeat("-", 70)

	lines := []string{
		rule,
		"SATELLITE LINK BUDGET - PASS SIMULATION REPORT",
		rule,
		"",
	}
	if s.Mission != "" {
		lines = append(lines, "Mission:             "+s.Mission)
	}
	lines = append(lines,
		fmt.Sprintf("Frequency:           %.1f MHz", s.FrequencyHz/1e6),
		fmt.Sprintf("Data Rate:           %.0f bps", s.DataRateBps),
		fmt.Sprintf("Simulation Duration: %.1f hours", s.DurationS/3600),
		"",
		"CONTACT SUMMARY",
		thin,
		fmt.Sprintf("Total Passes:        %d", s.PassCount),
		fmt.Sprintf("Passes per Day:      %.1f", s.PassesPerDay),
		fmt.Sprintf("Total Contact Time:  %.1f min", s.TotalContactTimeS/60),
		fmt.Sprintf("Avg Pass Duration:   %.1f min", s.AveragePassDurationS/60),
		fmt.Sprintf("Duty Cycle:          %.2f %%", s.DutyCyclePercent),
		"",
		"DATA VOLUME",
		thin,
		fmt.Sprintf("Total Data Volume:   %.3f MB", s.TotalDataMegabytes),
		fmt.Sprintf("Total Data Volume:   %.0f bits", s.TotalDataBits),
		"",
		"PER-PASS DETAILS",
		wide,
		fmt.Sprintf("%4s %9s %9s %7s %7s %9s %8s %9s",
			"Pass", "Rise", "Set", "Dur", "Max El", "Doppler", "Margin", "Data"),
		fmt.Sprintf("%4s %9s %9s %7s %7s %9s %8s %9s",
			"#", "", "", "[min]", "[deg]", "[kHz]", "[dB]", "[KB]"),
		wide,
	)
	for _, p := range s.Passes {
		lines = append(lines, fmt.Sprintf("%4d %9s %9s %7.1f %7.1f %9.2f %8.1f %9.1f",
			p.Number, clock(p.RiseTimeS), clock(p.SetTimeS),
			p.DurationS/60, p.MaxElevationDeg, p.PeakDopplerHz/1e3,
			p.MinMarginDB, p.DataVolumeBits/8/1024))
	}
	lines = append(lines, "", rule)
	return strings.Join(lines, "\n")
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, mission string, res *core.PassSimulationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summarize(mission, res))
}

// clock formats an offset from simulation start as hh:mm:ss.
func clock(offsetS float64) string {
	t := int(offsetS + 0.5)
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, t%3600/60, t%60)
}
