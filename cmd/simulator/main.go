package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/core"
	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/mission"
	"github.com/signalsfoundry/satlink-simulator/report"
	"github.com/signalsfoundry/satlink-simulator/timectrl"
)

func main() {
	missionPath := flag.String("mission", "", "mission file (YAML or TOML) to simulate")
	preset := flag.String("preset", "", "built-in mission preset to simulate (see -list-presets)")
	listPresets := flag.Bool("list-presets", false, "list catalog mission presets and exit")
	catalogDir := flag.String("catalog-dir", "", "directory overlaying the built-in component catalog")
	format := flag.String("format", "text", "report format: text or json")
	durationOrbits := flag.Float64("duration-orbits", 0, "override simulation.duration_orbits")
	dt := flag.Float64("dt", 0, "override simulation.dt_s (in-pass sample step, seconds)")
	contactDt := flag.Float64("contact-dt", 0, "override simulation.contact_dt_s (visibility scan step, seconds)")
	workers := flag.Int("workers", -1, "override simulation.workers (0 evaluates passes serially)")
	follow := flag.Bool("follow", false, "replay the highest pass tick by tick after the run")
	followRate := flag.Float64("follow-rate", 60, "simulated seconds per wall second during -follow; 0 replays instantly")
	logLevel := flag.String("log-level", "info", "log verbosity: debug, info, warn, error")
	flag.Parse()

	log := logging.New(logging.Config{Level: *logLevel, Output: os.Stderr})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := catalog.New()
	if *catalogDir != "" {
		reg = catalog.NewWithOverlay(*catalogDir)
	}

	if *listPresets {
		names, err := reg.Missions()
		if err != nil {
			log.Error(ctx, "failed to list mission presets", logging.String("error", err.Error()))
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := loadConfig(reg, *missionPath, *preset)
	if err != nil {
		log.Error(ctx, "failed to load mission", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if *durationOrbits > 0 {
		cfg.Simulation.DurationOrbits = *durationOrbits
	}
	if *dt > 0 {
		cfg.Simulation.DtS = *dt
	}
	if *contactDt > 0 {
		cfg.Simulation.ContactDtS = *contactDt
	}
	if *workers >= 0 {
		cfg.Simulation.Workers = *workers
	}

	m, err := mission.Build(cfg, reg)
	if err != nil {
		log.Error(ctx, "failed to build mission", logging.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info(ctx, "starting simulation",
		logging.String("mission", m.Name),
		logging.Float64("frequency_hz", cfg.FrequencyHz),
		logging.Float64("duration_orbits", cfg.Simulation.DurationOrbits),
		logging.Int("workers", cfg.Simulation.Workers),
	)

	began := time.Now()
	res, err := m.Run(ctx)
	if err != nil {
		log.Error(ctx, "simulation failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "simulation finished",
		logging.Int("passes", res.PassCount),
		logging.Float64("elapsed_s", time.Since(began).Seconds()),
	)

	switch strings.ToLower(*format) {
	case "text":
		fmt.Print(report.Text(m.Name, res))
	case "json":
		if err := report.WriteJSON(os.Stdout, m.Name, res); err != nil {
			log.Error(ctx, "failed to write report", logging.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown -format %q: want text or json\n", *format)
		os.Exit(2)
	}

	if *follow && res.PassCount > 0 {
		followBestPass(ctx, log, res, *followRate)
	}
}

// loadConfig resolves the mission source: a file on disk or a catalog preset,
// never both.
func loadConfig(reg *catalog.Registry, path, preset string) (mission.Config, error) {
	switch {
	case path != "" && preset != "":
		return mission.Config{}, fmt.Errorf("%w: -mission and -preset are mutually exclusive", core.ErrConfiguration)
	case path != "":
		return mission.Load(path)
	case preset != "":
		raw, err := reg.Mission(preset)
		if err != nil {
			return mission.Config{}, err
		}
		return mission.Parse(raw)
	default:
		return mission.Config{}, fmt.Errorf("%w: one of -mission or -preset is required", core.ErrConfiguration)
	}
}

// followBestPass replays the highest pass of the run on a time controller,
// printing the geometry sample by sample.
func followBestPass(ctx context.Context, log logging.Logger, res *core.PassSimulationResult, rate float64) {
	best := res.Windows[0]
	for _, w := range res.Windows[1:] {
		if w.MaxElevationDeg > best.MaxElevationDeg {
			best = w
		}
	}
	samples := best.Samples
	if len(samples) == 0 {
		log.Warn(ctx, "highest pass carries no samples to replay")
		return
	}

	mode := timectrl.Accelerated
	if rate > 0 {
		mode = timectrl.RealTime
	}
	base := time.Unix(0, 0).UTC()
	tc := timectrl.NewTimeController(base, time.Duration(res.TimeStepS*float64(time.Second)), mode)
	tc.Rate = rate

	fmt.Printf("\nReplaying pass: rise %s, set %s, max elevation %.1f deg\n",
		offsetClock(best.RiseTimeS), offsetClock(best.SetTimeS), best.MaxElevationDeg)
	printSample(samples[0])

	cursor := 0
	tc.AddListener(func(now time.Time) {
		offset := best.RiseTimeS + now.Sub(base).Seconds()
		for cursor+1 < len(samples) && samples[cursor+1].TimeS <= offset+1e-9 {
			cursor++
			printSample(samples[cursor])
		}
	})

	if err := tc.Run(ctx, time.Duration(best.DurationS()*float64(time.Second))); err != nil {
		log.Warn(ctx, "replay interrupted", logging.String("error", err.Error()))
	}
}

func printSample(s core.PassSample) {
	fmt.Printf("[T+%s] az %6.1f deg  el %5.1f deg  range %8.1f km  doppler %+8.2f kHz  margin %+6.1f dB\n",
		offsetClock(s.TimeS), s.AzimuthDeg, s.ElevationDeg, s.RangeM/1e3, s.DopplerHz/1e3, s.MarginDB)
}

// offsetClock formats an offset from simulation start as hh:mm:ss.
func offsetClock(offsetS float64) string {
	t := int(offsetS + 0.5)
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, t%3600/60, t%60)
}
