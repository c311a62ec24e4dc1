// Command kosmorro prints or browses the almanac of a day: rise,
// culmination and set times, the Moon phase and the celestial events
// visible from a position on Earth.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	kosmorrolib "github.com/Kosmorro/lib"
	"github.com/Kosmorro/lib/internal/config"
	"github.com/Kosmorro/lib/internal/export"
	"github.com/Kosmorro/lib/internal/logging"
	"github.com/Kosmorro/lib/internal/state"
	"github.com/Kosmorro/lib/internal/ui"
)

func main() {
	latitude := flag.Float64("latitude", 91, "Observer latitude in degrees (overrides config)")
	longitude := flag.Float64("longitude", 181, "Observer longitude in degrees (overrides config)")
	timezone := flag.Float64("timezone", 0, "Timezone as hours offset from UTC (e.g. -7, 5.5)")
	dateStr := flag.String("date", "", "Date to compute, YYYY-MM-DD (default today)")
	site := flag.String("site", "", "Named site preset from the config file")
	configPath := flag.String("config", config.DefaultPath(), "Config file path")
	format := flag.String("format", "text", "Output format: text or json")
	tuiMode := flag.Bool("tui", false, "Browse the almanac in a terminal UI")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	chosen, err := cfg.Site(*site)
	if err != nil {
		fatal(err)
	}

	position := chosen.Position()
	tz := chosen.Timezone
	if *latitude <= 90 && *latitude >= -90 {
		position.Latitude = *latitude
	}
	if *longitude <= 180 && *longitude >= -180 {
		position.Longitude = *longitude
	}
	if isFlagSet("timezone") {
		tz = *timezone
	}
	if err := position.Validate(); err != nil {
		fatal(err)
	}

	date := time.Now()
	if *dateStr != "" {
		date, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			fatal(fmt.Errorf("invalid date %q, want YYYY-MM-DD", *dateStr))
		}
	}

	computer := kosmorrolib.NewComputer(kosmorrolib.WithLogger(logger.Named("solve")))
	compute := almanacFunc(computer, position, tz, logger.Named("almanac"))

	if !*tuiMode {
		runHeadless(compute, date, *format)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	mgr := state.NewManager(state.DefaultConfig())
	p := tea.NewProgram(ui.New(mgr, compute, date), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// almanacFunc builds the compute function shared by the headless and
// TUI modes.
func almanacFunc(computer *kosmorrolib.Computer, position kosmorrolib.Position, tz float64, logger *logging.Logger) ui.ComputeFunc {
	return func(date time.Time) (state.Almanac, error) {
		defer logger.Timed(fmt.Sprintf("almanac for %s", date.Format("2006-01-02")))()

		ephemerides, err := computer.Ephemerides(position, date, tz)
		if err != nil {
			return state.Almanac{}, err
		}
		moon, err := computer.MoonPhase(date, tz)
		if err != nil {
			return state.Almanac{}, err
		}
		events, err := computer.Events(date, tz)
		if err != nil {
			return state.Almanac{}, err
		}

		return state.Almanac{
			Date:     date,
			Position: position,
			Timezone: tz,
			Objects:  ephemerides,
			Moon:     moon,
			Events:   events,
		}, nil
	}
}

func runHeadless(compute ui.ComputeFunc, date time.Time, format string) {
	almanac, err := compute(date)
	if err != nil {
		fatal(err)
	}

	switch format {
	case "json":
		if err := export.ExportAlmanac(almanac).WriteJSON(os.Stdout); err != nil {
			fatal(fmt.Errorf("write JSON: %w", err))
		}
	case "text":
		export.WriteText(os.Stdout, almanac)
	default:
		fatal(fmt.Errorf("unknown format %q, want text or json", format))
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
