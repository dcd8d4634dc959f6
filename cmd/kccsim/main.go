package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/kcc/settings"
	"github.com/oomph-ac/kcc/simulation"
	"github.com/sirupsen/logrus"
)

// The following program runs the agents of a level headlessly and logs where they end up.
func main() {
	var (
		path  = flag.String("config", "kcc.toml", "path to a TOML or YAML simulation config, created if missing")
		ticks = flag.Int("ticks", 600, "number of ticks to simulate")
		debug = flag.Bool("debug", false, "log every landing, step and platform transition")
	)
	flag.Parse()

	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}
	lg.Level = logrus.InfoLevel
	if *debug {
		lg.Level = logrus.DebugLevel
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			lg.Fatalf("error initializing sentry: %v", err)
		}
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// The viewer configuration is read once, when the manager is created.
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	err := run(lg, *path, *ticks)
	if err != nil {
		lg.Error(err)
		sentry.CaptureException(err)
	}
	// os.Exit skips deferred calls, so events are flushed before leaving.
	sentry.Flush(2 * time.Second)
	if err != nil {
		os.Exit(1)
	}
}

func run(lg *logrus.Logger, path string, ticks int) error {
	conf, err := readConfig(lg, path)
	if err != nil {
		return err
	}
	sim, err := simulation.New(conf, lg)
	if err != nil {
		return fmt.Errorf("error creating simulation: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := sim.Run(ctx, ticks); err != nil {
		lg.Errorf("simulation stopped after %d ticks: %v", sim.CurrentTick(), err)
	}
	lg.Infof("simulated %d ticks in %v", sim.CurrentTick(), time.Since(start))
	sim.Report().Log(lg)
	return nil
}

func readConfig(lg *logrus.Logger, path string) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, fmt.Errorf("error creating config: %w", err)
		}
		lg.Infof("created default config at %s", path)
	}
	conf, err := settings.Load(path)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("error reading config: %w", err)
	}
	return conf, nil
}
