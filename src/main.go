package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multilift/src/config"
	"multilift/src/dispatcher"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML fleet config")
	elevators := flag.Int("elevators", config.DefaultNumElevators, "Number of elevators in the fleet")
	capacity := flag.Int("capacity", config.DefaultCapacity, "Pending-request capacity per elevator")
	travel := flag.Duration("travel", config.DefaultTravelInterval, "Time per floor-to-floor step")
	flag.Parse()

	initLogger()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("Fleet config rejected", "path", *configPath, "error", err)
			os.Exit(1)
		}
	} else {
		cfg.NumElevators = *elevators
		cfg.Capacity = *capacity
		cfg.TravelInterval = *travel
	}

	ctl, err := dispatcher.New(cfg)
	if err != nil {
		slog.Error("Fleet startup failed", "error", err)
		os.Exit(1)
	}

	go func() {
		for ev := range ctl.Events() {
			slog.Info("Elevator event",
				"elevator", ev.Elevator,
				"event", ev.Type,
				"floor", ev.Floor)
		}
	}()

	go script(ctl)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if err := ctl.Shutdown(); err != nil {
		slog.Error("Fleet shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Elevator system stopped safely")
}

// script issues the demo request sequence against the fleet.
func script(ctl *dispatcher.Dispatcher) {
	pickups := []struct {
		from, to int
		pause    time.Duration
	}{
		{10, 12, 2 * time.Second},
		{1, 7, 3 * time.Second},
		{2, 5, 1 * time.Second},
		{1, 9, 0},
	}
	for _, p := range pickups {
		if _, err := ctl.RequestPickup(p.from, p.to); err != nil {
			slog.Warn("Pickup rejected", "from", p.from, "to", p.to, "error", err)
		}
		time.Sleep(p.pause)
	}
}

// initLogger sets up global logging with a compact time format.
func initLogger() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			return a
		},
	})
	slog.SetDefault(slog.New(handler))
}
