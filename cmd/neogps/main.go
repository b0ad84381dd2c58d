package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neogps/internal/config"
	"neogps/internal/geocode"
	"neogps/internal/gps"
	"neogps/internal/publish"
	"neogps/internal/replay"
	"neogps/internal/sim"
)

func main() {
	var (
		configPath string
		replayPath string
		watch      bool
		sleepFor   time.Duration
	)
	flag.StringVar(&configPath, "config", "./neogps.yaml", "Path to YAML config")
	flag.StringVar(&replayPath, "replay", "", "Decode a recorded NMEA log instead of reading the serial port")
	flag.BoolVar(&watch, "watch", false, "Keep reading and print a report every fix update cycle")
	flag.DurationVar(&sleepFor, "sleep", 0, "Power the receiver down for this duration and exit (0 disables)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lookup := newLookup(cfg.Geocode)

	switch {
	case sleepFor > 0:
		if err := powerDown(ctx, cfg, sleepFor); err != nil {
			log.Fatalf("power down failed: %v", err)
		}
	case watch:
		if err := runWatch(ctx, cfg, lookup); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	default:
		if err := runOnce(ctx, cfg, lookup, replayPath); err != nil {
			log.Fatalf("read failed: %v", err)
		}
	}
}

func newLookup(cfg config.GeocodeConfig) geocode.Lookup {
	if !cfg.Enable {
		return geocode.Noop{}
	}
	return geocode.NewNominatim(cfg.Endpoint)
}

// runOnce collects one fix within the configured read budget, renders the
// report and exits. The line source is the serial port unless a replay log
// or the simulator is configured.
func runOnce(ctx context.Context, cfg config.Config, lookup geocode.Lookup, replayPath string) error {
	src, closeSrc, err := openSource(cfg, replayPath)
	if err != nil {
		return err
	}
	defer closeSrc()

	agg := gps.NewAggregator(cfg.GPS.UTCOffsetHours)
	fix, err := agg.Collect(src, cfg.GPS.ReadBudget)
	if err != nil {
		// Partial state is still worth showing before failing.
		fmt.Println(agg.Fix().Report(""))
		return err
	}

	fmt.Println(fix.Report(resolveAddress(ctx, lookup, fix)))

	if cfg.MQTT.Enable {
		pub, err := publish.Connect(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
		if err != nil {
			return err
		}
		defer pub.Close()
		return pub.Publish(fix)
	}
	return nil
}

// runWatch starts the background serial service and prints a report once
// per second until interrupted. Fix updates are published to MQTT as they
// arrive when publication is enabled.
func runWatch(ctx context.Context, cfg config.Config, lookup geocode.Lookup) error {
	svcCfg := gps.Config{
		Device:         cfg.GPS.Device,
		Baud:           cfg.GPS.Baud,
		UTCOffsetHours: cfg.GPS.UTCOffsetHours,
	}

	var pub *publish.Publisher
	if cfg.MQTT.Enable {
		var err error
		pub, err = publish.Connect(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
		if err != nil {
			return err
		}
		defer pub.Close()
		svcCfg.OnUpdate = func(fix gps.Fix) {
			if err := pub.Publish(fix); err != nil {
				log.Printf("mqtt publish failed: %v", err)
			}
		}
	}

	svc := gps.New(svcCfg)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			st := svc.Snapshot()
			if st.LastError != "" {
				log.Printf("gps: %s", st.LastError)
			}
			fmt.Println(st.Fix.Report(resolveAddress(ctx, lookup, st.Fix)))
			fmt.Println()
		}
	}
}

// powerDown starts the service only to reach the open port, sends the UBX
// power management request and exits.
func powerDown(ctx context.Context, cfg config.Config, d time.Duration) error {
	svc := gps.New(gps.Config{Device: cfg.GPS.Device, Baud: cfg.GPS.Baud})
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.PowerDown(d); err != nil {
		return err
	}
	log.Printf("receiver entering backup mode for %s", d)
	return nil
}

func openSource(cfg config.Config, replayPath string) (gps.LineSource, func(), error) {
	if replayPath != "" {
		src, err := replay.Open(replayPath)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	}
	if cfg.Sim.Enable {
		return &sim.Receiver{
			CenterLatDeg: cfg.Sim.CenterLatDeg,
			CenterLonDeg: cfg.Sim.CenterLonDeg,
			AltitudeM:    cfg.Sim.AltitudeM,
			SpeedKmh:     cfg.Sim.SpeedKmh,
			RadiusKm:     cfg.Sim.RadiusKm,
			Satellites:   cfg.Sim.Satellites,
			Period:       cfg.Sim.Period,
		}, func() {}, nil
	}
	return openSerialSource(cfg.GPS)
}

func openSerialSource(cfg config.GPSConfig) (gps.LineSource, func(), error) {
	src, closer, err := gps.OpenSerialSource(cfg.Device, cfg.Baud)
	if err != nil {
		return nil, nil, err
	}
	return src, func() { _ = closer.Close() }, nil
}

func resolveAddress(ctx context.Context, lookup geocode.Lookup, fix gps.Fix) string {
	if !fix.Valid || fix.Lat == nil || fix.Lon == nil {
		return ""
	}
	addr, err := lookup.Reverse(ctx, *fix.Lat, *fix.Lon)
	if err != nil {
		log.Printf("geocode failed: %v", err)
		return ""
	}
	return addr
}
