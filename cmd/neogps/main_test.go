package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neogps/internal/config"
	"neogps/internal/gps"
	"neogps/internal/nmea"
)

func writeReplayLog(t *testing.T, payloads ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# test capture\n")
	for _, p := range payloads {
		b.WriteString(nmea.Format(p))
		b.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), "capture.nmea")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestOpenSource_ReplayEndToEnd(t *testing.T) {
	path := writeReplayLog(t,
		"GPGGA,184700.00,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,",
		"GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A",
		"GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1",
	)

	src, closeSrc, err := openSource(config.Config{}, path)
	if err != nil {
		t.Fatalf("openSource() error: %v", err)
	}
	defer closeSrc()

	agg := gps.NewAggregator(2)
	fix, err := agg.Collect(src, 50)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if !fix.Complete() {
		t.Fatalf("expected complete fix, got %+v", fix)
	}

	report := fix.Report("")
	for _, want := range []string{"latitude: 48.117300", "time: 20:47:00.0", "velocity: 10.2 km/h"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestOpenSource_Simulator(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
sim:
  enable: true
  center_lat_deg: 48.1173
  center_lon_deg: 11.5167
  altitude_m: 545.4
  speed_kmh: 36
`))
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}

	src, closeSrc, err := openSource(cfg, "")
	if err != nil {
		t.Fatalf("openSource() error: %v", err)
	}
	defer closeSrc()

	fix, err := gps.NewAggregator(0).Collect(src, 50)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if !fix.Complete() {
		t.Fatalf("expected complete fix from simulator, got %+v", fix)
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "neogps.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}
