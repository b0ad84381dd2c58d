package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "gps:\n  device: /dev/ttyACM0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GPS.Baud != 9600 {
		t.Fatalf("baud=%d want 9600", cfg.GPS.Baud)
	}
	if cfg.GPS.ReadBudget != 200 {
		t.Fatalf("read_budget=%d want 200", cfg.GPS.ReadBudget)
	}
	if cfg.Sim.Period <= 0 || cfg.Sim.RadiusKm <= 0 || cfg.Sim.Satellites <= 0 {
		t.Fatalf("expected sim defaults applied, got %+v", cfg.Sim)
	}
}

func TestLoad_UnsupportedBaud(t *testing.T) {
	path := writeTempConfig(t, "gps:\n  baud: 12345\n")
	_, err := Load(path)
	requireErrEq(t, err, "gps.baud 12345 is not a supported rate")
}

func TestLoad_OffsetRange(t *testing.T) {
	path := writeTempConfig(t, "gps:\n  utc_offset_hours: 20\n")
	_, err := Load(path)
	requireErrEq(t, err, "gps.utc_offset_hours must be within [-12, 14]")
}

func TestLoad_FractionalOffset(t *testing.T) {
	path := writeTempConfig(t, "gps:\n  utc_offset_hours: 5.5\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GPS.UTCOffsetHours != 5.5 {
		t.Fatalf("offset=%v want 5.5", cfg.GPS.UTCOffsetHours)
	}
}

func TestLoad_MQTTRequiresBroker(t *testing.T) {
	path := writeTempConfig(t, "mqtt:\n  enable: true\n")
	_, err := Load(path)
	requireErrEq(t, err, "mqtt.broker is required when mqtt.enable is true")
}

func TestLoad_MQTTDefaults(t *testing.T) {
	path := writeTempConfig(t, "mqtt:\n  enable: true\n  broker: tcp://localhost:1883\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MQTT.Topic != "neogps/fix" || cfg.MQTT.ClientID != "neogps" {
		t.Fatalf("mqtt defaults missing: %+v", cfg.MQTT)
	}
}

func TestLoad_GeocodeDefaultEndpoint(t *testing.T) {
	path := writeTempConfig(t, "geocode:\n  enable: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Geocode.Endpoint == "" {
		t.Fatalf("expected default geocode endpoint")
	}
}
