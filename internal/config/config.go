package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GPS     GPSConfig     `yaml:"gps"`
	Geocode GeocodeConfig `yaml:"geocode"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Sim     SimConfig     `yaml:"sim"`
}

type GPSConfig struct {
	// Device is the serial device path; empty means auto-detect.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	// UTCOffsetHours is the signed local-time offset applied to decoded
	// UTC times. Fractional values are allowed (e.g. 5.5 for IST).
	UTCOffsetHours float64 `yaml:"utc_offset_hours"`

	// ReadBudget bounds how many lines a one-shot read attempts before
	// reporting no fix.
	ReadBudget int `yaml:"read_budget"`
}

type GeocodeConfig struct {
	Enable   bool   `yaml:"enable"`
	Endpoint string `yaml:"endpoint"`
}

type MQTTConfig struct {
	Enable   bool   `yaml:"enable"`
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

type SimConfig struct {
	Enable       bool          `yaml:"enable"`
	CenterLatDeg float64       `yaml:"center_lat_deg"`
	CenterLonDeg float64       `yaml:"center_lon_deg"`
	AltitudeM    float64       `yaml:"altitude_m"`
	SpeedKmh     float64       `yaml:"speed_kmh"`
	RadiusKm     float64       `yaml:"radius_km"`
	Satellites   int           `yaml:"satellites"`
	Period       time.Duration `yaml:"period"`
}

var supportedBauds = map[int]bool{4800: true, 9600: true, 19200: true, 38400: true, 57600: true, 115200: true}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.GPS.Baud == 0 {
		cfg.GPS.Baud = 9600
	}
	if !supportedBauds[cfg.GPS.Baud] {
		return Config{}, fmt.Errorf("gps.baud %d is not a supported rate", cfg.GPS.Baud)
	}
	if cfg.GPS.UTCOffsetHours < -12 || cfg.GPS.UTCOffsetHours > 14 {
		return Config{}, fmt.Errorf("gps.utc_offset_hours must be within [-12, 14]")
	}
	if cfg.GPS.ReadBudget == 0 {
		cfg.GPS.ReadBudget = 200
	}
	if cfg.GPS.ReadBudget < 0 {
		return Config{}, fmt.Errorf("gps.read_budget must be positive")
	}

	if cfg.Geocode.Enable && cfg.Geocode.Endpoint == "" {
		cfg.Geocode.Endpoint = "https://nominatim.openstreetmap.org"
	}

	if cfg.MQTT.Enable {
		if cfg.MQTT.Broker == "" {
			return Config{}, fmt.Errorf("mqtt.broker is required when mqtt.enable is true")
		}
		if cfg.MQTT.Topic == "" {
			cfg.MQTT.Topic = "neogps/fix"
		}
		if cfg.MQTT.ClientID == "" {
			cfg.MQTT.ClientID = "neogps"
		}
	}

	// Simulator defaults (safe even if disabled).
	if cfg.Sim.Period <= 0 {
		cfg.Sim.Period = 120 * time.Second
	}
	if cfg.Sim.RadiusKm <= 0 {
		cfg.Sim.RadiusKm = 0.5
	}
	if cfg.Sim.Satellites <= 0 {
		cfg.Sim.Satellites = 8
	}
	if cfg.Sim.SpeedKmh <= 0 {
		cfg.Sim.SpeedKmh = 30
	}

	return cfg, nil
}
