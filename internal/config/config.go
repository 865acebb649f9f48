package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nmhoang92/capital-governor/internal/governor"
	"github.com/nmhoang92/capital-governor/internal/portfolio"
)

type Config struct {
	Environment string
	LogLevel    string

	Session struct {
		Name           string
		Strategies     []string
		InitialCapital float64
	}

	Cooldown struct {
		Min time.Duration
	}

	KillSwitch governor.KillSwitchConfig

	Allocator portfolio.RebalanceConfig

	State struct {
		Dir string
	}

	Monitoring struct {
		PrometheusPort int
		HealthPort     int
	}
}

func Load() *Config {
	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
		KillSwitch: governor.KillSwitchConfig{
			MaxTotalDrawdownPct:  getEnvFloat("KILL_MAX_TOTAL_DRAWDOWN_PCT", 30),
			MaxDailyLossPct:      getEnvFloat("KILL_MAX_DAILY_LOSS_PCT", 10),
			MaxConsecutiveLosses: getEnvInt("KILL_MAX_CONSECUTIVE_LOSSES", 5),
		},
		Allocator: portfolio.RebalanceConfig{
			MinEngineCapital: getEnvFloat("MIN_ENGINE_CAPITAL", 100),
			ReserveBufferPct: getEnvFloat("RESERVE_BUFFER_PCT", 0.10),
			RebalanceEvery:   getEnvInt("REBALANCE_EVERY", 10),
		},
	}

	cfg.Session.Name = getEnv("SESSION_NAME", "governor")
	cfg.Session.Strategies = []string{"scalp", "session"}
	cfg.Session.InitialCapital = getEnvFloat("INITIAL_CAPITAL", 10000)

	cfg.Cooldown.Min = getEnvDuration("MIN_COOLDOWN", 15*time.Second)

	cfg.State.Dir = getEnv("STATE_DIR", "state")

	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", 8080)
	cfg.Monitoring.HealthPort = getEnvInt("HEALTH_PORT", 8081)

	return cfg
}

// CapsFile is the JSON layout for per-strategy hard caps
type CapsFile struct {
	Caps map[string]governor.EngineCaps `json:"caps"`
}

// LoadCaps reads per-strategy caps from a JSON file. Every strategy entry
// must carry positive limits; a bad file fails fast.
func LoadCaps(path string) (map[string]governor.EngineCaps, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read caps file: %w", err)
	}

	var file CapsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse caps file: %w", err)
	}

	for id, caps := range file.Caps {
		if caps.MaxRiskPct <= 0 || caps.MaxLeverage <= 0 || caps.MaxDrawdownPct <= 0 {
			return nil, fmt.Errorf("invalid caps for strategy %q: limits must be positive", id)
		}
	}
	return file.Caps, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
