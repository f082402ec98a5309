package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Version is the tool version stamped into every export.
const Version = "1.2.0"

// Config holds all application configuration
type Config struct {
	Parser     ParserConfig
	Categorize CategorizeConfig
	Reconcile  ReconcileConfig
	Output     OutputConfig
	Watch      WatchConfig
	Notify     NotifyConfig
}

type ParserConfig struct {
	// YTolerance, SmallGap and LargeGap tune row reconstruction, in PDF
	// layout units.
	YTolerance float64
	SmallGap   float64
	LargeGap   float64
	Strict     bool
}

type CategorizeConfig struct {
	// FuzzyMinScore is the minimum 0..100 score a fuzzy candidate needs
	// to beat before it counts as a category match.
	FuzzyMinScore int
}

type ReconcileConfig struct {
	// Tolerance is the maximum |expected - ending| that still passes,
	// in currency units.
	Tolerance float64
	Enabled   bool
}

type OutputConfig struct {
	Format  string
	Path    string
	Verbose bool
}

type WatchConfig struct {
	// Schedule is a cron expression for inbox re-scans.
	Schedule string
}

type NotifyConfig struct {
	// APIKey enables emailed run reports in watch mode when set.
	APIKey string
	From   string
	To     []string
}

// Load reads configuration from environment variables, with a .env file as
// fallback when present. Flags override these values in main.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Parser: ParserConfig{
			YTolerance: getEnvAsFloat("BANKPARSE_Y_TOLERANCE", 2.5),
			SmallGap:   getEnvAsFloat("BANKPARSE_SMALL_GAP", 4.0),
			LargeGap:   getEnvAsFloat("BANKPARSE_LARGE_GAP", 14.0),
			Strict:     getEnvAsBool("BANKPARSE_STRICT", false),
		},
		Categorize: CategorizeConfig{
			FuzzyMinScore: getEnvAsInt("BANKPARSE_FUZZY_MIN_SCORE", 70),
		},
		Reconcile: ReconcileConfig{
			Tolerance: getEnvAsFloat("BANKPARSE_RECONCILE_TOLERANCE", 0.01),
			Enabled:   getEnvAsBool("BANKPARSE_RECONCILE", false),
		},
		Output: OutputConfig{
			Format:  getEnv("BANKPARSE_FORMAT", "json"),
			Path:    getEnv("BANKPARSE_OUT", ""),
			Verbose: getEnvAsBool("BANKPARSE_VERBOSE", false),
		},
		Watch: WatchConfig{
			Schedule: getEnv("BANKPARSE_WATCH_SCHEDULE", "@every 1m"),
		},
		Notify: NotifyConfig{
			APIKey: getEnv("BANKPARSE_RESEND_API_KEY", ""),
			From:   getEnv("BANKPARSE_NOTIFY_FROM", "bankparse <reports@bankparse.local>"),
			To:     splitList(getEnv("BANKPARSE_NOTIFY_TO", "")),
		},
	}

	if cfg.Parser.YTolerance <= 0 {
		return nil, fmt.Errorf("BANKPARSE_Y_TOLERANCE must be positive, got %v", cfg.Parser.YTolerance)
	}
	if cfg.Parser.SmallGap >= cfg.Parser.LargeGap {
		return nil, fmt.Errorf("BANKPARSE_SMALL_GAP (%v) must be below BANKPARSE_LARGE_GAP (%v)",
			cfg.Parser.SmallGap, cfg.Parser.LargeGap)
	}
	if cfg.Categorize.FuzzyMinScore <= 0 || cfg.Categorize.FuzzyMinScore > 100 {
		return nil, fmt.Errorf("BANKPARSE_FUZZY_MIN_SCORE must be in 1..100, got %d", cfg.Categorize.FuzzyMinScore)
	}
	if cfg.Reconcile.Tolerance < 0 {
		return nil, fmt.Errorf("BANKPARSE_RECONCILE_TOLERANCE must not be negative, got %v", cfg.Reconcile.Tolerance)
	}

	return cfg, nil
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
