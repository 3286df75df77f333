package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DuplicatePolicy controls how repeated mentions of the same canonical
// product within one tender are merged.
type DuplicatePolicy string

const (
	DuplicateSum DuplicatePolicy = "sum"
	DuplicateMax DuplicatePolicy = "max"
)

type Config struct {
	Profile         string
	QtyCeiling      int
	DuplicatePolicy DuplicatePolicy

	MatchMinScore   float64
	DocNameOverlap  float64
	NearExpiryDays  int
	WatchExpiryDays int
	ExpiryDateOrder string

	InputDir         string
	OutputDir        string
	InventoryPath    string
	RequirementsPath string
	WatchIntervalSec int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Profile: strings.ToLower(getEnv("LICITA_PROFILE", "general")),

		MatchMinScore:   getEnvFloat("MATCH_MIN_SCORE", 0.60),
		DocNameOverlap:  getEnvFloat("DOC_NAME_OVERLAP", 0.60),
		NearExpiryDays:  getEnvInt("NEAR_EXPIRY_DAYS", 30),
		WatchExpiryDays: getEnvInt("WATCH_EXPIRY_DAYS", 90),
		ExpiryDateOrder: strings.ToLower(getEnv("EXPIRY_DATE_ORDER", "dmy")),

		InputDir:         getEnv("INPUT_DIR", filepath.Join(cwd, "data", "in")),
		OutputDir:        getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		InventoryPath:    getEnv("INVENTORY_PATH", ""),
		RequirementsPath: getEnv("REQUIREMENTS_PATH", ""),
		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 5),
	}

	switch cfg.Profile {
	case "general":
		cfg.QtyCeiling = getEnvInt("QTY_CEILING", 50000)
		cfg.DuplicatePolicy = DuplicateSum
	case "medical":
		cfg.QtyCeiling = getEnvInt("QTY_CEILING", 100000)
		cfg.DuplicatePolicy = DuplicateMax
	default:
		return Config{}, fmt.Errorf("unknown LICITA_PROFILE: %s", cfg.Profile)
	}

	if cfg.ExpiryDateOrder != "dmy" && cfg.ExpiryDateOrder != "mdy" {
		return Config{}, fmt.Errorf("unknown EXPIRY_DATE_ORDER: %s", cfg.ExpiryDateOrder)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
