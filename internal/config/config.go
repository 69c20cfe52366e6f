package config

import (
	"os"
	"strconv"

	"gosegment/internal/errors"
)

// Config represents the complete pipeline configuration
type Config struct {
	Data     DataConfig
	Cluster  ClusterConfig
	Output   OutputConfig
	Database DatabaseConfig
}

// DataConfig holds input data settings
type DataConfig struct {
	SurveyFile string
}

// ClusterConfig holds the clustering constants. The defaults are the fixed
// analysis parameters; env overrides exist for experimentation.
type ClusterConfig struct {
	K        int
	Seed     int64
	Restarts int
	ElbowMax int
}

// OutputConfig holds output artifact locations
type OutputConfig struct {
	SummaryFile  string
	ChartDir     string
	ReportFile   string
	ManifestFile string
}

// DatabaseConfig holds optional result persistence settings.
// Persistence is skipped entirely when URL is empty.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			SurveyFile: getEnvOrDefault("SURVEY_FILE", "smartwatch_survey.xlsx"),
		},
		Cluster: ClusterConfig{
			K:        getEnvIntOrDefault("CLUSTER_K", 4),
			Seed:     getEnvInt64OrDefault("CLUSTER_SEED", 2023),
			Restarts: getEnvIntOrDefault("CLUSTER_RESTARTS", 25),
			ElbowMax: getEnvIntOrDefault("ELBOW_MAX_K", 10),
		},
		Output: OutputConfig{
			SummaryFile:  getEnvOrDefault("SUMMARY_FILE", "cluster_summary.csv"),
			ChartDir:     getEnvOrDefault("CHART_DIR", "charts"),
			ReportFile:   getEnvOrDefault("REPORT_FILE", "segmentation_report.md"),
			ManifestFile: getEnvOrDefault("MANIFEST_FILE", "run_manifest.json"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.SurveyFile == "" {
		return errors.ConfigInvalid("survey file path is required")
	}
	if config.Cluster.K < 1 {
		return errors.ConfigInvalid("cluster count must be at least 1")
	}
	if config.Cluster.Restarts < 1 {
		return errors.ConfigInvalid("restart count must be at least 1")
	}
	if config.Cluster.ElbowMax < config.Cluster.K {
		return errors.ConfigInvalid("elbow sweep max must be at least the cluster count")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
