package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"issueflow/internal/github"
)

// Thresholds are the minimum-sample gates applied during aggregation. They
// are configuration, not constants, so small repositories can lower them.
type Thresholds struct {
	LabelMinSamples      int
	AgingLabelMinSamples int
	TrendMinSamples      int
	TopLabels            int
	OldestLimit          int
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	GitHub              github.Config
	Thresholds          Thresholds
	DataPath            string
	LogDir              string
	ReportDir           string
	SnapshotDir         string
	EnableMermaidCharts bool
}

// SnapshotPath returns the snapshot file location for an owner/repo pair.
func (c *AppConfig) SnapshotPath(owner, repo string) string {
	return filepath.Join(c.SnapshotDir, owner+"_"+repo+".jsonl")
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	reportDir := filepath.Join(dataPath, "reports")
	snapshotDir := filepath.Join(dataPath, "snapshots")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(snapshotDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", snapshotDir).Msg("Failed to create snapshot directory")
	}

	cfg := &AppConfig{
		GitHub: github.Config{
			Token:            getEnv("GITHUB_TOKEN", ""),
			Owner:            getEnv("GITHUB_OWNER", ""),
			Repo:             getEnv("GITHUB_REPO", ""),
			PageSize:         getEnvInt("GITHUB_PAGE_SIZE", 100),
			EventConcurrency: getEnvInt("GITHUB_EVENT_CONCURRENCY", 4),
			WithEvents:       getEnvBool("GITHUB_FETCH_EVENTS", true),
		},
		Thresholds: Thresholds{
			LabelMinSamples:      getEnvInt("LABEL_MIN_SAMPLES", 3),
			AgingLabelMinSamples: getEnvInt("AGING_LABEL_MIN_SAMPLES", 2),
			TrendMinSamples:      getEnvInt("TREND_MIN_SAMPLES", 3),
			TopLabels:            getEnvInt("TREND_TOP_LABELS", 3),
			OldestLimit:          getEnvInt("OLDEST_ISSUE_LIMIT", 15),
		},
		DataPath:            dataPath,
		LogDir:              logDir,
		ReportDir:           reportDir,
		SnapshotDir:         snapshotDir,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", true),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return fallback
}
