package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// DataDir holds the four entity CSV files; OutDir receives the
	// referral side-channel files (emails, EHR updates, audit trail).
	DataDir string
	OutDir  string

	PatientsFile      string
	AppointmentsFile  string
	PrescriptionsFile string
	ReferralsFile     string

	QueueCapacity int
}

// Load reads configuration from environment variables
func Load() *Config {
	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataDir: dataDir,
		OutDir:  getEnv("OUT_DIR", filepath.Join(dataDir, "out")),

		PatientsFile:      getEnv("PATIENTS_FILE", filepath.Join(dataDir, "patients.csv")),
		AppointmentsFile:  getEnv("APPOINTMENTS_FILE", filepath.Join(dataDir, "appointments.csv")),
		PrescriptionsFile: getEnv("PRESCRIPTIONS_FILE", filepath.Join(dataDir, "prescriptions.csv")),
		ReferralsFile:     getEnv("REFERRALS_FILE", filepath.Join(dataDir, "referrals.csv")),

		QueueCapacity: getEnvAsInt("QUEUE_CAPACITY", 128),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
