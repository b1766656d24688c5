// Package config reads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file when one is present. Missing
// files are fine; production injects everything through the environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// GetEnv returns the variable's value, or defaultVal when unset or empty.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv parses the variable as an int, falling back on defaultVal.
func GetIntEnv(key string, defaultVal int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetDurationEnv parses the variable as a time.Duration ("1h", "30m"),
// falling back on defaultVal.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

// IsProduction reports whether the app runs with ENV=production.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
