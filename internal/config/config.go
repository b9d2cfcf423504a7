package config

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port        string
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	StorageRoot string
	BcryptCost  int
	LogLevel    string
	GinMode     string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "root"),
		DBPassword:  getEnv("DB_PASSWORD", "1234"),
		DBName:      getEnv("DB_NAME", "marblesound"),
		StorageRoot: getEnv("STORAGE_ROOT", "./data"),
		BcryptCost:  getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		GinMode:     getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
