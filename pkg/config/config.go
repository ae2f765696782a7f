// Package config provides configuration management for the VPS engine.
// It loads environment variables and makes them available throughout the application.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the engine and the bot layer.
type Config struct {
	// Discord
	BotToken   string
	DevGuildID string

	// Channel restriction: commands only work in these channels (empty = anywhere).
	// Admins bypass the restriction.
	AllowedChannels []string

	// Main admins, always authorized, cannot be revoked at runtime
	MainAdminIDs []string

	// Container runtime
	DockerImage string
	ServerIP    string

	// Default plan
	DefaultRAMGB  int
	DefaultCPU    int
	DefaultDiskGB int

	// Points economy
	DeployCost   int
	RenewCost15  int
	RenewCost30  int
	LifetimeDays int

	// Storage
	DataDir string

	// Sweeps
	ExpirySweepInterval   time.Duration
	GiveawaySweepInterval time.Duration

	// MQTT (optional; empty host disables the MQTT sink)
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Web Server
	Port string

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook string
	LogsWebhook  string
}

var (
	Version   = "Dev-Local"
	BuildTime = "Hoy"
)

// cfg holds the global configuration instance
var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
// This function should only be called from test code.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

// loadConfig performs the actual configuration loading
func loadConfig() {
	// Load .env file if it exists (ignoring error if it doesn't)
	_ = godotenv.Load()

	cfg = &Config{
		// Discord
		BotToken:   getEnv("botToken", ""),
		DevGuildID: getEnv("devGuildId", ""),

		AllowedChannels: getEnvList("allowedChannels"),
		MainAdminIDs:    getEnvList("mainAdminIds"),

		// Container runtime
		DockerImage: getEnv("dockerImage", "jrei/systemd-ubuntu:22.04"),
		ServerIP:    getEnv("serverIp", "127.0.0.1"),

		// Default plan
		DefaultRAMGB:  getEnvInt("defaultRamGb", 8),
		DefaultCPU:    getEnvInt("defaultCpu", 2),
		DefaultDiskGB: getEnvInt("defaultDiskGb", 20),

		// Points economy
		DeployCost:   getEnvInt("deployCost", 40),
		RenewCost15:  getEnvInt("renewCost15", 10),
		RenewCost30:  getEnvInt("renewCost30", 20),
		LifetimeDays: getEnvInt("vpsLifetimeDays", 15),

		// Storage
		DataDir: getEnv("dataDir", "data"),

		// Sweeps
		ExpirySweepInterval:   getEnvDuration("expirySweepInterval", 10*time.Minute),
		GiveawaySweepInterval: getEnvDuration("giveawaySweepInterval", 5*time.Minute),

		// MQTT
		MQTTHost:     getEnv("MQTT_Host", ""),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getEnv("MQTT_Password", ""),

		// Web Server
		Port: getEnv("PORT", "3000"),

		// Environment
		Environment: getEnv("enviroment", "dev"),

		// Webhooks
		ErrorWebhook: getEnv("errorWebhook", ""),
		LogsWebhook:  getEnv("logsWebhook", ""),
	}
}

// Load initializes the configuration from environment variables
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	// Use sync.Once to ensure thread-safe initialization if Load wasn't called
	cfgOnce.Do(loadConfig)
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable as a slice
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// DefaultSpecString returns the default plan formatted for display
func (c *Config) DefaultSpecString() string {
	return strconv.Itoa(c.DefaultRAMGB) + "GB RAM, " +
		strconv.Itoa(c.DefaultCPU) + " CPU, " +
		strconv.Itoa(c.DefaultDiskGB) + "GB Disk"
}
