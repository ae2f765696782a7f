package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "55")
	os.Setenv("TEST_BAD_INT", "not-a-number")
	defer func() {
		os.Unsetenv("TEST_INT")
		os.Unsetenv("TEST_BAD_INT")
	}()

	if got := getEnvInt("TEST_INT", 10); got != 55 {
		t.Errorf("getEnvInt() = %v, want %v", got, 55)
	}

	if got := getEnvInt("TEST_BAD_INT", 10); got != 10 {
		t.Errorf("getEnvInt() with invalid value = %v, want default %v", got, 10)
	}

	if got := getEnvInt("NON_EXISTENT_INT", 10); got != 10 {
		t.Errorf("getEnvInt() = %v, want default %v", got, 10)
	}
}

func TestGetEnvList(t *testing.T) {
	os.Setenv("TEST_LIST", "123, 456,789")
	defer os.Unsetenv("TEST_LIST")

	got := getEnvList("TEST_LIST")
	want := []string{"123", "456", "789"}
	if len(got) != len(want) {
		t.Fatalf("getEnvList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("getEnvList()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := getEnvList("NON_EXISTENT_LIST"); got != nil {
		t.Errorf("getEnvList() for missing var = %v, want nil", got)
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestGet(t *testing.T) {
	resetForTesting()

	// Get should create a new config if none exists
	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}

	// Get should return the same config on subsequent calls
	config2 := Get()
	if config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

func TestDefaultValues(t *testing.T) {
	// Clear all environment variables
	os.Unsetenv("botToken")
	os.Unsetenv("devGuildId")
	os.Unsetenv("dockerImage")
	os.Unsetenv("deployCost")
	os.Unsetenv("vpsLifetimeDays")
	os.Unsetenv("MQTT_Host")
	os.Unsetenv("MQTT_Port")
	os.Unsetenv("PORT")
	os.Unsetenv("enviroment")

	resetForTesting()
	config, _ := Load()

	// Check default values
	if config.DockerImage != "jrei/systemd-ubuntu:22.04" {
		t.Errorf("DockerImage default = %v, want %v", config.DockerImage, "jrei/systemd-ubuntu:22.04")
	}

	if config.DeployCost != 40 {
		t.Errorf("DeployCost default = %v, want %v", config.DeployCost, 40)
	}

	if config.RenewCost15 != 10 || config.RenewCost30 != 20 {
		t.Errorf("Renew cost defaults = %v/%v, want 10/20", config.RenewCost15, config.RenewCost30)
	}

	if config.LifetimeDays != 15 {
		t.Errorf("LifetimeDays default = %v, want %v", config.LifetimeDays, 15)
	}

	if config.DefaultRAMGB != 8 || config.DefaultCPU != 2 || config.DefaultDiskGB != 20 {
		t.Errorf("Default plan = %v/%v/%v, want 8/2/20",
			config.DefaultRAMGB, config.DefaultCPU, config.DefaultDiskGB)
	}

	if config.ExpirySweepInterval != 10*time.Minute {
		t.Errorf("ExpirySweepInterval default = %v, want %v", config.ExpirySweepInterval, 10*time.Minute)
	}

	if config.MQTTPort != "1883" {
		t.Errorf("MQTTPort default = %v, want %v", config.MQTTPort, "1883")
	}

	if config.Port != "3000" {
		t.Errorf("Port default = %v, want %v", config.Port, "3000")
	}

	if config.Environment != "dev" {
		t.Errorf("Environment default = %v, want %v", config.Environment, "dev")
	}
}

func TestDefaultSpecString(t *testing.T) {
	resetForTesting()
	os.Unsetenv("defaultRamGb")
	os.Unsetenv("defaultCpu")
	os.Unsetenv("defaultDiskGb")

	config, _ := Load()
	want := "8GB RAM, 2 CPU, 20GB Disk"
	if got := config.DefaultSpecString(); got != want {
		t.Errorf("DefaultSpecString() = %v, want %v", got, want)
	}
}
