package providers

import (
	"fragments/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Game: structures.GameConfig{
			Timezone:      "UTC",
			PlayTime:      60 * time.Second,
			SessionTTL:    5 * time.Minute,
			RetentionDays: 7,
			RevealWindow:  time.Hour,
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 18090,
		},
		Store: structures.StoreConfig{
			Size: 32,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/fragments.dat",
			SaveInterval: 30 * time.Second,
		},
		Archive: structures.ArchiveConfig{
			Dir: "/tmp/fragments-archive",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyTimezone(t *testing.T) {
	c := validConfig()
	c.Game.Timezone = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BogusTimezone(t *testing.T) {
	c := validConfig()
	c.Game.Timezone = "Mars/Olympus_Mons"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPlayTime(t *testing.T) {
	c := validConfig()
	c.Game.PlayTime = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroRetention(t *testing.T) {
	c := validConfig()
	c.Game.RetentionDays = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
