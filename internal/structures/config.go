package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type GameConfig struct {
	Timezone      string        `yaml:"timezone" validate:"required"`
	PlayTime      time.Duration `yaml:"playTime" validate:"required|min:1"`
	SessionTTL    time.Duration `yaml:"sessionTTL" validate:"required|min:1"`
	RetentionDays int           `yaml:"retentionDays" validate:"required|min:1"`
	RevealWindow  time.Duration `yaml:"revealWindow" validate:"required|min:1"`
}

type StoreConfig struct {
	Size int `yaml:"size" validate:"required|min:1"`
}

type ArchiveConfig struct {
	Dir string `yaml:"dir" validate:"required|unixPath"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Game        GameConfig    `yaml:"game"`
	WebServer   Server        `yaml:"webServer"`
	Store       StoreConfig   `yaml:"store"`
	Persistence Persistence   `yaml:"persistence"`
	Archive     ArchiveConfig `yaml:"archive"`
	Logger      LoggerConfig  `yaml:"logger"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
