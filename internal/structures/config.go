package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath        string        `yaml:"filePath" validate:"required|unixPath"`
	RefreshInterval time.Duration `yaml:"refreshInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type EpicConfig struct {
	BaseURL string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Locale  string        `yaml:"locale" validate:"required"`
	Country string        `yaml:"country" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type SteamConfig struct {
	BaseURL      string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
	RateLimitRPS float64       `yaml:"rateLimitRps"`
}

type RatingConfig struct {
	Sources []string    `yaml:"sources" validate:"required"`
	Steam   SteamConfig `yaml:"steam"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Epic        EpicConfig    `yaml:"epic"`
	Rating      RatingConfig  `yaml:"rating"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
