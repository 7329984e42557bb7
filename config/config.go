// Ininicializing common application configuration
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Gallery GalleryConfig `mapstructure:"gallery"`
	Charts  ChartsConfig  `mapstructure:"charts"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`
	TemplatesDir string `mapstructure:"templates_dir"`
}

type StorageConfig struct {
	BasePath string `mapstructure:"base_path"`
}

type DatasetConfig struct {
	Path          string  `mapstructure:"path"`
	DefaultAgeMin float64 `mapstructure:"default_age_min"`
	DefaultAgeMax float64 `mapstructure:"default_age_max"`
	PreviewRows   int     `mapstructure:"preview_rows"`
}

type GalleryConfig struct {
	DefaultImage string `mapstructure:"default_image"`
	MaxUploadMB  int64  `mapstructure:"max_upload_mb"`
	ResizeWidth  int    `mapstructure:"resize_width"`
	ResizeHeight int    `mapstructure:"resize_height"`
}

type ChartsConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type KafkaConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Brokers        []string      `mapstructure:"brokers"`
	Topic          string        `mapstructure:"topic"`
	GroupID        string        `mapstructure:"group_id"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.templates_dir", "./internal/web/templates")
	v.SetDefault("storage.base_path", ".")
	v.SetDefault("dataset.path", "data/synthetic_titanic.csv")
	v.SetDefault("dataset.default_age_min", 10)
	v.SetDefault("dataset.default_age_max", 60)
	v.SetDefault("dataset.preview_rows", 5)
	v.SetDefault("gallery.default_image", "assets/default.png")
	v.SetDefault("gallery.max_upload_mb", 20)
	v.SetDefault("gallery.resize_width", 150)
	v.SetDefault("gallery.resize_height", 150)
	v.SetDefault("charts.width", 640)
	v.SetDefault("charts.height", 480)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka.topic", "insight-events")
	v.SetDefault("kafka.group_id", "insight-auditor")
	v.SetDefault("kafka.publish_timeout", 2*time.Second)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config/config.yaml (or the directory in CONFIG_PATH).
// Every key can be overridden with an INSIGHT_ prefixed variable, e.g. INSIGHT_SERVER_PORT.
func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()
	setDefaults(viperInstance)

	viperInstance.AddConfigPath(GetEnv("CONFIG_PATH", "./config"))
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	viperInstance.SetEnvPrefix("insight")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
