package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kjstillabower/weather-snapshot/internal/validation"
)

const (
	DefaultWeatherAPIURL = "https://api.openweathermap.org/data/2.5/weather?"
	DefaultLocation      = "London,uk"

	maxLocationLength = 100
)

// Config holds the settings for one weather snapshot run.
type Config struct {
	// WeatherAPIKey may be empty; the run then prints a diagnostic instead of weather.
	WeatherAPIKey string
	WeatherAPIURL string `config:"weather_api.url" validate:"required,url"`
	Location      string `config:"weather_api.location" validate:"required,location"`

	LogLevel        string
	MetricsTextfile string
}

// HasAPIKey reports whether an API key was supplied by any configuration source.
func (c *Config) HasAPIKey() bool {
	return c.WeatherAPIKey != ""
}

type fileConfig struct {
	WeatherAPI struct {
		URL      string `yaml:"url"`
		Location string `yaml:"location"`
	} `yaml:"weather_api"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

type secretsFile struct {
	WeatherAPIKey string `yaml:"weather_api_key"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("config"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		_, err := validation.ValidateLocation(fl.Field().String(), maxLocationLength)
		return err == nil
	})
	return v
}

// Load resolves configuration relative to the working directory. Sources, lowest
// precedence first: built-in defaults, config/{ENV_NAME}.yaml (default dev),
// config/secrets.yaml, .env, then the process environment. Every file is optional.
func Load() (*Config, error) {
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	return loadFrom(cwd, env)
}

func loadFrom(dir, env string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		WeatherAPIURL: DefaultWeatherAPIURL,
		Location:      DefaultLocation,
	}

	configPath := filepath.Join(dir, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		cfg.applyFile(fc)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	secretsPath := filepath.Join(dir, "config", "secrets.yaml")
	secretsData, err := os.ReadFile(secretsPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read secrets file: %w", err)
		}
	} else {
		var sec secretsFile
		if err := yaml.Unmarshal(secretsData, &sec); err != nil {
			return nil, fmt.Errorf("parse secrets file: %w", err)
		}
		cfg.WeatherAPIKey = strings.TrimSpace(sec.WeatherAPIKey)
	}

	overrideFromEnv(&cfg.WeatherAPIKey, "WEATHER_API_KEY")
	overrideFromEnv(&cfg.WeatherAPIURL, "WEATHER_API_URL")
	overrideFromEnv(&cfg.Location, "WEATHER_LOCATION")
	overrideFromEnv(&cfg.LogLevel, "LOG_LEVEL")
	overrideFromEnv(&cfg.MetricsTextfile, "METRICS_TEXTFILE")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(fc fileConfig) {
	if v := strings.TrimSpace(fc.WeatherAPI.URL); v != "" {
		c.WeatherAPIURL = v
	}
	if v := strings.TrimSpace(fc.WeatherAPI.Location); v != "" {
		c.Location = v
	}
	c.LogLevel = strings.TrimSpace(fc.Log.Level)
	c.MetricsTextfile = strings.TrimSpace(fc.Metrics.Textfile)
}

// overrideFromEnv replaces *dst with the trimmed value of key when it is non-empty.
func overrideFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// validate checks struct tags and trims the location. Failures name the
// yaml key so the operator knows where to look.
func (c *Config) validate() error {
	c.Location = strings.TrimSpace(c.Location)
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, c.describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "url":
		return fmt.Sprintf("%s %q is not an absolute URL", fe.Field(), fe.Value())
	case "location":
		if _, err := validation.ValidateLocation(c.Location, maxLocationLength); err != nil {
			return fmt.Sprintf("%s %q: %v", fe.Field(), c.Location, err)
		}
	}
	return fmt.Sprintf("%s failed %s check", fe.Field(), fe.Tag())
}
