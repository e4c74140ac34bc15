package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ConfigName is the config file base name looked up in the config directory.
const ConfigName = "viewer"

// EnvPrefix prefixes environment overrides, e.g. VIEWER_MODEL_PATH.
const EnvPrefix = "VIEWER"

// WindowConfig holds window settings.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// RendererConfig holds surface and pipeline settings.
type RendererConfig struct {
	VSync      bool       `mapstructure:"vsync"`
	MSAA       int        `mapstructure:"msaa"`
	ClearColor [4]float64 `mapstructure:"clear_color"`
	Software   bool       `mapstructure:"software"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Config is the resolved viewer configuration.
type Config struct {
	Window     WindowConfig
	Renderer   RendererConfig
	Log        LogConfig
	ModelPath  string
	ShaderPath string
	Profiling  bool
}

func setDefaults() {
	viper.SetDefault("window.width", 800)
	viper.SetDefault("window.height", 600)
	viper.SetDefault("window.title", "LearnOpenGL")

	viper.SetDefault("model.path", "resources/objects/nanosuit/nanosuit.obj")
	viper.SetDefault("shader.path", "shaders/model_loading.wgsl")

	viper.SetDefault("renderer.vsync", true)
	viper.SetDefault("renderer.msaa", 4)
	viper.SetDefault("renderer.clear_color", []float64{0.05, 0.05, 0.05, 1.0})
	viper.SetDefault("renderer.software", false)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)

	viper.SetDefault("profiling", false)
}

// Load sets default values, reads the optional viewer config file from configDir and applies
// VIEWER_* environment overrides. A missing config file is not an error.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{
		Window: WindowConfig{
			Width:  viper.GetInt("window.width"),
			Height: viper.GetInt("window.height"),
			Title:  viper.GetString("window.title"),
		},
		Renderer: RendererConfig{
			VSync:    viper.GetBool("renderer.vsync"),
			MSAA:     viper.GetInt("renderer.msaa"),
			Software: viper.GetBool("renderer.software"),
		},
		Log: LogConfig{
			Level:  viper.GetString("log.level"),
			Pretty: viper.GetBool("log.pretty"),
		},
		ModelPath:  viper.GetString("model.path"),
		ShaderPath: viper.GetString("shader.path"),
		Profiling:  viper.GetBool("profiling"),
	}

	clearColor, err := float64Slice(viper.Get("renderer.clear_color"))
	if err != nil {
		return Config{}, fmt.Errorf("renderer.clear_color: %w", err)
	}
	if len(clearColor) != 4 {
		return Config{}, fmt.Errorf("renderer.clear_color must have 4 components, got %d", len(clearColor))
	}
	copy(cfg.Renderer.ClearColor[:], clearColor)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Renderer.MSAA {
	case 1, 4:
	default:
		return fmt.Errorf("renderer.msaa must be 1 or 4, got %d", c.Renderer.MSAA)
	}
	if c.ModelPath == "" {
		return errors.New("model.path must not be empty")
	}
	if c.ShaderPath == "" {
		return errors.New("shader.path must not be empty")
	}
	return nil
}

// float64Slice accepts the shapes a list value can take across defaults, config files and
// environment variables ("0.1,0.2,0.3,1").
func float64Slice(v any) ([]float64, error) {
	var items []any
	switch s := v.(type) {
	case []float64:
		return s, nil
	case []any:
		items = s
	case string:
		for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
			items = append(items, f)
		}
	default:
		return nil, fmt.Errorf("unsupported list type %T", v)
	}

	out := make([]float64, len(items))
	for i, item := range items {
		f, err := cast.ToFloat64E(item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
