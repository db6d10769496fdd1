// Package settings loads the chartly configuration and persists user preferences.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CHARTLY_LOG_LEVEL.
const EnvPrefix = "CHARTLY"

// Config is the chartly configuration.
type Config struct {
	// Log configures the global logger.
	Log Log `mapstructure:"log" toml:"log"`
	// Render holds default render options.
	Render Render `mapstructure:"render" toml:"render"`
	// Export configures where exported files go.
	Export Export `mapstructure:"export" toml:"export"`
	// HTTP configures the serve command.
	HTTP HTTPServer `mapstructure:"http_server" toml:"http_server"`
	// SettingsFile is the TOML file holding user preferences.
	SettingsFile string `mapstructure:"settings_file" toml:"settings_file"`
}

type Log struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

type Render struct {
	Width  int    `mapstructure:"width" toml:"width"`
	Height int    `mapstructure:"height" toml:"height"`
	Format string `mapstructure:"format" toml:"format"`
}

type Export struct {
	// BaseDir contains the Pictures and Documents folders.
	BaseDir string `mapstructure:"base_dir" toml:"base_dir"`
}

type HTTPServer struct {
	Address      string        `mapstructure:"address" toml:"address"`
	Port         int           `mapstructure:"port" toml:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" toml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" toml:"write_timeout"`
	// MaxBodyBytes limits uploaded CSV bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" toml:"max_body_bytes"`
}

// Addr returns the listen address.
func (h HTTPServer) Addr() string {
	return fmt.Sprintf("%s:%d", h.Address, h.Port)
}

// Meta describes how the configuration was loaded.
type Meta struct {
	FileNotFound bool
	DotEnvUsed   bool
}

func defaults() map[string]any {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return map[string]any{
		"log.level":                  "info",
		"log.file":                   "",
		"render.width":               800,
		"render.height":              600,
		"render.format":              "png",
		"export.base_dir":            home,
		"http_server.address":        "",
		"http_server.port":           8080,
		"http_server.read_timeout":   "10s",
		"http_server.write_timeout":  "30s",
		"http_server.max_body_bytes": int64(1 << 20),
		"settings_file":              filepath.Join(home, ".config", "chartly", "settings.toml"),
	}
}

var boundFlags = []string{
	"log.level", "log.file", "render.width", "render.height", "export.base_dir",
	"http_server.address", "http_server.port", "settings_file",
}

// DefineFlags registers persistent flags that override configuration keys.
func DefineFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("log.level", "info", "log level: trace, debug, info, warn, error or none")
	flags.String("log.file", "", "optional log file, logs go to stderr when empty")
	flags.Int("render.width", 800, "image width in pixels")
	flags.Int("render.height", 600, "image height in pixels")
	flags.String("export.base_dir", "", "directory holding Pictures/Chartly and Documents/Chartly")
	flags.String("http_server.address", "", "interface address to listen on")
	flags.Int("http_server.port", 8080, "port to bind HTTP server to")
	flags.String("settings_file", "", "path of the preferences file")
}

// LoadDotEnv loads path into the environment when the file exists.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("error loading %s: %w", path, err)
	}
	return true, nil
}

// GetConfig merges defaults, the optional config file, CHARTLY_ environment
// variables and changed command flags, in increasing priority.
func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, name := range boundFlags {
			flag := lookupFlag(cmd, name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(name, flag); err != nil {
				return Config{}, Meta{}, err
			}
		}
	}

	meta := Meta{}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound *os.PathError
			if !errors.As(err, &notFound) {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
			meta.FileNotFound = true
		}
	}

	conf := Config{}
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, meta, nil
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

// DumpTOML encodes the configuration as TOML.
func DumpTOML(conf Config) ([]byte, error) {
	return toml.Marshal(conf)
}
