// Config loading for the restrack CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/brennanma/restrack/internal/paths"
	"github.com/brennanma/restrack/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBaseURI = "base_uri"
	cfgKeyOrg     = "org"
	cfgKeyListen  = "listen"
	cfgKeyDataDir = "data_dir"
)

// defaultConfigYAML is the content written to config.yaml on first
// run.
const defaultConfigYAML = `# Restrack server configuration

# Absolute URI prefix used in record URLs and hyperlinks.
base_uri: http://localhost:8730

# Listen address of the HTTP server.
listen: :8730

# Optional organization suffix recognized in unique identifier strings.
# org:

# Data directory (optional; overridable by --data-dir flag)
# data_dir:
`

// loadConfig reads config.yaml from the resolved config directory with
// Viper, layering RESTRACK_* environment variables and built-in
// defaults underneath. A missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBaseURI, types.DefaultBaseURI)
	v.SetDefault(cfgKeyListen, types.DefaultListen)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("RESTRACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		BaseURI: v.GetString(cfgKeyBaseURI),
		Org:     v.GetString(cfgKeyOrg),
		Listen:  v.GetString(cfgKeyListen),
		DataDir: v.GetString(cfgKeyDataDir),
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = paths.ResolveDataDir("")
	}
	return cfg, cfg.Validate()
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory (idempotent).
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
