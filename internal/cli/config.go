package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/antcheck/pkg/errors"
)

// configFile is the config file name searched for in the working directory
// and in the user config directory.
const configFile = appName + ".toml"

// Config is the optional antcheck.toml file.
//
//	[check]
//	report = "antenna.rpt"
//	violations_only = true
//
//	[diode]
//	cell = "ANTENNA_X1"
//	pin = "A"
//
// Command-line flags override every value.
type Config struct {
	Check CheckConfig `toml:"check"`
	Diode DiodeConfig `toml:"diode"`
}

// CheckConfig holds defaults for the check command.
type CheckConfig struct {
	Report         string `toml:"report"`
	ViolationsOnly bool   `toml:"violations_only"`
}

// DiodeConfig names the diode cell used by the diodes command.
type DiodeConfig struct {
	Cell string `toml:"cell"`
	Pin  string `toml:"pin"`
}

func defaultConfig() Config {
	return Config{Check: CheckConfig{Report: defaultReport}}
}

// loadConfig reads the config file. An explicit path must exist; without
// one, ./antcheck.toml and then the user config dir are tried and a missing
// file yields the defaults.
func loadConfig(path string) (Config, error) {
	if path != "" {
		return decodeConfig(path)
	}

	candidates := []string{configFile}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFile))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return decodeConfig(p)
	}
	return defaultConfig(), nil
}

func decodeConfig(path string) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// config loads the config file selected by --config.
func (c *CLI) config() (Config, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return Config{}, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}
