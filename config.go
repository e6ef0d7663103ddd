// config.go — persisted user configuration
//
// The CLI reads ~/.wolfera/path.yaml at startup to extend the module
// search path and tune the recursion limit without command-line flags. A
// missing file is created with defaults on first run so users have
// something to edit.
package wolfera

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfig is the on-disk shape of ~/.wolfera/path.yaml.
type UserConfig struct {
	// SearchPath lists extra directories consulted when resolving imports.
	SearchPath []string `yaml:"search_path"`
	// RecursionLimit overrides the evaluator depth bound when positive.
	RecursionLimit int `yaml:"recursion_limit"`
}

const defaultConfigYAML = `# Wolfera user configuration.
# Directories listed here are searched when resolving 'import' paths,
# after the importing file's directory and the working directory.
search_path: []

# Maximum evaluator nesting depth. 0 keeps the built-in default.
recursion_limit: 0
`

// ConfigPath returns the user config file location, ~/.wolfera/path.yaml.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wolfera", "path.yaml"), nil
}

// LoadUserConfig reads the user config, seeding the file with defaults if
// it does not exist yet. Any failure degrades to the zero config; running
// a script never depends on the config file being healthy.
func LoadUserConfig() UserConfig {
	var cfg UserConfig
	path, err := ConfigPath()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if mkerr := os.MkdirAll(filepath.Dir(path), 0o755); mkerr == nil {
			_ = os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
		}
		return cfg
	}
	if err != nil {
		return cfg
	}
	if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
		return UserConfig{}
	}
	return cfg
}
