package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"repo-link/errors"
	"repo-link/helpers"
)

const (
	// DefaultConfigName is looked up in the home directory.
	DefaultConfigName = ".repo-link.json"
	// EditorEnvVar supplies the editor when neither flag nor file does.
	EditorEnvVar = "EDITOR"
	// ForksDirName is the second default parent, under the home directory.
	ForksDirName = "Forks"
)

// Config represents the resolved settings for one invocation
type Config struct {
	Editor  string   `koanf:"editor"`
	Parents []string `koanf:"parents"`
}

// Overrides carries command-line values. Empty fields leave the lower layers
// untouched.
type Overrides struct {
	ConfigPath string
	Editor     string
	Parents    []string
}

// DefaultConfig returns the configuration used when nothing else is set:
// the home directory and ~/Forks as parents, and no editor.
func DefaultConfig() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigLoad, "error resolving home directory")
	}
	return Config{
		Parents: []string{homeDir, filepath.Join(homeDir, ForksDirName)},
	}, nil
}

// DefaultConfigPath returns ~/.repo-link.json.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "error resolving home directory")
	}
	return filepath.Join(homeDir, DefaultConfigName), nil
}

// LoadConfig layers, lowest first: defaults, $EDITOR, the JSON config file,
// then the command-line overrides.
func LoadConfig(o Overrides) (Config, error) {
	defaults, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	k := koanf.New(".")

	base := map[string]interface{}{"parents": defaults.Parents}
	if editor := strings.TrimSpace(os.Getenv(EditorEnvVar)); editor != "" {
		base["editor"] = editor
	}
	if err := k.Load(confmap.Provider(base, "."), nil); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}

	if err := loadFile(k, o.ConfigPath); err != nil {
		return Config{}, err
	}

	flags := map[string]interface{}{}
	if o.Editor != "" {
		flags["editor"] = o.Editor
	}
	if len(o.Parents) > 0 {
		flags["parents"] = o.Parents
	}
	if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrInternal, "failed to load command-line values")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigParse, "error decoding configuration")
	}

	if len(cfg.Parents) == 0 {
		cfg.Parents = defaults.Parents
	}
	parents := make([]string, 0, len(cfg.Parents))
	for _, parent := range cfg.Parents {
		expanded, err := helpers.ExpandHome(parent)
		if err != nil {
			return Config{}, errors.Wrapf(err, errors.ErrConfigLoad, "invalid parent directory %q", parent)
		}
		parents = append(parents, expanded)
	}
	cfg.Parents = parents

	cfg.Editor = strings.TrimSpace(cfg.Editor)
	if cfg.Editor == "" {
		return Config{}, errors.Newf(errors.ErrNoEditor,
			"no editor configured: pass --editor, set \"editor\" in %s, or export %s",
			DefaultConfigName, EditorEnvVar)
	}

	return cfg, nil
}

// loadFile merges the JSON config. A missing file is only an error when the
// path was given explicitly.
func loadFile(k *koanf.Koanf, path string) error {
	explicit := path != ""
	if explicit {
		expanded, err := helpers.ExpandHome(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "invalid config path %q", path)
		}
		path = expanded
	} else {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && stderrors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "error reading config file %s", path).
			WithDetail("path", path)
	}

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "error parsing config file %s", path).
			WithDetail("path", path)
	}
	return nil
}
