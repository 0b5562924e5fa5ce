// Package config loads overcheck settings using koanf.
// Priority: environment variables (OVERCHECK_*) > project config (.overcheck/config.yml)
// > user config (~/.config/overcheck/config.yml) > defaults. Legacy JSON files
// are still read, with a warning pointing at 'overcheck config migrate'.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OVERCHECK_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration holds overcheck settings.
type Configuration struct {
	// Mode is the default resolution mode: recent or topmost.
	Mode string `koanf:"mode" yaml:"mode" json:"mode" validate:"oneof=recent topmost"`
	// AllowMultipleInheritance verifies classes with several bases using
	// their C3 order instead of rejecting them.
	AllowMultipleInheritance bool `koanf:"allow_multiple_inheritance" yaml:"allow_multiple_inheritance" json:"allow_multiple_inheritance"`
	// Format is the report format: text, json or yaml.
	Format string `koanf:"format" yaml:"format" json:"format" validate:"oneof=text json yaml"`
	// Parallel limits how many declaration files are verified at once.
	Parallel int `koanf:"parallel" yaml:"parallel" json:"parallel" validate:"min=1,max=64"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	// LogJSON switches diagnostics to JSON lines.
	LogJSON bool `koanf:"log_json" yaml:"log_json" json:"log_json"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .overcheck/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path
	UserConfigPath string
	// SkipUserConfig ignores user-level files entirely
	SkipUserConfig bool
	// WarningWriter receives legacy-format warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses legacy-format warnings
	SkipWarnings bool
}

// Loaded is a configuration together with the source of each key.
type Loaded struct {
	Config  *Configuration
	Sources map[string]ConfigSource
}

// Keys returns the configuration keys in sorted order.
func (l *Loaded) Keys() []string {
	keys := make([]string, 0, len(l.Sources))
	for k := range l.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	loaded, err := LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
	if err != nil {
		return nil, err
	}
	return loaded.Config, nil
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Loaded, error) {
	k := koanf.New(".")
	sources := make(map[string]ConfigSource)
	last := make(map[string]string)
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)
	track(k, sources, last, SourceDefault)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.UserConfigPath, warningWriter, opts.SkipWarnings); err != nil {
			return nil, err
		}
		track(k, sources, last, SourceUser)
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	track(k, sources, last, SourceProject)

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}
	track(k, sources, last, SourceEnv)

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Sources: sources}, nil
}

// track attributes each key whose value changed since the previous layer
// to source.
func track(k *koanf.Koanf, sources map[string]ConfigSource, last map[string]string, source ConfigSource) {
	for key, value := range k.All() {
		current := fmt.Sprint(value)
		if prev, seen := last[key]; !seen || prev != current {
			sources[key] = source
		}
		last[key] = current
	}
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadUserConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath := customPath
	if userYAMLPath == "" {
		userYAMLPath, _ = UserConfigPath()
	}
	legacyUserPath, _ := LegacyUserConfigPath()
	if customPath != "" {
		legacyUserPath = ""
	}

	userYAMLExists := fileExists(userYAMLPath)
	legacyUserExists := fileExists(legacyUserPath)

	if userYAMLExists {
		if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
			return errors.Wrap(err, "loading user YAML config")
		}
		warnLegacyExists(warningWriter, legacyUserPath, userYAMLPath, legacyUserExists, skipWarnings, "--user")
	} else if legacyUserExists {
		if err := loadLegacyJSONConfig(k, legacyUserPath, "user", warningWriter, skipWarnings, "--user"); err != nil {
			return errors.Wrap(err, "loading legacy user JSON config")
		}
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	legacyProjectPath := LegacyProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
		legacyProjectPath = ""
	}

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return errors.Wrap(err, "loading project YAML config")
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings, "--project")
	} else if legacyProjectExists {
		if err := loadLegacyJSONConfig(k, legacyProjectPath, "project", warningWriter, skipWarnings, "--project"); err != nil {
			return errors.Wrap(err, "loading legacy project JSON config")
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return errors.Wrapf(err, "validating YAML syntax for %s config", configType)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return errors.Wrapf(err, "failed to load %s config %s", configType, path)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path, configType string, warningWriter io.Writer, skipWarnings bool, migrateFlag string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return errors.Wrapf(err, "failed to load legacy %s config %s", configType, path)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'overcheck config migrate %s' to migrate to YAML format.\n\n", migrateFlag)
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool, migrateFlag string) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Run 'overcheck config migrate %s' to remove the legacy file.\n\n", migrateFlag)
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return errors.Wrap(err, "failed to load environment config")
	}
	return nil
}

// finalizeConfig unmarshals, normalizes and validates
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: OVERCHECK_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
