package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

const migratedHeader = "# overcheck configuration\n# Migrated from JSON format\n\n"

// MigrationResult reports what a migration did or, on a dry run, would do.
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
	// Dropped lists keys in the JSON file that overcheck does not recognise.
	Dropped []string
}

// MigrateJSONToYAML rewrites the JSON config at jsonPath as YAML at
// yamlPath. Unknown keys are dropped and an existing YAML file is left alone.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{SourcePath: jsonPath, TargetPath: yamlPath, DryRun: dryRun}

	if !fileExists(jsonPath) {
		result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
		return result, nil
	}
	if fileExists(yamlPath) {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	values, dropped, err := readLegacyJSON(jsonPath)
	if err != nil {
		return nil, err
	}
	result.Dropped = dropped

	verb := "Migrated"
	if dryRun {
		verb = "Would migrate"
	} else if err := writeMigrated(yamlPath, values); err != nil {
		return nil, err
	}

	result.Success = true
	result.Message = fmt.Sprintf("%s %s → %s", verb, jsonPath, yamlPath)
	if len(dropped) > 0 {
		result.Message += fmt.Sprintf(" (dropped unknown keys: %s)", strings.Join(dropped, ", "))
	}
	return result, nil
}

// readLegacyJSON returns the recognised top-level keys of a JSON config
// and the sorted names of the rest.
func readLegacyJSON(path string) (map[string]interface{}, []string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to parse JSON config %s", path)
	}

	known := GetDefaults()
	values := make(map[string]interface{})
	var dropped []string
	for key, v := range k.Raw() {
		if _, ok := known[key]; ok {
			values[key] = v
			continue
		}
		dropped = append(dropped, key)
	}
	sort.Strings(dropped)
	return values, dropped, nil
}

func writeMigrated(path string, values map[string]interface{}) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "failed to convert to YAML")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := os.WriteFile(path, append([]byte(migratedHeader), data...), 0o644); err != nil {
		return errors.Wrap(err, "failed to write YAML config")
	}
	return nil
}

// MigrateUserConfig migrates the legacy user JSON config.
func MigrateUserConfig(dryRun bool) (*MigrationResult, error) {
	jsonPath, err := LegacyUserConfigPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolving legacy user config path")
	}
	yamlPath, err := UserConfigPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolving user config path")
	}
	return MigrateJSONToYAML(jsonPath, yamlPath, dryRun)
}

// MigrateProjectConfig migrates the legacy project JSON config.
func MigrateProjectConfig(dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(), ProjectConfigPath(), dryRun)
}

// RemoveLegacyConfig moves a migrated JSON config aside to <path>.bak.
func RemoveLegacyConfig(jsonPath string, dryRun bool) error {
	if dryRun || !fileExists(jsonPath) {
		return nil
	}
	if err := os.Rename(jsonPath, jsonPath+".bak"); err != nil {
		return errors.Wrap(err, "failed to back up legacy config")
	}
	return nil
}
