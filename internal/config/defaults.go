package config

// GetDefaultConfigTemplate returns a commented config file describing every option.
func GetDefaultConfigTemplate() string {
	return `# overcheck configuration
# Precedence: OVERCHECK_* env vars > .overcheck/config.yml > ~/.config/overcheck/config.yml

# Verification
mode: recent                          # Authoritative ancestor: recent | topmost
allow_multiple_inheritance: false     # Verify multi-base classes using their C3 order

# Output
format: text                          # Report format: text | json | yaml
parallel: 4                           # Declaration files verified concurrently (1-64)

# Diagnostics (written to stderr)
log_level: warn                       # debug | info | warn | error
log_json: false                       # JSON log lines instead of console output
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"mode":                       "recent",
		"allow_multiple_inheritance": false,
		"format":                     "text",
		"parallel":                   4,
		"log_level":                  "warn",
		"log_json":                   false,
	}
}
