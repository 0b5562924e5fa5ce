package override

import "strings"

// Mode selects which ancestor is authoritative for override checks.
type Mode string

const (
	// ModeRecent selects the nearest ancestor.
	ModeRecent Mode = "recent"
	// ModeTopmost selects the highest ancestor that is not the universal root.
	ModeTopmost Mode = "topmost"
)

// DefaultMode is the mode a fresh Registry starts with.
const DefaultMode = ModeRecent

// ValidModes lists all valid resolution modes.
var ValidModes = []Mode{ModeRecent, ModeTopmost}

// ParseMode parses a mode token. Matching ignores case and surrounding space.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidModes {
		if mode == valid {
			return mode, nil
		}
	}
	return "", &ConfigurationError{Value: s}
}

// IsValid returns true if the mode is a known resolution mode.
func (m Mode) IsValid() bool {
	_, err := ParseMode(string(m))
	return err == nil
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Registry holds the active resolution mode. The zero value uses DefaultMode.
//
// A Registry is not synchronized; callers that change the mode while other
// goroutines verify classes must serialize access themselves.
type Registry struct {
	mode Mode
}

// NewRegistry returns a registry set to DefaultMode.
func NewRegistry() *Registry {
	return &Registry{mode: DefaultMode}
}

// SetMode changes the active mode. An invalid mode returns a
// *ConfigurationError and leaves the previous mode in place.
func (r *Registry) SetMode(mode Mode) error {
	parsed, err := ParseMode(string(mode))
	if err != nil {
		return err
	}
	r.mode = parsed
	return nil
}

// GetMode returns the active mode.
func (r *Registry) GetMode() Mode {
	if r.mode == "" {
		return DefaultMode
	}
	return r.mode
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used when a Verifier is
// created without an explicit mode or registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// SetMode sets the mode of the default registry.
func SetMode(mode Mode) error {
	return defaultRegistry.SetMode(mode)
}

// GetMode returns the mode of the default registry.
func GetMode() Mode {
	return defaultRegistry.GetMode()
}
