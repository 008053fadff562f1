package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidColor is wrapped by ConfigError when a shell's color shape
	// is outside the palette.
	ErrInvalidColor = errors.New("invalid shell color")
	// ErrUnknownShellType is returned by ByName for names outside the catalog.
	ErrUnknownShellType = errors.New("unknown shell type")
)

// ConfigError reports a Spec that cannot be burst.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("shell config: %s=%s: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
