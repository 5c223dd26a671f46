package domain

import "fmt"

// ConfigError reports a config file that could not be read, parsed or validated.
// Field is empty when the whole file is at fault.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %s: %v", e.Path, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
