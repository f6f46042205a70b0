package config

import "fmt"

// MissingKeyError reports a required key absent from the configuration file.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required key: %s", e.Key)
}

// RangeError reports a value outside its valid domain.
type RangeError struct {
	Key    string
	Value  any
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: invalid value %v, %s", e.Key, e.Value, e.Reason)
}
