package config

import (
	"fmt"
	"reflect"
)

type PanicWhileParsingConfigError struct {
	RecoveredValue any
	ConfigFile     string
}

func (err PanicWhileParsingConfigError) Error() string {
	return fmt.Sprintf("Recovering panic while parsing '%s'. Got error of type '%v': %v", err.ConfigFile, reflect.TypeOf(err.RecoveredValue), err.RecoveredValue)
}

type ConfigNotFoundError struct {
	Path string
}

func (err ConfigNotFoundError) Error() string {
	return fmt.Sprintf("Config file %s does not exist. Pass --config or create it.", err.Path)
}

// InvalidFieldError reports a bad attribute of a field block.
type InvalidFieldError struct {
	Err   error
	Field string
}

func (err InvalidFieldError) Error() string {
	return fmt.Sprintf("field %q: %v", err.Field, err.Err)
}

func (err InvalidFieldError) Unwrap() error {
	return err.Err
}

type DuplicateFieldError struct {
	Field string
}

func (err DuplicateFieldError) Error() string {
	return fmt.Sprintf("field %q is defined more than once", err.Field)
}

type UnknownDefaultFieldError struct {
	Field string
}

func (err UnknownDefaultFieldError) Error() string {
	return fmt.Sprintf("default_field %q is not a defined field", err.Field)
}
