package telemetry

import "fmt"

// ErrorMissingEnvVariable is returned when an exporter needs a setting that was not provided.
type ErrorMissingEnvVariable struct {
	Vars []string
}

func (e *ErrorMissingEnvVariable) Error() string {
	return fmt.Sprintf("missing environment variable: %v", e.Vars)
}

// ErrorUnknownExporter is returned for an exporter name we do not support.
type ErrorUnknownExporter struct {
	Kind string
	Name string
}

func (e *ErrorUnknownExporter) Error() string {
	return fmt.Sprintf("unknown %s exporter %q", e.Kind, e.Name)
}
