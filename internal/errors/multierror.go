package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MultiError collects independent failures, for example one per batch input or one per
// invalid configuration block.
type MultiError struct {
	inner *multierror.Error
}

// Append returns a MultiError holding the current errors plus errs. Nil errors are skipped.
func (errs *MultiError) Append(appendErrs ...error) *MultiError {
	if errs == nil {
		errs = &MultiError{inner: new(multierror.Error)}
	}

	return &MultiError{inner: multierror.Append(errs.inner, appendErrs...)}
}

// WrappedErrors returns the collected errors.
func (errs *MultiError) WrappedErrors() []error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	return errs.inner.WrappedErrors()
}

func (errs *MultiError) Unwrap() []error {
	return errs.WrappedErrors()
}

// Len returns the number of collected errors.
func (errs *MultiError) Len() int {
	return len(errs.WrappedErrors())
}

// ErrorOrNil returns nil when nothing was collected.
func (errs *MultiError) ErrorOrNil() error {
	if errs == nil || errs.inner == nil || errs.inner.ErrorOrNil() == nil {
		return nil
	}

	return errs
}

func (errs *MultiError) Error() string {
	wrapped := errs.WrappedErrors()
	items := make([]string, 0, len(wrapped))

	for _, err := range wrapped {
		items = append(items, bullet(err.Error()))
	}

	if len(items) == 1 {
		return "error occurred:\n\n" + items[0] + "\n"
	}

	return fmt.Sprintf("%d errors occurred:\n\n%s\n", len(items), strings.Join(items, "\n\n"))
}

func bullet(str string) string {
	lines := strings.Split(strings.ReplaceAll(str, "\r\n", "\n"), "\n")

	for i := range lines {
		if i == 0 {
			lines[i] = "* " + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
