package errors

import (
	"errors"
	"fmt"
	"strings"
)

type stackTracer interface {
	ErrorStack() string
}

// ErrorStack returns the stack traces found in err and in every error it wraps.
func ErrorStack(err error) string {
	var stacks []string

	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if traced, ok := err.(stackTracer); ok {
				stacks = append(stacks, traced.ErrorStack())
			}
		}
	}

	return strings.Join(stacks, "\n")
}

// ContainsStackTrace reports whether err, or any error it wraps, already carries a stack trace.
func ContainsStackTrace(err error) bool {
	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if _, ok := err.(stackTracer); ok {
				return true
			}
		}
	}

	return false
}

// Recover must be deferred. It turns a panic into an error with a stack trace and hands it to onPanic.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, ok := rec.(error)
		if !ok {
			err = fmt.Errorf("%v", rec) //nolint:err113
		}

		onPanic(New(err))
	}
}

// UnwrapMultiErrors flattens nested multi-errors into a single slice.
func UnwrapMultiErrors(err error) []error {
	if err == nil {
		return nil
	}

	var (
		queue = []error{err}
		flat  []error
	)

	for len(queue) > 0 {
		err, queue = queue[0], queue[1:]

		var multi interface{ Unwrap() []error }

		if errors.As(err, &multi) {
			queue = append(queue, multi.Unwrap()...)
			continue
		}

		flat = append(flat, err)
	}

	return flat
}
