package model

import (
	"errors"
	"fmt"
)

// Kind classifies every failure a build can hit.
type Kind int

const (
	ARGUMENT_ERR Kind = iota + 1 // bad invocation
	CONFIG_ERR                   // bad or missing required setting
	UNSUPPORTED_LANG_ERR
	UNSUPPORTED_GRADER_ERR
	IO_ERR
	COMPILE_ERR // error from real compiler/interpreter, carries its exit status
	NO_ARTIFACT_ERR
	NO_INTERPRETER_ERR
	NO_TEMPLATE_ERR
	MANAGER_BUILD_ERR
	ILLEGAL_STATE_ERR // unreachable internal branch
)

// BuildError is the single error type crossing component boundaries.
// ToolExit is only meaningful for COMPILE_ERR and MANAGER_BUILD_ERR.
type BuildError struct {
	Kind     Kind
	Msg      string
	ToolExit int
	Err      error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func Errf(kind Kind, format string, args ...interface{}) *BuildError {
	return &BuildError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func WrapErr(kind Kind, err error, format string, args ...interface{}) *BuildError {
	return &BuildError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// ToolErr records a failing external tool together with its exit status.
func ToolErr(kind Kind, exit int, format string, args ...interface{}) *BuildError {
	return &BuildError{Kind: kind, Msg: fmt.Sprintf(format, args...), ToolExit: exit}
}

// KindOf extracts the Kind of err, ILLEGAL_STATE_ERR if it isn't a BuildError.
func KindOf(err error) Kind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ILLEGAL_STATE_ERR
}

// ToolExitOf extracts the failing tool's exit status, 0 if unknown.
func ToolExitOf(err error) int {
	var be *BuildError
	if errors.As(err, &be) {
		return be.ToolExit
	}
	return 0
}
