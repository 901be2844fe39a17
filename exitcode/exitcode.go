package exitcode

import (
	"github.com/Grackins/btps/model"
)

// Process exit codes.
// Compiler/interpreter/manager failures propagate the failing tool's own
// exit status instead of one of these.
const (
	OK          = 0
	Argument    = 2 // bad invocation
	Config      = 3 // configuration error, unsupported language/grader, missing template/interpreter
	Internal    = 4 // filesystem failure or unreachable internal branch
	NoArtifact  = 5 // tool exited zero but produced no executable
	ToolDefault = 1 // tool failed without reporting an exit status
)

// FromError maps a build error to the process exit code.
func FromError(err error) int {
	if err == nil {
		return OK
	}
	switch model.KindOf(err) {
	case model.ARGUMENT_ERR:
		return Argument
	case model.CONFIG_ERR, model.UNSUPPORTED_LANG_ERR, model.UNSUPPORTED_GRADER_ERR,
		model.NO_TEMPLATE_ERR, model.NO_INTERPRETER_ERR:
		return Config
	case model.COMPILE_ERR, model.MANAGER_BUILD_ERR:
		if exit := model.ToolExitOf(err); exit != 0 {
			return exit
		}
		return ToolDefault
	case model.NO_ARTIFACT_ERR:
		return NoArtifact
	default:
		return Internal
	}
}
