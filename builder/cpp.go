package builder

import (
	"os"
	"path/filepath"

	"github.com/Grackins/btps/model"
	"github.com/Grackins/btps/sandbox"
)

// cppStrategy builds C-family solutions in two phases: the grader is
// compiled alone to an object file, its source is removed, and the solution
// is linked against the object.
type cppStrategy struct{}

func (s *cppStrategy) Build(e *Env) (*Artifact, error) {
	name := e.Cfg.ProblemName
	exe := exeName(name)
	objects := []string{name + ".cpp"}

	if e.Grader.Required {
		header := name + ".h"
		if err := e.fetchGrader(header); err != nil {
			return nil, err
		}
		if err := e.fetchGrader("grader.cpp"); err != nil {
			return nil, err
		}
		args := append(append([]string{}, e.Cfg.CppOpts...), "-c", "grader.cpp", "-o", "grader.o")
		if err := e.run(e.tool("gxx"), args...); err != nil {
			return nil, err
		}
		// the grader source must not leak into the sandbox handed off
		// to the judging runtime
		if err := os.Remove("grader.cpp"); err != nil {
			return nil, model.WrapErr(model.IO_ERR, err, "remove grader source")
		}
		objects = append(objects, "grader.o")
	}

	if shim := e.Cfg.CppShim; shim != "" {
		shimName := filepath.Base(shim)
		if err := sandbox.CopyFile(shim, shimName); err != nil {
			return nil, err
		}
		objects = append(objects, shimName)
	}

	args := append(append([]string{}, e.Cfg.CppOpts...), objects...)
	args = append(args, "-o", exe)
	if err := e.run(e.tool("gxx"), args...); err != nil {
		return nil, err
	}
	return &Artifact{Kind: Native, Path: exe, MainFile: exe}, nil
}
