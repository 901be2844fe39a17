package builder

import (
	"os"

	"github.com/Grackins/btps/model"
)

// pasStrategy builds Pascal solutions in a single compiler invocation. With
// a grader, grader.pas is compiled directly and pulls in the solution unit
// by its canonical name.
type pasStrategy struct{}

func (s *pasStrategy) Build(e *Env) (*Artifact, error) {
	name := e.Cfg.ProblemName
	exe := exeName(name)
	target := name + ".pas"

	if e.Grader.Required {
		if err := e.fetchGrader("grader.pas"); err != nil {
			return nil, err
		}
		// shared support unit, present for some tasks only
		if _, err := os.Stat(e.graderPath("graderlib.pas")); err == nil {
			if err := e.fetchGrader("graderlib.pas"); err != nil {
				return nil, err
			}
		}
		target = "grader.pas"
	}

	args := append(append([]string{}, e.Cfg.PasOpts...), target, "-o"+exe)
	if err := e.run(e.tool("fpc"), args...); err != nil {
		return nil, err
	}
	// fpc exits zero on a bare unit without emitting a program
	if _, err := os.Stat(exe); err != nil {
		return nil, model.Errf(model.NO_ARTIFACT_ERR,
			"%s compiled without producing %s: source has no program entry point", target, exe)
	}
	return &Artifact{Kind: Native, Path: exe, MainFile: exe}, nil
}
