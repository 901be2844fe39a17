package builder

import (
	"os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/lang"
	"github.com/Grackins/btps/model"
)

// pyStrategy byte-compiles the grader (or the solution, without one) as a
// syntax check. The artifact is the unbundled source itself; the grader
// imports the solution under the problem's canonical module name.
type pyStrategy struct {
	version lang.Language
}

func (s *pyStrategy) Build(e *Env) (*Artifact, error) {
	interp, err := Interpreter(e.Cfg, s.version)
	if err != nil {
		return nil, err
	}

	name := e.Cfg.ProblemName
	target := name + ".py"
	if e.Grader.Required {
		if err := e.fetchGrader("grader.py"); err != nil {
			return nil, err
		}
		target = "grader.py"
	}

	if err := e.run(interp, "-m", "py_compile", target); err != nil {
		return nil, err
	}
	return &Artifact{
		Kind:        Source,
		Path:        name + ".py",
		MainFile:    target,
		Interpreter: interp,
	}, nil
}

// Interpreter resolves the interpreter command by priority: explicit
// override, version-specific default, generic fallback.
func Interpreter(cfg *config.Config, version lang.Language) (string, error) {
	var candidates []string
	switch version {
	case lang.PY2:
		candidates = []string{cfg.Python2, "python2", "python"}
	case lang.PY3:
		candidates = []string{cfg.Python3, "python3", "python"}
	default:
		return "", model.Errf(model.ILLEGAL_STATE_ERR, "%q is not an interpreted language", version)
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := exec.LookPath(c); err == nil {
			log.Debugf("interpreter for %s: %s", version, c)
			return c, nil
		}
	}
	return "", model.Errf(model.NO_INTERPRETER_ERR, "no interpreter found for %s (tried %v)", version, candidates)
}
