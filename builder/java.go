package builder

import (
	"os"
	"path/filepath"

	"github.com/Grackins/btps/model"
)

// javaStrategy compiles the solution (and grader, when present) to classes
// and packages them into a jar naming the entry class. The grader's class
// drives execution whenever it exists.
type javaStrategy struct{}

func (s *javaStrategy) Build(e *Env) (*Artifact, error) {
	name := e.Cfg.ProblemName
	sources := []string{name + ".java"}
	entry := EntryClass(name, e.Grader.Required)

	if e.Grader.Required {
		if err := e.fetchGrader("grader.java"); err != nil {
			return nil, err
		}
		sources = append([]string{"grader.java"}, sources...)
	}

	args := append(append([]string{}, e.Cfg.JavacOpts...), sources...)
	if err := e.run(e.tool("javac"), args...); err != nil {
		return nil, err
	}

	classes, err := filepath.Glob("*.class")
	if err != nil {
		return nil, model.WrapErr(model.IO_ERR, err, "list class files")
	}
	if len(classes) == 0 {
		return nil, model.Errf(model.NO_ARTIFACT_ERR, "javac produced no class files")
	}

	jar := name + ".jar"
	jarArgs := append([]string{"cfe", jar, entry}, classes...)
	if err := e.run(e.tool("jar"), jarArgs...); err != nil {
		return nil, err
	}
	for _, class := range classes {
		if err := os.Remove(class); err != nil {
			return nil, model.WrapErr(model.IO_ERR, err, "remove intermediate %s", class)
		}
	}
	return &Artifact{Kind: Archive, Path: jar, MainFile: jar}, nil
}

// EntryClass is the designated jar entry point: the grader's class when a
// grader takes part, the solution's canonical class otherwise.
func EntryClass(problem string, graderRequired bool) string {
	if graderRequired {
		return "grader"
	}
	return problem
}
