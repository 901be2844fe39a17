// Package builder compiles one solution (plus grader, when the task has
// one) inside the sandbox and leaves a runnable artifact behind.
package builder

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/grader"
	"github.com/Grackins/btps/lang"
	"github.com/Grackins/btps/model"
	"github.com/Grackins/btps/sandbox"
)

// ArtifactKind describes the shape of the runnable unit a build produces.
type ArtifactKind int

const (
	Native  ArtifactKind = iota // single linked executable
	Archive                     // bytecode archive with a designated entry point
	Source                      // raw interpretable source, nothing else
)

// Artifact is the produced runnable unit.
type Artifact struct {
	Kind     ArtifactKind
	Path     string // file name inside the sandbox
	MainFile string // entry file the generated scripts invoke
	// Interpreter is the resolved interpreter command, interpreted
	// languages only.
	Interpreter string
}

// Strategy builds the artifact for one language. Strategies run with the
// working directory already set to the sandbox (see sandbox.Scoped) and
// refer to files by their sandbox-relative names.
type Strategy interface {
	Build(e *Env) (*Artifact, error)
}

// For selects the strategy once from the resolved language.
func For(l lang.Language) (Strategy, error) {
	switch l {
	case lang.CPP:
		return &cppStrategy{}, nil
	case lang.PAS:
		return &pasStrategy{}, nil
	case lang.JAVA:
		return &javaStrategy{}, nil
	case lang.PY2, lang.PY3:
		return &pyStrategy{version: l}, nil
	}
	return nil, model.Errf(model.ILLEGAL_STATE_ERR, "no build strategy for language %q", l)
}

// Env is the shared context of one build: configuration, sandbox and the
// compile-outputs log every tool invocation appends to.
type Env struct {
	Cfg    *config.Config
	Box    *sandbox.Sandbox
	Grader grader.Spec

	// Out receives the live tool output, os.Stdout in production.
	Out io.Writer

	logFile *os.File
}

// NewEnv opens a fresh compile-outputs log and, when a warning log is
// configured, makes sure it exists.
func NewEnv(cfg *config.Config, box *sandbox.Sandbox, spec grader.Spec) (*Env, error) {
	logFile, err := os.Create(cfg.CompileOutputs)
	if err != nil {
		return nil, model.WrapErr(model.IO_ERR, err, "create compile outputs log %s", cfg.CompileOutputs)
	}
	if cfg.WarnFile != "" {
		f, err := os.OpenFile(cfg.WarnFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logFile.Close()
			return nil, model.WrapErr(model.IO_ERR, err, "create warning log %s", cfg.WarnFile)
		}
		f.Close()
	}
	return &Env{Cfg: cfg, Box: box, Grader: spec, Out: os.Stdout, logFile: logFile}, nil
}

// Close flushes and closes the compile-outputs log.
func (e *Env) Close() {
	if e.logFile != nil {
		e.logFile.Close()
		e.logFile = nil
	}
}

// run invokes one external tool, streaming its combined output live while
// appending it to the compile-outputs log. A non-zero exit aborts the build
// with the tool's own exit status.
func (e *Env) run(name string, args ...string) error {
	log.Debugf("running: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	w := io.MultiWriter(e.Out, e.logFile)
	cmd.Stdout = w
	cmd.Stderr = w
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return model.ToolErr(model.COMPILE_ERR, ee.ExitCode(), "%s failed", name)
	}
	return model.WrapErr(model.CONFIG_ERR, err, "cannot run %s", name)
}

// tool resolves a tool role (gxx, fpc, javac, jar) to its command.
func (e *Env) tool(role string) string {
	if cmd, ok := e.Cfg.Tools[role]; ok && cmd != "" {
		return cmd
	}
	return role
}

// fetchGrader copies one grader file into the sandbox by name.
func (e *Env) fetchGrader(name string) error {
	return sandbox.CopyFile(e.graderPath(name), name)
}

func (e *Env) graderPath(name string) string {
	return filepath.Join(e.Grader.Dir, name)
}

// exeName is the canonical native executable name, e.g. aplusb.exe.
func exeName(problem string) string {
	return fmt.Sprintf("%s.exe", problem)
}
