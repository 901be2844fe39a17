package lang

import (
	"path/filepath"
	"strings"

	"github.com/Grackins/btps/model"
)

// Language is the closed set of languages a solution can be written in.
type Language string

const (
	CPP  Language = "cpp"
	PAS  Language = "pas"
	JAVA Language = "java"
	PY2  Language = "py2"
	PY3  Language = "py3"
)

type feature struct {
	ext       string // canonical extension of the solution copy in the sandbox
	graderDir string // per-language subdirectory under the grader base
}

var langMap = map[Language]feature{
	CPP:  {ext: ".cpp", graderDir: "cpp"},
	PAS:  {ext: ".pas", graderDir: "pas"},
	JAVA: {ext: ".java", graderDir: "java"},
	// both python dialects share one grader, imported as a module
	PY2: {ext: ".py", graderDir: "py"},
	PY3: {ext: ".py", graderDir: "py"},
}

var extMap = map[string]Language{
	".cpp":  CPP,
	".cc":   CPP,
	".pas":  PAS,
	".java": JAVA,
	".py2":  PY2,
	".py":   PY3,
}

// FromPath maps the solution file extension to its language.
// No default: an unrecognized extension is an error.
func FromPath(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := extMap[ext]; ok {
		return l, nil
	}
	return "", model.Errf(model.UNSUPPORTED_LANG_ERR, "unsupported solution extension %q", ext)
}

func (l Language) String() string {
	return string(l)
}

// Ext is the extension of the canonical solution copy in the sandbox.
// Note .cc sources are copied as .cpp and .py2 sources as .py, so graders
// always find the solution under the problem's canonical name.
func (l Language) Ext() string {
	return langMap[l].ext
}

// GraderDir is the per-language subdirectory under a grader base directory.
func (l Language) GraderDir() string {
	return langMap[l].graderDir
}

// Interpreted reports whether the artifact is raw interpretable source.
func (l Language) Interpreted() bool {
	return l == PY2 || l == PY3
}
