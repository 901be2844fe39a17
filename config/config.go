package config

import (
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Grackins/btps/model"
)

// Config carries every external setting of one build invocation.
// It is constructed once in main and passed explicitly; nothing reads the
// environment after FromEnv returns.
type Config struct {
	BaseDir     string
	ProblemName string
	ProblemType string
	HasGrader   bool
	HasManager  bool

	Sandbox         string
	TemplatesDir    string
	GraderDir       string
	PublicGraderDir string
	ManagerDir      string

	CompileOutputs string
	WarnFile       string

	PreBuild  string
	PostBuild string

	CppOpts   []string
	CppShim   string
	PasOpts   []string
	JavacOpts []string
	Python2   string
	Python3   string

	// Tools maps a tool role (gxx, fpc, javac, jar) to the command to run.
	Tools map[string]string

	// WarnPatterns maps a language tag to its compiler warning pattern.
	WarnPatterns map[string]string
}

// problemJSON mirrors the keys of problem.json this tool cares about.
type problemJSON struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	HasGrader  *bool  `json:"has_grader"`
	HasManager *bool  `json:"has_manager"`
}

// FromEnv builds the immutable configuration for this run. Problem metadata
// missing from the environment is taken from $BASE_DIR/problem.json.
func FromEnv() (*Config, error) {
	base := envOr("BASE_DIR", ".")
	cfg := &Config{
		BaseDir:     base,
		ProblemName: os.Getenv("PROBLEM_NAME"),
		ProblemType: os.Getenv("PROBLEM_TYPE"),
		HasGrader:   os.Getenv("HAS_GRADER") == "true",
		HasManager:  os.Getenv("HAS_MANAGER") == "true",

		Sandbox:         envOr("SANDBOX", filepath.Join(base, "sandbox")),
		TemplatesDir:    envOr("TEMPLATES_DIR", filepath.Join(base, "scripts", "templates")),
		GraderDir:       envOr("GRADER_DIR", filepath.Join(base, "grader")),
		PublicGraderDir: envOr("PUBLIC_GRADER_DIR", filepath.Join(base, "public", "grader")),

		PreBuild:  envOr("PRE_BUILD", filepath.Join(base, "scripts", "pre_build.sh")),
		PostBuild: envOr("POST_BUILD", filepath.Join(base, "scripts", "post_build.sh")),

		CppOpts:   optsOr("CPP_OPTS", "-DEVAL -std=gnu++17 -Wall -Wextra -Wshadow -O2"),
		CppShim:   os.Getenv("CPP_SHIM"),
		PasOpts:   optsOr("PAS_OPTS", "-dEVAL -XS -O2 -v0"),
		JavacOpts: optsOr("JAVAC_OPTS", "-Xlint"),
		Python2:   os.Getenv("PYTHON2"),
		Python3:   os.Getenv("PYTHON3"),

		Tools: map[string]string{
			"gxx":   envOr("GXX", "g++"),
			"fpc":   envOr("FPC", "fpc"),
			"javac": envOr("JAVAC", "javac"),
			"jar":   envOr("JAR", "jar"),
		},
		WarnPatterns: map[string]string{
			"cpp":  envOr("CPP_WARN_PATTERN", "warning:"),
			"pas":  envOr("PAS_WARN_PATTERN", "Warning:"),
			"java": envOr("JAVA_WARN_PATTERN", "warning:"),
			"py2":  os.Getenv("PY_WARN_PATTERN"),
			"py3":  os.Getenv("PY_WARN_PATTERN"),
		},
	}
	cfg.ManagerDir = envOr("MANAGER_DIR", cfg.GraderDir)
	cfg.CompileOutputs = envOr("COMPILE_OUTPUTS", filepath.Join(cfg.Sandbox, "compile.outputs"))
	if v, set := os.LookupEnv("WARN_FILE"); set {
		cfg.WarnFile = v // empty value disables the warning log
	} else {
		cfg.WarnFile = filepath.Join(cfg.Sandbox, "warnings")
	}

	if err := cfg.loadProblemJSON(); err != nil {
		return nil, err
	}
	if err := cfg.loadLangProfile(os.Getenv("LANG_PROFILE")); err != nil {
		return nil, err
	}

	if cfg.ProblemName == "" {
		return nil, model.Errf(model.CONFIG_ERR, "problem name is not set: export PROBLEM_NAME or provide %s",
			filepath.Join(base, "problem.json"))
	}
	if err := cfg.absolutize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// absolutize pins every configured path before the build chdirs into the
// sandbox.
func (cfg *Config) absolutize() error {
	paths := []*string{
		&cfg.BaseDir, &cfg.Sandbox, &cfg.TemplatesDir,
		&cfg.GraderDir, &cfg.PublicGraderDir, &cfg.ManagerDir,
		&cfg.CompileOutputs, &cfg.WarnFile,
		&cfg.PreBuild, &cfg.PostBuild, &cfg.CppShim,
	}
	for _, p := range paths {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return model.WrapErr(model.CONFIG_ERR, err, "resolve path %s", *p)
		}
		*p = abs
	}
	return nil
}

// loadProblemJSON fills metadata left unset by the environment.
func (cfg *Config) loadProblemJSON() error {
	path := filepath.Join(cfg.BaseDir, "problem.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return model.WrapErr(model.CONFIG_ERR, err, "read %s", path)
	}
	var p problemJSON
	if err := jsoniter.Unmarshal(data, &p); err != nil {
		return model.WrapErr(model.CONFIG_ERR, err, "unmarshal %s", path)
	}
	if cfg.ProblemName == "" {
		cfg.ProblemName = p.Name
	}
	if cfg.ProblemType == "" {
		cfg.ProblemType = p.Type
	}
	if _, set := os.LookupEnv("HAS_GRADER"); !set && p.HasGrader != nil {
		cfg.HasGrader = *p.HasGrader
	}
	if _, set := os.LookupEnv("HAS_MANAGER"); !set && p.HasManager != nil {
		cfg.HasManager = *p.HasManager
	}
	log.Debugf("problem.json: name=%q type=%q grader=%v manager=%v",
		cfg.ProblemName, cfg.ProblemType, cfg.HasGrader, cfg.HasManager)
	return nil
}

// langProfile is the optional per-language toolchain override file.
type langProfile struct {
	Version   string `yaml:"version"`
	Languages map[string]struct {
		Compiler    string   `yaml:"compiler"`
		Interpreter string   `yaml:"interpreter"`
		Opts        []string `yaml:"opts"`
	} `yaml:"languages"`
}

func (cfg *Config) loadLangProfile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WrapErr(model.CONFIG_ERR, err, "read language profile %s", path)
	}
	var prof langProfile
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return model.WrapErr(model.CONFIG_ERR, err, "unmarshal language profile %s", path)
	}
	for tag, l := range prof.Languages {
		switch tag {
		case "cpp":
			if l.Compiler != "" {
				cfg.Tools["gxx"] = l.Compiler
			}
			if len(l.Opts) > 0 {
				cfg.CppOpts = l.Opts
			}
		case "pas":
			if l.Compiler != "" {
				cfg.Tools["fpc"] = l.Compiler
			}
			if len(l.Opts) > 0 {
				cfg.PasOpts = l.Opts
			}
		case "java":
			if l.Compiler != "" {
				cfg.Tools["javac"] = l.Compiler
			}
			if len(l.Opts) > 0 {
				cfg.JavacOpts = l.Opts
			}
		case "py2":
			if l.Interpreter != "" {
				cfg.Python2 = l.Interpreter
			}
		case "py3":
			if l.Interpreter != "" {
				cfg.Python3 = l.Interpreter
			}
		default:
			return model.Errf(model.CONFIG_ERR, "language profile %s: unknown language %q", path, tag)
		}
	}
	log.Debugf("applied language profile %s", path)
	return nil
}

// ExportEnv is the extra environment handed to hook scripts.
func (cfg *Config) ExportEnv() []string {
	return []string{
		"PROBLEM_NAME=" + cfg.ProblemName,
		"PROBLEM_TYPE=" + cfg.ProblemType,
		"SANDBOX=" + cfg.Sandbox,
		"HAS_GRADER=" + boolString(cfg.HasGrader),
		"HAS_MANAGER=" + boolString(cfg.HasManager),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func optsOr(key, def string) []string {
	return strings.Fields(envOr(key, def))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
