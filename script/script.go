// Package script instantiates the generated entry-point scripts the
// judging runtime invokes: an execution wrapper around the artifact and a
// run wrapper around the whole test interaction.
package script

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Grackins/btps/builder"
	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/grader"
	"github.com/Grackins/btps/model"
	"github.com/Grackins/btps/sandbox"
)

// Tokens maps placeholder names to their substituted values.
type Tokens map[string]string

// Render instantiates one template into an executable script, replacing
// every occurrence of each placeholder token.
func Render(templatePath, outPath string, tokens Tokens) error {
	body, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Errf(model.NO_TEMPLATE_ERR, "template %s does not exist", templatePath)
		}
		return model.WrapErr(model.IO_ERR, err, "read template %s", templatePath)
	}
	text := string(body)
	for token, value := range tokens {
		text = strings.ReplaceAll(text, token, value)
	}
	if err := os.WriteFile(outPath, []byte(text), 0755); err != nil {
		return model.WrapErr(model.IO_ERR, err, "write script %s", outPath)
	}
	log.Debugf("generated %s from %s", outPath, templatePath)
	return nil
}

// ExecScript generates the execution wrapper for the artifact.
func ExecScript(cfg *config.Config, box *sandbox.Sandbox, art *builder.Artifact) error {
	var template string
	switch art.Kind {
	case builder.Native:
		template = "exec_native.sh"
	case builder.Archive:
		template = "exec_java.sh"
	case builder.Source:
		template = "exec_py.sh"
	default:
		return model.Errf(model.ILLEGAL_STATE_ERR, "unknown artifact kind %d", art.Kind)
	}
	tokens := Tokens{
		"__PROBLEM_NAME__": cfg.ProblemName,
		"__MAIN_FILE__":    art.MainFile,
	}
	if art.Interpreter != "" {
		tokens["__INTERPRETER__"] = art.Interpreter
	}
	return Render(filepath.Join(cfg.TemplatesDir, template), box.Path("exec.sh"), tokens)
}

// RunScript generates the run wrapper. The judge variant picks a template
// by problem type; the public variant has a single template for all types.
func RunScript(cfg *config.Config, box *sandbox.Sandbox, spec grader.Spec, art *builder.Artifact) error {
	template := RunTemplate(spec.Variant, cfg.ProblemType)
	tokens := Tokens{
		"__PROBLEM_NAME__": cfg.ProblemName,
		"__MAIN_FILE__":    art.MainFile,
	}
	if art.Interpreter != "" {
		tokens["__INTERPRETER__"] = art.Interpreter
	}
	return Render(filepath.Join(cfg.TemplatesDir, template), box.Path("run.sh"), tokens)
}

// RunTemplate names the run-wrapper template for a grader variant and
// problem type.
func RunTemplate(variant grader.Variant, problemType string) string {
	if variant == grader.Public {
		return "run_public.sh"
	}
	switch problemType {
	case "Batch", "OutputOnly":
		return "run_judge_batch.sh"
	case "Communication":
		return "run_judge_communication.sh"
	case "TwoSteps":
		return "run_judge_twosteps.sh"
	default:
		return "run_judge_default.sh"
	}
}
