package grader

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/lang"
	"github.com/Grackins/btps/model"
)

// Variant selects which grader sources judge the solution.
type Variant string

const (
	Judge  Variant = "judge"
	Public Variant = "public"
)

// Spec is the resolved grader decision for one build.
// When Required is false no grader artifact is produced, but Variant still
// reads "judge" so run-script selection keeps its judge behavior.
type Spec struct {
	Required bool
	Variant  Variant
	Dir      string
}

// Resolve decides whether a grader takes part in the build and where its
// per-language sources live.
func Resolve(cfg *config.Config, l lang.Language, usePublic bool) (Spec, error) {
	if !cfg.HasGrader {
		if usePublic {
			return Spec{}, model.Errf(model.UNSUPPORTED_GRADER_ERR,
				"public grader requested but task has no grader")
		}
		return Spec{Required: false, Variant: Judge}, nil
	}

	variant := Judge
	base := cfg.GraderDir
	if usePublic {
		variant = Public
		base = cfg.PublicGraderDir
	}
	spec := Spec{
		Required: true,
		Variant:  variant,
		Dir:      filepath.Join(base, l.GraderDir()),
	}
	log.Debugf("grader: variant=%s dir=%s", spec.Variant, spec.Dir)
	return spec, nil
}
