package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/Grackins/btps/builder"
	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/exitcode"
	"github.com/Grackins/btps/grader"
	"github.com/Grackins/btps/lang"
	"github.com/Grackins/btps/manager"
	"github.com/Grackins/btps/model"
	"github.com/Grackins/btps/sandbox"
	"github.com/Grackins/btps/script"
)

// buildAction runs the whole build sequence and maps any failure to its
// process exit code.
func buildAction(ctx *cli.Context) error {
	if err := runBuild(ctx); err != nil {
		return cli.NewExitError(fmt.Sprintf("Error: %s", err), exitcode.FromError(err))
	}
	return nil
}

func runBuild(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return model.Errf(model.ARGUMENT_ERR, "expected exactly one solution path, got %d arguments", ctx.NArg())
	}
	solution := ctx.Args().First()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	language, err := lang.FromPath(solution)
	if err != nil {
		return err
	}
	log.Debugf("language: %s", language)

	spec, err := grader.Resolve(cfg, language, ctx.GlobalBool("public-grader"))
	if err != nil {
		return err
	}

	box, err := sandbox.Recreate(cfg.Sandbox)
	if err != nil {
		return err
	}
	canonical := cfg.ProblemName + language.Ext()
	if _, err := box.PlaceSolution(solution, canonical); err != nil {
		return err
	}
	log.Debugf("solution placed as %s", canonical)

	if err := runHook(cfg, cfg.PreBuild); err != nil {
		return err
	}

	env, err := builder.NewEnv(cfg, box, spec)
	if err != nil {
		return err
	}
	strategy, err := builder.For(language)
	if err != nil {
		env.Close()
		return err
	}
	var artifact *builder.Artifact
	buildErr := box.Scoped(func() error {
		var err error
		artifact, err = strategy.Build(env)
		return err
	})
	env.Close()
	if buildErr != nil {
		return buildErr
	}
	log.Debugf("artifact: %s", artifact.Path)

	builder.ScanWarnings(cfg, language)

	if err := script.ExecScript(cfg, box, artifact); err != nil {
		return err
	}
	if err := script.RunScript(cfg, box, spec, artifact); err != nil {
		return err
	}

	// the manager mediates judge-side interaction and has no place in
	// public grading
	if cfg.HasManager && spec.Variant == grader.Judge {
		if err := manager.Build(cfg, box); err != nil {
			return err
		}
	}

	return runHook(cfg, cfg.PostBuild)
}
