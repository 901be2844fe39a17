package main

import (
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/model"
)

// runHook executes one opaque pre/post-build script. A missing script is
// fine; a present but failing one fails the whole build.
func runHook(cfg *config.Config, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		log.Debugf("hook %s not present, skipping", path)
		return nil
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return model.Errf(model.CONFIG_ERR, "hook %s is not executable", path)
	}

	log.Debugf("running hook %s", path)
	cmd := exec.Command(path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), cfg.ExportEnv()...)
	if err := cmd.Run(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return model.ToolErr(model.COMPILE_ERR, ee.ExitCode(), "hook %s failed", path)
		}
		return model.WrapErr(model.CONFIG_ERR, err, "cannot run hook %s", path)
	}
	return nil
}
