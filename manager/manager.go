// Package manager builds the interactive mediator binary from the task's
// external build description.
package manager

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/model"
	"github.com/Grackins/btps/sandbox"
)

const binaryName = "manager"

// Build delegates to the Makefile in the manager directory and copies the
// resulting manager executable into the sandbox.
func Build(cfg *config.Config, box *sandbox.Sandbox) error {
	makefile := filepath.Join(cfg.ManagerDir, "Makefile")
	if _, err := os.Stat(makefile); err != nil {
		return model.Errf(model.MANAGER_BUILD_ERR, "manager build description %s does not exist", makefile)
	}
	if targets := declaredTargets(makefile); len(targets) > 0 {
		fmt.Printf("manager build artifacts: %s\n", strings.Join(targets, " "))
	}

	log.Debugf("running: make -C %s", cfg.ManagerDir)
	cmd := exec.Command("make", "-C", cfg.ManagerDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return model.ToolErr(model.MANAGER_BUILD_ERR, ee.ExitCode(), "manager build failed")
		}
		return model.WrapErr(model.MANAGER_BUILD_ERR, err, "cannot run make")
	}

	built := filepath.Join(cfg.ManagerDir, binaryName)
	if err := unix.Access(built, unix.X_OK); err != nil {
		return model.Errf(model.MANAGER_BUILD_ERR, "make succeeded but %s is not an executable", built)
	}
	dst := box.Path(binaryName)
	if err := sandbox.CopyFile(built, dst); err != nil {
		return err
	}
	if err := os.Chmod(dst, 0755); err != nil {
		return model.WrapErr(model.IO_ERR, err, "chmod %s", dst)
	}
	return nil
}

// declaredTargets reads the artifact names off the Makefile's first target
// line, diagnostics only. A Makefile without a readable target list is fine.
func declaredTargets(makefile string) []string {
	f, err := os.Open(makefile)
	if err != nil {
		return nil
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ".") {
			continue
		}
		name, deps, found := strings.Cut(line, ":")
		if !found || strings.Contains(name, "=") || strings.HasPrefix(deps, "=") {
			continue
		}
		if fields := strings.Fields(deps); len(fields) > 0 {
			return fields
		}
		return []string{strings.TrimSpace(name)}
	}
	return nil
}
