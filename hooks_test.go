package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Grackins/btps/config"
	"github.com/Grackins/btps/model"
)

func hookScript(t *testing.T, body string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pre_build.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunHookMissingIsFine(t *testing.T) {
	cfg := &config.Config{}
	if err := runHook(cfg, filepath.Join(t.TempDir(), "absent.sh")); err != nil {
		t.Errorf("missing hook should be skipped, got %s", err)
	}
	if err := runHook(cfg, ""); err != nil {
		t.Errorf("empty hook path should be skipped, got %s", err)
	}
}

func TestRunHookSeesExportedEnv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "seen")
	cfg := &config.Config{ProblemName: "aplusb", ProblemType: "Batch"}
	path := hookScript(t, "echo \"$PROBLEM_NAME\" > "+out+"\n", 0755)

	if err := runHook(cfg, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "aplusb\n" {
		t.Errorf("hook saw PROBLEM_NAME=%q", data)
	}
}

func TestRunHookFailureFailsBuild(t *testing.T) {
	cfg := &config.Config{}
	path := hookScript(t, "exit 9\n", 0755)

	err := runHook(cfg, path)
	if err == nil {
		t.Fatal("failing hook should fail the build")
	}
	if model.ToolExitOf(err) != 9 {
		t.Errorf("tool exit = %d, want 9", model.ToolExitOf(err))
	}
}

func TestRunHookNotExecutable(t *testing.T) {
	cfg := &config.Config{}
	path := hookScript(t, "exit 0\n", 0644)

	err := runHook(cfg, path)
	if model.KindOf(err) != model.CONFIG_ERR {
		t.Errorf("kind = %d, want CONFIG_ERR", model.KindOf(err))
	}
}
