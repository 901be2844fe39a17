package sandbox

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/Grackins/btps/model"
)

// Sandbox is the ephemeral working directory of one build. It is wiped and
// recreated when the build starts and handed to the judging runtime when it
// ends; it is never deleted here.
type Sandbox struct {
	Dir string
}

// Recreate wipes and recreates the directory at path.
func Recreate(path string) (*Sandbox, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, model.WrapErr(model.IO_ERR, err, "wipe sandbox %s", path)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, model.WrapErr(model.IO_ERR, err, "create sandbox %s", path)
	}
	log.Debugf("sandbox recreated at %s", path)
	return &Sandbox{Dir: path}, nil
}

// Path joins elem onto the sandbox directory.
func (sb *Sandbox) Path(elem ...string) string {
	return filepath.Join(append([]string{sb.Dir}, elem...)...)
}

// PlaceSolution copies the solution into the sandbox under its canonical
// name, e.g. aplusb.cpp.
func (sb *Sandbox) PlaceSolution(src, canonical string) (string, error) {
	dst := sb.Path(canonical)
	if err := CopyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Scoped runs fn with the working directory set to the sandbox and restores
// the previous working directory on every exit path.
func (sb *Sandbox) Scoped(fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return model.WrapErr(model.IO_ERR, err, "get working directory")
	}
	if err := os.Chdir(sb.Dir); err != nil {
		return model.WrapErr(model.IO_ERR, err, "enter sandbox %s", sb.Dir)
	}
	defer func() {
		if err := os.Chdir(prev); err != nil {
			log.Errorf("restore working directory %s: %s", prev, err)
		}
	}()
	return fn()
}

// CopyFile copies a regular file, replacing dst if it exists.
func CopyFile(src, dst string) error {
	stat, err := os.Stat(src)
	if err != nil {
		return model.WrapErr(model.IO_ERR, err, "stat %s", src)
	}
	if !stat.Mode().IsRegular() {
		return model.Errf(model.IO_ERR, "%s is not a regular file", src)
	}
	in, err := os.Open(src)
	if err != nil {
		return model.WrapErr(model.IO_ERR, err, "open %s", src)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return model.WrapErr(model.IO_ERR, err, "create %s", dst)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return model.WrapErr(model.IO_ERR, err, "copy %s to %s", src, dst)
	}
	return nil
}
