package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRecreateWipes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sandbox")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "stale.o")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	box, err := Recreate(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived sandbox recreation")
	}
	if box.Dir != dir {
		t.Errorf("box.Dir = %q, want %q", box.Dir, dir)
	}
}

func TestPlaceSolution(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a_plus_b.cc")
	if err := os.WriteFile(src, []byte("int main(){}"), 0644); err != nil {
		t.Fatal(err)
	}
	box, err := Recreate(filepath.Join(root, "sandbox"))
	if err != nil {
		t.Fatal(err)
	}

	dst, err := box.PlaceSolution(src, "aplusb.cpp")
	if err != nil {
		t.Fatal(err)
	}
	if dst != box.Path("aplusb.cpp") {
		t.Errorf("dst = %q", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "int main(){}" {
		t.Errorf("copied content = %q", data)
	}
}

func TestScopedRestoresOnError(t *testing.T) {
	box, err := Recreate(filepath.Join(t.TempDir(), "sandbox"))
	if err != nil {
		t.Fatal(err)
	}
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err = box.Scoped(func() error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if filepath.Clean(wd) != filepath.Clean(box.Dir) {
			t.Errorf("scoped wd = %q, want %q", wd, box.Dir)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}

	after, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("wd = %q after Scoped, want %q", after, before)
	}
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(dir, filepath.Join(dir, "out")); err == nil {
		t.Error("copying a directory should fail")
	}
}
