package manager

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeMakefile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Makefile")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDeclaredTargets(t *testing.T) {
	path := writeMakefile(t, `# manager build
.PHONY: all clean

all: manager
	@true

manager: manager.cpp
	g++ -O2 -o manager manager.cpp
`)
	got := declaredTargets(path)
	if !reflect.DeepEqual(got, []string{"manager"}) {
		t.Errorf("declaredTargets = %v, want [manager]", got)
	}
}

func TestDeclaredTargetsBareTarget(t *testing.T) {
	path := writeMakefile(t, "manager:\n\tg++ -o manager manager.cpp\n")
	got := declaredTargets(path)
	if !reflect.DeepEqual(got, []string{"manager"}) {
		t.Errorf("declaredTargets = %v, want [manager]", got)
	}
}

func TestDeclaredTargetsSkipsAssignments(t *testing.T) {
	path := writeMakefile(t, `CXXFLAGS := -O2
all: manager checker
`)
	got := declaredTargets(path)
	if !reflect.DeepEqual(got, []string{"manager", "checker"}) {
		t.Errorf("declaredTargets = %v", got)
	}
}

func TestDeclaredTargetsMissingFile(t *testing.T) {
	if got := declaredTargets(filepath.Join(t.TempDir(), "Makefile")); got != nil {
		t.Errorf("declaredTargets on a missing file = %v, want nil", got)
	}
}
