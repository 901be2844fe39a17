package lang

import (
	"testing"

	"github.com/Grackins/btps/model"
)

func TestFromPath(t *testing.T) {
	cases := []struct {
		path string
		want Language
	}{
		{"solution/a_plus_b.cpp", CPP},
		{"a_plus_b.cc", CPP},
		{"a_plus_b.pas", PAS},
		{"a_plus_b.java", JAVA},
		{"a_plus_b.py", PY3},
		{"a_plus_b.py2", PY2},
		{"A_PLUS_B.CPP", CPP},
	}
	for _, c := range cases {
		got, err := FromPath(c.path)
		if err != nil {
			t.Errorf("FromPath(%q): %s", c.path, err)
			continue
		}
		if got != c.want {
			t.Errorf("FromPath(%q) = %s, want %s", c.path, got, c.want)
		}
	}
}

func TestFromPathUnsupported(t *testing.T) {
	for _, path := range []string{"a.rb", "a", "a.", "a.cpp.txt"} {
		_, err := FromPath(path)
		if err == nil {
			t.Errorf("FromPath(%q) should fail", path)
			continue
		}
		if model.KindOf(err) != model.UNSUPPORTED_LANG_ERR {
			t.Errorf("FromPath(%q) kind = %d, want UNSUPPORTED_LANG_ERR", path, model.KindOf(err))
		}
	}
}

func TestCanonicalExt(t *testing.T) {
	// .cc and .py2 sources are canonicalized so graders find the
	// solution under the problem name
	if CPP.Ext() != ".cpp" {
		t.Errorf("CPP.Ext() = %q", CPP.Ext())
	}
	if PY2.Ext() != ".py" || PY3.Ext() != ".py" {
		t.Errorf("python ext = %q/%q, want .py", PY2.Ext(), PY3.Ext())
	}
}

func TestGraderDirShared(t *testing.T) {
	if PY2.GraderDir() != "py" || PY3.GraderDir() != "py" {
		t.Errorf("python grader dirs = %q/%q, want py", PY2.GraderDir(), PY3.GraderDir())
	}
	if CPP.GraderDir() != "cpp" {
		t.Errorf("CPP.GraderDir() = %q", CPP.GraderDir())
	}
}
