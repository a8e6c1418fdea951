package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPredicates(t *testing.T) {
	thirdParty := ThirdPartyImport("sequincore")
	cases := []struct {
		pred ImportPredicate
		in   string
		want bool
	}{
		{InternalImport, "sequincore/internal/core", true},
		{InternalImport, "sequincore/pkg/domain", false},
		{InfraImport, "sequincore/internal/infra/blob/s3", true},
		{InfraImport, "sequincore/internal/blob", false},
		{thirdParty, "github.com/spf13/viper", true},
		{thirdParty, "sequincore/pkg/domain", false},
		{thirdParty, "encoding/json", false},
		{AnyOf(InternalImport, thirdParty), "golang.org/x/tools/go/packages", true},
		{AnyOf(), "anything", false},
	}
	for _, c := range cases {
		if got := c.pred(c.in); got != c.want {
			t.Fatalf("predicate(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func writeFile(t *testing.T, path, src string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "package tmp\nimport \"fmt\"\nimport _ \"forbidden/pkg\"\nfunc X(){fmt.Println(1)}\n")
	writeFile(t, filepath.Join(dir, "a_test.go"), "package tmp\nimport _ \"forbidden/test\"\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "import \"forbidden/txt\"")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub", "b.go"), "package sub\nimport _ \"forbidden/sub\"\n")

	viols, err := directImportViolations(dir, func(p string) bool { return strings.HasPrefix(p, "forbidden/") })
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || viols[0] != "forbidden/pkg (in a.go)" {
		t.Fatalf("unexpected violations %v", viols)
	}

	AssertNoDirectImports(t, dir, func(p string) bool { return p == "os" }, "os is allowed here")
}

func TestDirectImportViolationsErrors(t *testing.T) {
	if _, err := directImportViolations(filepath.Join(t.TempDir(), "missing"), func(string) bool { return false }); err == nil {
		t.Fatalf("expected error for missing dir")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.go"), "package")
	if _, err := directImportViolations(dir, func(string) bool { return false }); err == nil {
		t.Fatalf("expected parse error")
	}
}

type recordingFatal struct{ msg string }

func (r *recordingFatal) Fatalf(format string, args ...any) { r.msg = fmt.Sprintf(format, args...) }

func TestFailIfViolations(t *testing.T) {
	var r recordingFatal
	failIfViolations(&r, "direct import", "why", nil)
	if r.msg != "" {
		t.Fatalf("unexpected failure: %s", r.msg)
	}
	failIfViolations(&r, "direct import", "why", []string{"a", "b"})
	if !strings.Contains(r.msg, "(why)") || !strings.Contains(r.msg, "a\nb") {
		t.Fatalf("unexpected message %q", r.msg)
	}
}

func TestAssertNoTransitiveDependencyUsesGoList(t *testing.T) {
	old := goListDeps
	defer func() { goListDeps = old }()
	goListDeps = func(pattern string) ([]byte, error) {
		if pattern != "./x" {
			t.Fatalf("unexpected pattern %q", pattern)
		}
		return []byte("fmt\nsequincore/pkg/domain\n\n"), nil
	}
	AssertNoTransitiveDependency(t, "./x", InternalImport, "domain only")
	if got := matchLines("fmt\n sequincore/internal/core \n", InternalImport); len(got) != 1 || got[0] != "sequincore/internal/core" {
		t.Fatalf("unexpected matches %v", got)
	}
}
