package findrepl

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestEngineStaysInMemory keeps the engine independent of storage, transport
// and the service layer: it may only import the domain model and the standard
// library.
func TestEngineStaysInMemory(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, "sequincore/internal/findrepl")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected one package, got %d", len(pkgs))
	}

	var violations []string
	for importPath := range pkgs[0].Imports {
		if importPath == "sequincore/pkg/domain" {
			continue
		}
		if strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") || strings.HasPrefix(importPath, "sequincore/") {
			violations = append(violations, importPath)
		}
	}
	sort.Strings(violations)
	for _, v := range violations {
		t.Errorf("forbidden import in findrepl: %s", v)
	}
}
