package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sequincore/internal/core"
	"sequincore/pkg/domain"
)

const testFASTA = `>lcl|a [organism=Danio rerio] zebrafish actin
ACGTACGT
>lcl|b [organism=Danio rerio] myosin heavy chain
GGCCGGCC
`

// useTempWorkspace points the record store and archive at a fresh directory.
func useTempWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SEQUIN_STORAGE_DRIVER", "sqlite")
	t.Setenv("SEQUIN_SQLITE_PATH", filepath.Join(dir, "records.db"))
	t.Setenv("SEQUIN_BLOB_DRIVER", "fs")
	t.Setenv("SEQUIN_BLOB_FS_ROOT", filepath.Join(dir, "blobs"))
	t.Setenv("SEQUIN_LOG_LEVEL", "error")
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	code, out, errOut := runCLI(t, stdin, args...)
	if code != 0 {
		t.Fatalf("seqfind %v exited %d: %s", args, code, errOut)
	}
	return out
}

func importedID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	if len(fields) < 2 || fields[0] != "imported" {
		t.Fatalf("unexpected import output %q", out)
	}
	return fields[1]
}

func TestCLIWorkflow(t *testing.T) {
	dir := useTempWorkspace(t)
	path := filepath.Join(dir, "fish.fasta")
	if err := os.WriteFile(path, []byte(testFASTA), 0o600); err != nil {
		t.Fatalf("write fasta: %v", err)
	}

	out := mustRun(t, "", "import", "--set-class", "popset", path)
	if !strings.Contains(out, "(2 bioseqs)") {
		t.Fatalf("unexpected import output %q", out)
	}
	id := importedID(t, out)

	if out := mustRun(t, "", "list"); !strings.Contains(out, id) || !strings.Contains(out, "2 bioseqs") {
		t.Fatalf("list missing record: %q", out)
	}

	if out := mustRun(t, "", "find", id, "actin"); !strings.Contains(out, "1 items matched") || !strings.Contains(out, "found") {
		t.Fatalf("unexpected find output %q", out)
	}
	if out := mustRun(t, "", "find", id, "actin", "MYOSIN"); !strings.Contains(out, "2 items matched") {
		t.Fatalf("unexpected multi find output %q", out)
	}

	if out := mustRun(t, "", "replace", "--dry-run", id, "actin", "tubulin"); !strings.Contains(out, "1 items matched\n") {
		t.Fatalf("unexpected dry-run output %q", out)
	}
	if out := mustRun(t, "", "show", id); strings.Contains(out, "tubulin") {
		t.Fatalf("dry run modified the record")
	}

	if out := mustRun(t, "", "replace", id, "actin", "tubulin"); !strings.Contains(out, "1 items matched, 1 changed") {
		t.Fatalf("unexpected replace output %q", out)
	}
	if out := mustRun(t, "", "show", id); !strings.Contains(out, "zebrafish tubulin") {
		t.Fatalf("replace not persisted: %q", out)
	}

	if out := mustRun(t, "", "export", id); !strings.Contains(out, "records/"+id+".json") {
		t.Fatalf("unexpected export output %q", out)
	}
	if out := mustRun(t, "", "export", "--list"); !strings.Contains(out, "records/"+id+".json") {
		t.Fatalf("unexpected archive listing %q", out)
	}

	mustRun(t, "", "delete", id)
	code, _, errOut := runCLI(t, "", "show", id)
	if code == 0 || !strings.Contains(errOut, "not found") {
		t.Fatalf("expected missing record error, got code=%d stderr=%q", code, errOut)
	}

	if out := mustRun(t, "", "load", id); !strings.Contains(out, "loaded "+id) {
		t.Fatalf("unexpected load output %q", out)
	}
	if out := mustRun(t, "", "show", id); !strings.Contains(out, "zebrafish tubulin") {
		t.Fatalf("restored record differs: %q", out)
	}
}

func TestCLIImportJSONFromStdin(t *testing.T) {
	useTempWorkspace(t)
	rec := domain.Record{
		Name: "stdin",
		Entries: []domain.SeqEntry{&domain.Bioseq{
			IDs:   []domain.SeqID{&domain.LocalID{Tag: domain.ObjectID{Str: "x"}}},
			Descr: []domain.SeqDescr{&domain.TitleDescr{Text: "hello"}},
		}},
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := mustRun(t, string(data), "import", "--format", "json")
	id := importedID(t, out)
	if out := mustRun(t, "", "find", "--descr", "title", id, "HELLO"); !strings.Contains(out, "1 items matched") {
		t.Fatalf("unexpected find output %q", out)
	}
	if out := mustRun(t, "", "find", "--descr", "comment", id, "hello"); !strings.Contains(out, "0 items matched") {
		t.Fatalf("descriptor filter ignored: %q", out)
	}
}

func TestCLIRuleViolationReported(t *testing.T) {
	dir := useTempWorkspace(t)
	path := filepath.Join(dir, "dup.fasta")
	if err := os.WriteFile(path, []byte(">lcl|a one\nACGT\n>lcl|a two\nACGT\n"), 0o600); err != nil {
		t.Fatalf("write fasta: %v", err)
	}
	code, _, errOut := runCLI(t, "", "import", path)
	if code == 0 {
		t.Fatalf("expected duplicate identifiers to fail import")
	}
	if !strings.Contains(errOut, "bioseq_identifiers") {
		t.Fatalf("expected violation on stderr, got %q", errOut)
	}
}

func TestCLIInvalidInput(t *testing.T) {
	useTempWorkspace(t)
	cases := [][]string{
		{"replace", "id", "only-find"},
		{"find", "id", "x", "--feat", "nonsense"},
		{"replace", "id", "a", "b", "--update", "sometimes"},
		{"import", "--format", "xml", "-"},
		{"import", "--set-class", "bag", "-"},
		{"export"},
		{"--log-level", "loud", "list"},
	}
	for _, args := range cases {
		if code, _, _ := runCLI(t, "", args...); code == 0 {
			t.Fatalf("expected failure for %v", args)
		}
	}
}

func TestMainUsesExitFunc(t *testing.T) {
	useTempWorkspace(t)
	var codes []int
	old := exitFunc
	exitFunc = func(code int) { codes = append(codes, code) }
	defer func() { exitFunc = old }()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"seqfind", "--no-color", "list"}
	main()
	os.Args = []string{"seqfind", "--no-color", "show", "missing"}
	main()
	if len(codes) != 2 || codes[0] != 0 || codes[1] == 0 {
		t.Fatalf("unexpected exit codes: %v", codes)
	}
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := core.NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	rec.Observe(context.Background(), core.OpFindReplace, true, time.Millisecond)

	srv := httptest.NewServer(metricsHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "sequin_operation_results_total") {
		t.Fatalf("unexpected metrics response %d: %s", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected healthz status %d", resp.StatusCode)
	}
}

func TestServeMetricsStopsOnCancel(t *testing.T) {
	useTempWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	var stdout, stderr bytes.Buffer
	go func() {
		done <- run(ctx, []string{"--no-color", "serve-metrics", "--addr", "127.0.0.1:0"}, strings.NewReader(""), &stdout, &stderr)
	}()
	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case code := <-done:
		if code != 0 {
			t.Fatalf("serve-metrics exited %d: %s", code, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve-metrics did not stop")
	}
}
