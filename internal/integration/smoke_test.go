package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"sequincore/internal/blob"
	"sequincore/internal/core"
	"sequincore/internal/fasta"
	"sequincore/internal/findrepl"
	"sequincore/pkg/domain"
)

const smokeFASTA = `>lcl|u1 [organism=Danio rerio] [strain=AB] zebrafish actin
ACGTACGTAC
>gb|AF000001.1| [organism=Danio rerio] zebrafish myosin
GGCCAATT
`

// TestIntegrationSmoke runs an import, replace, export and restore cycle for
// every in-process record store against every blob adapter.
func TestIntegrationSmoke(t *testing.T) {
	ctx := context.Background()

	storeVariants := []struct {
		name string
		open func(t *testing.T) domain.PersistentStore
	}{
		{
			name: "memory-store",
			open: func(_ *testing.T) domain.PersistentStore {
				return core.NewMemoryStore(core.NewDefaultRulesEngine())
			},
		},
		{
			name: "sqlite-store",
			open: func(t *testing.T) domain.PersistentStore {
				path := filepath.Join(t.TempDir(), "records.db")
				s, err := core.OpenPersistentStore(core.NewDefaultRulesEngine(), core.StorageConfig{Driver: core.StorageSQLite, SQLitePath: path})
				if err != nil {
					t.Fatalf("open sqlite store: %v", err)
				}
				t.Cleanup(func() { _ = core.CloseStore(s) })
				return s
			},
		},
	}

	blobVariants := []struct {
		name string
		open func(t *testing.T) blob.Store
	}{
		{
			name: "memory-blob",
			open: func(_ *testing.T) blob.Store { return blob.NewMemory() },
		},
		{
			name: "filesystem-blob",
			open: func(t *testing.T) blob.Store {
				fs, err := blob.NewFilesystem(t.TempDir())
				if err != nil {
					t.Fatalf("new filesystem blob: %v", err)
				}
				return fs
			},
		},
		{
			name: "mock-s3-blob",
			open: func(_ *testing.T) blob.Store { return blob.NewMockS3ForTests() },
		},
	}

	for _, sv := range storeVariants {
		for _, bv := range blobVariants {
			t.Run(sv.name+"/"+bv.name, func(t *testing.T) {
				store := sv.open(t)
				metrics := core.NewExpvarMetricsRecorder("")
				var traceBuffer bytes.Buffer
				tracer := core.NewJSONTracer(&traceBuffer)
				svc := core.NewService(
					store,
					core.WithMetricsRecorder(metrics),
					core.WithTracer(tracer),
					core.WithArchive(blob.NewArchive(bv.open(t))),
				)

				rec, res, err := svc.ImportFASTA(ctx, strings.NewReader(smokeFASTA), "smoke", fasta.Options{Class: domain.SetClassPopSet})
				if err != nil {
					t.Fatalf("import fasta: %v", err)
				}
				if res.HasBlocking() {
					t.Fatalf("unexpected blocking violations: %+v", res.Violations)
				}

				summary, _, err := svc.FindReplace(ctx, rec.ID, "Danio rerio", "Danio aesculapii", findrepl.Options{Replace: true})
				if err != nil {
					t.Fatalf("find replace: %v", err)
				}
				if summary.Changed != 2 {
					t.Fatalf("expected both sources rewritten, got %+v", summary)
				}

				info, err := svc.ExportRecord(ctx, rec.ID)
				if err != nil {
					t.Fatalf("export: %v", err)
				}
				if info.Key != blob.RecordKey(rec.ID) || info.Size <= 0 {
					t.Fatalf("unexpected archive info %+v", info)
				}
				if _, err := svc.DeleteRecord(ctx, rec.ID); err != nil {
					t.Fatalf("delete: %v", err)
				}
				restored, _, err := svc.LoadRecord(ctx, info.Key)
				if err != nil {
					t.Fatalf("load: %v", err)
				}
				if restored.ID != rec.ID {
					t.Fatalf("restored id %q, want %q", restored.ID, rec.ID)
				}

				got, err := svc.GetRecord(ctx, rec.ID)
				if err != nil {
					t.Fatalf("get restored: %v", err)
				}
				var taxnames []string
				for _, bs := range got.Bioseqs() {
					for _, d := range bs.Descr {
						if src, ok := d.(*domain.BioSource); ok && src.Org != nil {
							taxnames = append(taxnames, src.Org.Taxname)
						}
					}
				}
				if len(taxnames) != 2 || taxnames[0] != "Danio aesculapii" || taxnames[1] != "Danio aesculapii" {
					t.Fatalf("replacement lost in archive round trip: %v", taxnames)
				}

				snapshot := metrics.Snapshot()
				if snapshot.Results[core.OpFindReplace]["success"] == 0 {
					t.Fatalf("expected find_replace success metric: %+v", snapshot.Results)
				}
				if snapshot.Items[core.OpFindReplace]["changed"] != 2 {
					t.Fatalf("expected two changed items recorded: %+v", snapshot.Items)
				}
				if traceBuffer.Len() == 0 {
					t.Fatalf("expected trace exporter to emit spans")
				}
				var foundSpan bool
				for _, entry := range tracer.Entries() {
					if entry.Operation == core.OpLoadRecord && entry.Status == "success" {
						foundSpan = true
						break
					}
				}
				if !foundSpan {
					t.Fatalf("expected trace entry for load_record, entries=%+v", tracer.Entries())
				}
			})
		}
	}
}
