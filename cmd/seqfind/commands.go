package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"sequincore/internal/core"
	"sequincore/internal/fasta"
	"sequincore/internal/findrepl"
	"sequincore/pkg/domain"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "seqfind",
		Short: "Find and replace text across sequence records",
		Long: `
seqfind keeps sequence records in a record store (sqlite, postgres or memory)
and runs find or find/replace sessions over every text field: identifiers,
features, descriptors, citations and the submission block.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newImportCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newFindCmd(a),
		newReplaceCmd(a),
		newExportCmd(a),
		newLoadCmd(a),
		newServeMetricsCmd(a),
	)
	return root
}

var setClasses = map[string]domain.SetClass{
	"genbank": domain.SetClassGenBank,
	"popset":  domain.SetClassPopSet,
	"physet":  domain.SetClassPhySet,
	"ecoset":  domain.SetClassEcoSet,
	"mutset":  domain.SetClassMutSet,
}

var molTypes = map[string]domain.MolType{
	"dna": domain.MolDNA,
	"rna": domain.MolRNA,
	"aa":  domain.MolProtein,
	"na":  domain.MolNA,
}

func newImportCmd(a *app) *cobra.Command {
	var (
		name   string
		format string
		class  string
		mol    string
	)
	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import FASTA or JSON records",
		Long: `
Each file becomes one record. A FASTA file with several sequences is wrapped
in a set. With no file, or "-", the record is read from standard input.`,
		Example: "  seqfind import --set-class popset sequences.fasta",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := fasta.Options{}
			if class != "" {
				c, ok := setClasses[strings.ToLower(class)]
				if !ok {
					return fmt.Errorf("unknown set class %q", class)
				}
				opts.Class = c
			}
			if mol != "" {
				m, ok := molTypes[strings.ToLower(mol)]
				if !ok {
					return fmt.Errorf("unknown molecule type %q", mol)
				}
				opts.Mol = m
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, path := range args {
				rec, err := a.importOne(cmd, path, name, format, opts)
				if err != nil {
					return err
				}
				printf(a.out, "imported %s (%d bioseqs)\n", rec.ID, len(rec.Bioseqs()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "record name (default: file name)")
	cmd.Flags().StringVarP(&format, "format", "f", "fasta", "input format (fasta, json)")
	cmd.Flags().StringVar(&class, "set-class", "", "set class for multi-sequence input (genbank, popset, physet, ecoset, mutset)")
	cmd.Flags().StringVar(&mol, "mol", "", "force molecule type (dna, rna, aa, na)")
	return cmd
}

func (a *app) importOne(cmd *cobra.Command, path, name, format string, opts fasta.Options) (domain.Record, error) {
	var r io.Reader = a.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.Record{}, err
		}
		defer func() { _ = f.Close() }()
		r = f
		if name == "" {
			name = path
		}
	}
	var (
		rec domain.Record
		res core.Result
		err error
	)
	switch strings.ToLower(format) {
	case "fasta":
		rec, res, err = a.svc.ImportFASTA(cmd.Context(), r, name, opts)
	case "json":
		var in domain.Record
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return domain.Record{}, fmt.Errorf("decode %s: %w", path, err)
		}
		if in.Name == "" {
			in.Name = name
		}
		rec, res, err = a.svc.ImportRecord(cmd.Context(), in)
	default:
		return domain.Record{}, fmt.Errorf("unknown format %q", format)
	}
	a.printViolations(res)
	return rec, err
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, rec := range a.svc.ListRecords(cmd.Context()) {
				printf(a.out, "%s\t%s\t%d bioseqs\t%s\n", rec.ID, rec.Name, len(rec.Bioseqs()), rec.UpdatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.svc.GetRecord(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.svc.DeleteRecord(cmd.Context(), args[0]); err != nil {
				return err
			}
			printf(a.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

// sessionFlags are shared by find and replace.
type sessionFlags struct {
	caseSensitive   bool
	wholeWord       bool
	includeLocalIDs bool
	descr           []string
	feat            []string
	seqID           []string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.caseSensitive, "case-sensitive", "s", false, "match case exactly")
	cmd.Flags().BoolVarP(&f.wholeWord, "whole-word", "w", false, "match whole words only")
	cmd.Flags().BoolVar(&f.includeLocalIDs, "include-local-ids", false, "also search local sequence identifiers")
	cmd.Flags().StringSliceVar(&f.descr, "descr", nil, "restrict to descriptor types (e.g. title,comment)")
	cmd.Flags().StringSliceVar(&f.feat, "feat", nil, "restrict to feature types (e.g. gene,CDS)")
	cmd.Flags().StringSliceVar(&f.seqID, "seqid", nil, "search these identifier types (e.g. lcl,gb)")
}

func (f *sessionFlags) options() (findrepl.Options, error) {
	opts := findrepl.Options{
		CaseSensitive:   f.caseSensitive,
		WholeWord:       f.wholeWord,
		IncludeLocalIDs: f.includeLocalIDs,
	}
	var err error
	if opts.DescrFilter, err = parseFilter(f.descr, "descriptor", domain.ParseDescrType); err != nil {
		return opts, err
	}
	if opts.FeatFilter, err = parseFilter(f.feat, "feature", domain.ParseFeatDef); err != nil {
		return opts, err
	}
	if opts.SeqIDFilter, err = parseFilter(f.seqID, "seq-id", domain.ParseSeqIDType); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseFilter[K domain.Subtype](names []string, kind string, parse func(string) (K, bool)) (*domain.Set[K], error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := domain.NewSet[K]()
	for _, name := range names {
		k, ok := parse(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown %s type %q", kind, name)
		}
		set.Add(k)
	}
	return set, nil
}

func newFindCmd(a *app) *cobra.Command {
	var flags sessionFlags
	cmd := &cobra.Command{
		Use:   "find <id> <pattern> [pattern...]",
		Short: "Report the items of a record that contain a pattern",
		Long: `
With one pattern the search honours --whole-word. With several patterns an item
is reported when it contains any of them.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			var summary findrepl.Summary
			if len(args) == 2 {
				summary, _, err = a.svc.FindReplace(cmd.Context(), args[0], args[1], "", opts)
			} else {
				summary, err = a.svc.FindMulti(cmd.Context(), args[0], args[1:], opts)
			}
			if err != nil {
				return err
			}
			printSummary(a.out, summary, false)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newReplaceCmd(a *app) *cobra.Command {
	var (
		flags         sessionFlags
		dryRun        bool
		update        string
		selectTouched bool
	)
	cmd := &cobra.Command{
		Use:     "replace <id> <find> <replace>",
		Short:   "Rewrite every occurrence of a string in a record",
		Args:    cobra.ExactArgs(3),
		Example: "  seqfind replace 3f2a... 'Danio rerio' 'Danio aesculapii' --descr source",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			policy, ok := findrepl.ParseUpdatePolicy(update)
			if !ok {
				return fmt.Errorf("unknown update policy %q", update)
			}
			opts.Replace = !dryRun
			opts.Update = policy
			opts.SelectTouched = selectTouched
			opts.Listener = logListener{l: a.logger}
			summary, res, err := a.svc.FindReplace(cmd.Context(), args[0], args[1], args[2], opts)
			a.printViolations(res)
			if err != nil {
				var rv core.RuleViolationError
				if errors.As(err, &rv) {
					printSummary(a.out, summary, true)
				}
				return err
			}
			printSummary(a.out, summary, opts.Replace)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report matches without rewriting")
	cmd.Flags().StringVar(&update, "update", "once-at-end", "dirty notification policy (never, per-item, once-at-end)")
	cmd.Flags().BoolVar(&selectTouched, "select", false, "log every touched item as selected")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Write records to the blob archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				infos, err := a.svc.ListArchived(cmd.Context())
				if err != nil {
					return err
				}
				for _, info := range infos {
					printf(a.out, "%s\t%d\t%s\n", info.Key, info.Size, info.Checksum)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("export needs at least one record id")
			}
			for _, id := range args {
				info, err := a.svc.ExportRecord(cmd.Context(), id)
				if err != nil {
					return err
				}
				printf(a.out, "exported %s to %s (%d bytes, sha256 %s)\n", id, info.Key, info.Size, info.Checksum)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list archived records instead")
	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <key|id>",
		Short: "Restore a record from the blob archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, res, err := a.svc.LoadRecord(cmd.Context(), args[0])
			a.printViolations(res)
			if err != nil {
				return err
			}
			printf(a.out, "loaded %s\n", rec.ID)
			return nil
		},
	}
}

func newServeMetricsCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Serve Prometheus metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.MetricsAddr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           metricsHandler(a.registry),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			a.logger.Info("serving metrics", "addr", addr)
			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from SEQUIN_METRICS_ADDR)")
	return cmd
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	return mux
}
