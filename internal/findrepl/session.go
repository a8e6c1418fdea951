package findrepl

import "sequincore/pkg/domain"

// UpdatePolicy controls when the listener is told the record is dirty.
type UpdatePolicy int

const (
	// UpdateNever suppresses dirty notifications.
	UpdateNever UpdatePolicy = iota
	// UpdatePerItem marks each changed item dirty as soon as it is visited.
	UpdatePerItem
	// UpdateOnceAtEnd marks the whole record dirty once if anything changed.
	UpdateOnceAtEnd
)

func (p UpdatePolicy) String() string {
	switch p {
	case UpdatePerItem:
		return "per-item"
	case UpdateOnceAtEnd:
		return "once-at-end"
	}
	return "never"
}

// ParseUpdatePolicy resolves the names produced by UpdatePolicy.String.
func ParseUpdatePolicy(s string) (UpdatePolicy, bool) {
	switch s {
	case "never", "":
		return UpdateNever, true
	case "per-item":
		return UpdatePerItem, true
	case "once-at-end":
		return UpdateOnceAtEnd, true
	}
	return UpdateNever, false
}

// ItemKind names the top-level item classes visited by a session, in walk order.
type ItemKind int

const (
	ItemBioseq ItemKind = iota + 1
	ItemFeature
	ItemAlignment
	ItemGraph
	ItemDescriptor
	ItemSubmitBlock
	// ItemRecord identifies the record as a whole in the final dirty notification.
	ItemRecord
)

func (k ItemKind) String() string {
	switch k {
	case ItemBioseq:
		return "bioseq"
	case ItemFeature:
		return "feature"
	case ItemAlignment:
		return "alignment"
	case ItemGraph:
		return "graph"
	case ItemDescriptor:
		return "descriptor"
	case ItemSubmitBlock:
		return "submit"
	case ItemRecord:
		return "record"
	}
	return "unknown"
}

// Item identifies one top-level item touched by a session.
type Item struct {
	Kind ItemKind
	// ID is the 1-based position of the item among all items of its kind.
	ID int
	// Found is also set when a matching field could not be rewritten; such an
	// item has Changed false and FailedFields above zero.
	Found   bool
	Changed bool
	// FailedFields counts the fields of this item left untouched by a failed rewrite.
	FailedFields int
	Label        string
	// Entity is the visited object (*domain.Bioseq, *domain.SeqFeat, ...).
	Entity any
}

// Listener receives the dirty and selection notifications of a session.
type Listener interface {
	MarkDirty(Item)
	Select(Item)
}

// Options configures one find or find/replace invocation.
type Options struct {
	CaseSensitive bool
	// WholeWord is ignored by FindMulti.
	WholeWord bool
	// Replace selects rewriting; otherwise the session only finds. FindMulti never replaces.
	Replace       bool
	SelectTouched bool
	Update        UpdatePolicy

	// Nil descriptor and feature filters include every subtype. A nil SeqID filter
	// excludes every identifier unless IncludeLocalIDs is set, which admits local IDs.
	DescrFilter     *domain.DescrFilter
	FeatFilter      *domain.FeatFilter
	SeqIDFilter     *domain.SeqIDFilter
	IncludeLocalIDs bool

	Listener Listener
	// OnItem is called for every item that was found or changed, including items
	// whose matching fields all failed to rewrite (see Item.FailedFields).
	OnItem func(Item)
}

// Summary reports the outcome of a session. Found counts every reported item,
// including those whose only match sat in a field that failed to rewrite, so it
// is not a count of rewritten items; use Changed for that.
type Summary struct {
	Found        int
	Changed      int
	FailedFields int
	Items        []Item
}

// Dirty reports whether any field was rewritten.
func (s Summary) Dirty() bool { return s.Changed > 0 }

// FindReplace searches every text field of rec for find, rewriting matches to
// replace when opts.Replace is set. Invalid input returns an error before the
// record is visited.
func FindReplace(rec *domain.Record, find, replace string, opts Options) (Summary, error) {
	if rec == nil {
		return Summary{}, ErrNilRecord
	}
	m, err := CompileMatcher(find, MatchOptions{CaseSensitive: opts.CaseSensitive, WholeWord: opts.WholeWord})
	if err != nil {
		return Summary{}, err
	}
	w := newWalker(opts)
	if opts.Replace {
		w.rewriter = NewRewriter(m, replace)
	} else {
		w.contains = m.Contains
	}
	return run(rec, w, opts), nil
}

// FindMulti reports items containing any of patterns. It never modifies rec.
func FindMulti(rec *domain.Record, patterns []string, opts Options) (Summary, error) {
	if rec == nil {
		return Summary{}, ErrNilRecord
	}
	a, err := CompileAutomaton(patterns, opts.CaseSensitive)
	if err != nil {
		return Summary{}, err
	}
	w := newWalker(opts)
	w.contains = a.Scan
	return run(rec, w, opts), nil
}

func newWalker(opts Options) *walker {
	// nil descriptor and feature filters skip the subtype check, so features
	// without data (FeatDefBad) are still visited.
	w := &walker{descr: opts.DescrFilter, feat: opts.FeatFilter, seqID: opts.SeqIDFilter}
	if w.seqID == nil {
		w.seqID = domain.NewSet[domain.SeqIDType]()
		if opts.IncludeLocalIDs {
			w.seqID.Add(domain.SeqIDLocal)
		}
	}
	return w
}

type session struct {
	w       *walker
	opts    Options
	summary Summary
}

func run(rec *domain.Record, w *walker, opts Options) Summary {
	s := &session{w: w, opts: opts}

	for i, b := range rec.Bioseqs() {
		s.item(ItemBioseq, i+1, b.Label(), b, func() { w.visitBioseq(b) })
	}
	for i, f := range rec.Features() {
		if f == nil {
			continue
		}
		s.item(ItemFeature, i+1, f.Subtype().String(), f, func() { w.visitSeqFeat(f) })
	}
	for i, a := range rec.Alignments() {
		if a == nil {
			continue
		}
		s.item(ItemAlignment, i+1, "alignment", a, func() { w.visitSeqAlign(a) })
	}
	for i, g := range rec.Graphs() {
		if g == nil {
			continue
		}
		s.item(ItemGraph, i+1, g.Title, g, func() { w.visitSeqGraph(g) })
	}
	for i, d := range rec.Descriptors() {
		if d == nil {
			continue
		}
		s.item(ItemDescriptor, i+1, d.DescrType().String(), d, func() { w.visitSeqDescr(d) })
	}
	if rec.IsSubmission() {
		s.item(ItemSubmitBlock, 1, "submit", rec.Submit, func() { w.visitSubmitBlock(rec.Submit) })
	}

	s.summary.FailedFields = w.failed
	if opts.Update == UpdateOnceAtEnd && s.summary.Changed > 0 && opts.Listener != nil {
		opts.Listener.MarkDirty(Item{Kind: ItemRecord, ID: 1, Changed: true, Label: rec.ID, Entity: rec})
	}
	return s.summary
}

func (s *session) item(kind ItemKind, id int, label string, entity any, visit func()) {
	s.w.reset()
	failedBefore := s.w.failed
	visit()
	if !s.w.found && !s.w.changed {
		return
	}
	it := Item{Kind: kind, ID: id, Found: s.w.found, Changed: s.w.changed, FailedFields: s.w.failed - failedBefore, Label: label, Entity: entity}
	s.summary.Found++
	if it.Changed {
		s.summary.Changed++
	}
	s.summary.Items = append(s.summary.Items, it)

	if l := s.opts.Listener; l != nil {
		if it.Changed && s.opts.Update == UpdatePerItem {
			l.MarkDirty(it)
		}
		if s.opts.SelectTouched {
			l.Select(it)
		}
	}
	if s.opts.OnItem != nil {
		s.opts.OnItem(it)
	}
}
