package findrepl

import "sequincore/pkg/domain"

// walker visits every text leaf of a record. In find mode it only records whether
// a leaf matched; in replace mode it rewrites matching leaves in place.
type walker struct {
	contains func(string) bool
	rewriter *Rewriter

	descr *domain.DescrFilter
	feat  *domain.FeatFilter
	seqID *domain.SeqIDFilter

	// per-item state, reset by the session before each top-level item
	found   bool
	changed bool
	failed  int
}

func (w *walker) reset() {
	w.found, w.changed = false, false
}

func (w *walker) text(s *string) {
	if *s == "" {
		return
	}
	if w.rewriter == nil {
		if w.contains(*s) {
			w.found = true
		}
		return
	}
	out, changed, err := w.rewriter.Rewrite(*s)
	if err != nil {
		w.found = true
		w.failed++
		return
	}
	if changed {
		*s = out
		w.found, w.changed = true, true
	}
}

func (w *walker) texts(ss []string) {
	for i := range ss {
		w.text(&ss[i])
	}
}

func (w *walker) visitObjectID(o *domain.ObjectID) {
	w.text(&o.Str)
}

func (w *walker) visitDbTag(d *domain.DbTag) {
	w.text(&d.Db)
	w.visitObjectID(&d.Tag)
}

func (w *walker) visitDbTags(tags []domain.DbTag) {
	for i := range tags {
		w.visitDbTag(&tags[i])
	}
}

func (w *walker) visitDate(d *domain.Date) {
	if d != nil {
		w.text(&d.Str)
	}
}

func (w *walker) visitBioseq(b *domain.Bioseq) {
	for _, id := range b.IDs {
		w.visitSeqID(id)
	}
}

func (w *walker) visitSeqID(id domain.SeqID) {
	if id == nil || !w.seqID.Has(id.SeqIDType()) {
		return
	}
	switch v := id.(type) {
	case *domain.LocalID:
		w.visitObjectID(&v.Tag)
	case *domain.TextSeqID:
		w.text(&v.Name)
		w.text(&v.Accession)
		w.text(&v.Release)
	case *domain.PatentSeqID:
		w.visitIDPat(&v.Cit)
	case *domain.PDBSeqID:
		w.text(&v.Mol)
		w.text(&v.Release)
	case *domain.GeneralSeqID:
		w.visitDbTag(&v.Tag)
	case *domain.GIIMSeqID:
		w.text(&v.DB)
		w.text(&v.Release)
	}
}

func (w *walker) visitSeqLoc(loc domain.SeqLoc) {
	switch v := loc.(type) {
	case *domain.WholeLoc:
		w.visitSeqID(v.ID)
	case *domain.IntervalLoc:
		w.visitSeqID(v.ID)
	case *domain.PointLoc:
		w.visitSeqID(v.ID)
	case *domain.MixLoc:
		for _, sub := range v.Locs {
			w.visitSeqLoc(sub)
		}
	}
}

func (w *walker) visitSeqAlign(a *domain.SeqAlign) {
	for _, id := range a.IDs {
		w.visitSeqID(id)
	}
}

func (w *walker) visitSeqGraph(g *domain.SeqGraph) {
	w.text(&g.Title)
	w.text(&g.Comment)
	w.visitSeqLoc(g.Loc)
}

func (w *walker) visitUserObject(u *domain.UserObject) {
	if u == nil {
		return
	}
	w.text(&u.Class)
	w.visitObjectID(&u.Type)
	w.visitUserFields(u.Data)
}

func (w *walker) visitUserFields(fields []domain.UserField) {
	for i := range fields {
		f := &fields[i]
		w.visitObjectID(&f.Label)
		w.text(&f.Str)
		w.texts(f.Strs)
		w.visitUserFields(f.Fields)
		w.visitUserObject(f.Object)
	}
}

func (w *walker) visitSubmitBlock(s *domain.SubmitBlock) {
	if c := s.Contact; c != nil {
		w.text(&c.Name)
		w.texts(c.Address)
		w.text(&c.Phone)
		w.text(&c.Fax)
		w.text(&c.Email)
		w.visitAuthor(c.Contact)
	}
	w.visitCitSub(s.Cit)
	w.visitDate(s.ReleaseDate)
	w.text(&s.Tool)
	w.text(&s.UserTag)
	w.text(&s.Comment)
}
